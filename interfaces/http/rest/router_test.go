package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxornot/QuickQanava/infrastructure/config"
	"github.com/anxornot/QuickQanava/infrastructure/di"
)

type apiFixture struct {
	server *httptest.Server
	token  string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{
		ServerAddress:      ":0",
		Environment:        "development",
		JWTSecret:          "test-secret",
		JWTIssuer:          "quickqanava",
		RateLimitPerMinute: 6000,
		RateLimitBurst:     1000,
		CacheTTLSeconds:    1,
		EnableMetrics:      true,
		EnableCORS:         false,
	}

	container, err := di.InitializeContainer(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close() })

	router := NewRouter(
		cfg,
		container.CommandBus,
		container.QueryBus,
		container.Observers,
		container.Metrics,
		container.JWTValidator,
		container.RateLimiter,
		container.Logger,
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)

	token, err := container.JWTValidator.Issue("alice")
	require.NoError(t, err)

	return &apiFixture{server: server, token: token}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeData(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func (f *apiFixture) createNode(t *testing.T, label string) string {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/v1/nodes", map[string]string{"label": label})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := http.Get(f.server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.server.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPIRequiresToken(t *testing.T) {
	f := newAPIFixture(t)

	resp, err := http.Get(f.server.URL + "/api/v1/graph")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPIRejectsBadToken(t *testing.T) {
	f := newAPIFixture(t)

	req, err := http.NewRequest(http.MethodGet, f.server.URL+"/api/v1/graph", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer not-a-token")

	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNodeLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	nodeID := f.createNode(t, "first")

	resp := f.do(t, http.MethodGet, "/api/v1/nodes/"+nodeID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var node struct {
		ID    string `json:"id"`
		Label string `json:"label"`
	}
	decodeData(t, resp, &node)
	assert.Equal(t, nodeID, node.ID)
	assert.Equal(t, "first", node.Label)

	resp = f.do(t, http.MethodPut, "/api/v1/nodes/"+nodeID+"/label", map[string]string{"label": "renamed"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/nodes/"+nodeID, nil)
	decodeData(t, resp, &node)
	assert.Equal(t, "renamed", node.Label)

	resp = f.do(t, http.MethodDelete, "/api/v1/nodes/"+nodeID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/nodes/"+nodeID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestEdgeLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	src := f.createNode(t, "src")
	dst := f.createNode(t, "dst")

	resp := f.do(t, http.MethodPost, "/api/v1/edges", map[string]string{
		"source_id":      src,
		"destination_id": dst,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var edge struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &edge)
	require.NotEmpty(t, edge.ID)

	resp = f.do(t, http.MethodDelete, "/api/v1/edges/"+edge.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestEdgeWithUnknownEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	src := f.createNode(t, "src")

	resp := f.do(t, http.MethodPost, "/api/v1/edges", map[string]string{
		"source_id":      src,
		"destination_id": "6a451bd5-4b18-4a11-9b72-6cb1b36f73ba",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGroupLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	nodeID := f.createNode(t, "member")

	resp := f.do(t, http.MethodPost, "/api/v1/groups", map[string]string{"label": "cluster"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var group struct {
		ID string `json:"id"`
	}
	decodeData(t, resp, &group)

	resp = f.do(t, http.MethodPut, fmt.Sprintf("/api/v1/groups/%s/nodes/%s", group.ID, nodeID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/nodes/"+nodeID, nil)
	var node struct {
		GroupID string `json:"group_id"`
	}
	decodeData(t, resp, &node)
	assert.Equal(t, group.ID, node.GroupID)

	resp = f.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/groups/%s/nodes/%s", group.ID, nodeID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/v1/groups/"+group.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// the member node survives its group
	resp = f.do(t, http.MethodGet, "/api/v1/nodes/"+nodeID, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestGraphDataAndClear(t *testing.T) {
	f := newAPIFixture(t)

	a := f.createNode(t, "a")
	b := f.createNode(t, "b")
	resp := f.do(t, http.MethodPost, "/api/v1/edges", map[string]string{
		"source_id":      a,
		"destination_id": b,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/graph", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var graph struct {
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	decodeData(t, resp, &graph)
	assert.Len(t, graph.Nodes, 2)
	assert.Len(t, graph.Edges, 1)

	resp = f.do(t, http.MethodDelete, "/api/v1/graph", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/graph", nil)
	decodeData(t, resp, &graph)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
}

func TestGraphStats(t *testing.T) {
	f := newAPIFixture(t)

	a := f.createNode(t, "a")
	resp := f.do(t, http.MethodPost, "/api/v1/edges", map[string]string{
		"source_id":      a,
		"destination_id": a,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/graph/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats struct {
		NodeCount int `json:"node_count"`
		EdgeCount int `json:"edge_count"`
		SelfLoops int `json:"self_loops"`
	}
	decodeData(t, resp, &stats)
	assert.Equal(t, 1, stats.NodeCount)
	assert.Equal(t, 1, stats.EdgeCount)
	assert.Equal(t, 1, stats.SelfLoops)
}

func TestListNodesPagination(t *testing.T) {
	f := newAPIFixture(t)

	for i := 0; i < 5; i++ {
		f.createNode(t, fmt.Sprintf("node-%d", i))
	}

	resp := f.do(t, http.MethodGet, "/api/v1/nodes/?page=2&page_size=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"pagination"`
	}
	decodeData(t, resp, &page)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 5, page.Pagination.Total)
	assert.Equal(t, 3, page.Pagination.TotalPages)
}

func TestObserverEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	nodeID := f.createNode(t, "watched")

	resp := f.do(t, http.MethodPost, "/api/v1/observers", map[string]string{
		"name":    "audit-1",
		"node_id": nodeID,
		"kind":    "audit",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/observers/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var observers []struct {
		Name    string `json:"name"`
		Enabled bool   `json:"enabled"`
	}
	decodeData(t, resp, &observers)
	require.Len(t, observers, 1)
	assert.Equal(t, "audit-1", observers[0].Name)
	assert.True(t, observers[0].Enabled)

	resp = f.do(t, http.MethodPost, "/api/v1/observers/audit-1/disable", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/observers/", nil)
	decodeData(t, resp, &observers)
	assert.False(t, observers[0].Enabled)

	resp = f.do(t, http.MethodPost, "/api/v1/observers/audit-1/enable", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodDelete, "/api/v1/observers/audit-1", nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/v1/observers/", nil)
	decodeData(t, resp, &observers)
	assert.Empty(t, observers)
}

func TestValidationErrors(t *testing.T) {
	f := newAPIFixture(t)

	resp := f.do(t, http.MethodPost, "/api/v1/edges", map[string]string{
		"source_id": "not-a-uuid",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/v1/nodes/not-a-uuid", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
