package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	domaincfg "github.com/anxornot/QuickQanava/domain/config"
)

// LimitsWatcher watches a JSON limits file and hot reloads the topology
// limits on change. Graphs created after a reload pick up the new limits;
// existing containers keep the limits they were created with.
type LimitsWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	current  domaincfg.DomainConfig
	mu       sync.RWMutex
	onChange []func(domaincfg.DomainConfig)
	logger   *zap.Logger
	stopCh   chan struct{}
}

// limitsFile is the on-disk shape of the limits document
type limitsFile struct {
	MaxNodesPerGraph    *int  `json:"maxNodesPerGraph"`
	MaxEdgesPerGraph    *int  `json:"maxEdgesPerGraph"`
	MaxGroupsPerGraph   *int  `json:"maxGroupsPerGraph"`
	MaxEdgesPerNode     *int  `json:"maxEdgesPerNode"`
	MaxObserversPerNode *int  `json:"maxObserversPerNode"`
	MaxLabelLength      *int  `json:"maxLabelLength"`
	AllowSelfLoops      *bool `json:"allowSelfLoops"`
	AllowParallelEdges  *bool `json:"allowParallelEdges"`
}

// NewLimitsWatcher creates a watcher over the given limits file. The
// defaults argument fills in fields the file leaves unset.
func NewLimitsWatcher(path string, defaults domaincfg.DomainConfig, logger *zap.Logger) (*LimitsWatcher, error) {
	current, err := loadLimitsFromFile(path, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial limits: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch limits file: %w", err)
	}

	// watch the directory too, editors and orchestrators replace the file
	// with a rename
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		logger.Warn("failed to watch limits directory", zap.Error(err))
	}

	return &LimitsWatcher{
		path:     path,
		watcher:  watcher,
		current:  current,
		onChange: make([]func(domaincfg.DomainConfig), 0),
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching for limits changes
func (w *LimitsWatcher) Start() {
	go w.watchLoop()
	w.logger.Info("limits watcher started", zap.String("path", w.path))
}

// Stop stops watching for limits changes
func (w *LimitsWatcher) Stop() {
	close(w.stopCh)
	w.watcher.Close()
	w.logger.Info("limits watcher stopped")
}

func (w *LimitsWatcher) watchLoop() {
	var debounceTimer *time.Timer
	debounceDuration := 100 * time.Millisecond

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, func() {
					w.handleLimitsChange()
				})
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", zap.Error(err))
		}
	}
}

func (w *LimitsWatcher) handleLimitsChange() {
	w.logger.Info("limits file changed, reloading", zap.String("path", w.path))

	w.mu.RLock()
	base := w.current
	w.mu.RUnlock()

	newLimits, err := loadLimitsFromFile(w.path, base)
	if err != nil {
		w.logger.Error("failed to reload limits", zap.Error(err))
		return
	}

	if err := newLimits.Validate(); err != nil {
		w.logger.Error("invalid limits, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = newLimits
	handlers := w.onChange
	w.mu.Unlock()

	if old.MaxNodesPerGraph != newLimits.MaxNodesPerGraph {
		w.logger.Info("max nodes per graph changed",
			zap.Int("old", old.MaxNodesPerGraph),
			zap.Int("new", newLimits.MaxNodesPerGraph),
		)
	}
	if old.MaxEdgesPerGraph != newLimits.MaxEdgesPerGraph {
		w.logger.Info("max edges per graph changed",
			zap.Int("old", old.MaxEdgesPerGraph),
			zap.Int("new", newLimits.MaxEdgesPerGraph),
		)
	}

	for _, handler := range handlers {
		go handler(newLimits)
	}

	w.logger.Info("limits reloaded")
}

// OnChange registers a callback invoked after every successful reload
func (w *LimitsWatcher) OnChange(handler func(domaincfg.DomainConfig)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, handler)
}

// GetLimits returns the current topology limits
func (w *LimitsWatcher) GetLimits() domaincfg.DomainConfig {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// loadLimitsFromFile loads the limits document, overlaying it on defaults
func loadLimitsFromFile(path string, defaults domaincfg.DomainConfig) (domaincfg.DomainConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaults, fmt.Errorf("failed to read limits file: %w", err)
	}

	var file limitsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return defaults, fmt.Errorf("failed to parse limits JSON: %w", err)
	}

	limits := defaults
	if file.MaxNodesPerGraph != nil {
		limits.MaxNodesPerGraph = *file.MaxNodesPerGraph
	}
	if file.MaxEdgesPerGraph != nil {
		limits.MaxEdgesPerGraph = *file.MaxEdgesPerGraph
	}
	if file.MaxGroupsPerGraph != nil {
		limits.MaxGroupsPerGraph = *file.MaxGroupsPerGraph
	}
	if file.MaxEdgesPerNode != nil {
		limits.MaxEdgesPerNode = *file.MaxEdgesPerNode
	}
	if file.MaxObserversPerNode != nil {
		limits.MaxObserversPerNode = *file.MaxObserversPerNode
	}
	if file.MaxLabelLength != nil {
		limits.MaxLabelLength = *file.MaxLabelLength
	}
	if file.AllowSelfLoops != nil {
		limits.AllowSelfLoops = *file.AllowSelfLoops
	}
	if file.AllowParallelEdges != nil {
		limits.AllowParallelEdges = *file.AllowParallelEdges
	}
	return limits, nil
}
