package config

import "fmt"

// DomainConfig holds all configurable topology rules and constraints.
// Graphs capture the config at construction, so limit changes apply to
// graphs created afterwards.
type DomainConfig struct {
	// Graph constraints
	MaxNodesPerGraph  int
	MaxEdgesPerGraph  int
	MaxGroupsPerGraph int

	// Node constraints
	MaxEdgesPerNode     int
	MaxObserversPerNode int
	MaxLabelLength      int

	// Topology settings
	AllowSelfLoops     bool
	AllowParallelEdges bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() DomainConfig {
	return DomainConfig{
		// Graph constraints
		MaxNodesPerGraph:  10000,
		MaxEdgesPerGraph:  50000,
		MaxGroupsPerGraph: 500,

		// Node constraints
		MaxEdgesPerNode:     1000,
		MaxObserversPerNode: 64,
		MaxLabelLength:      200,

		// Topology settings
		AllowSelfLoops:     true,
		AllowParallelEdges: true,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() DomainConfig {
	config := DefaultDomainConfig()

	// More restrictive limits for production
	config.MaxNodesPerGraph = 5000
	config.MaxEdgesPerGraph = 25000
	config.MaxEdgesPerNode = 500

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() DomainConfig {
	config := DefaultDomainConfig()

	// More permissive for development
	config.MaxNodesPerGraph = 100000
	config.MaxEdgesPerGraph = 500000
	config.MaxEdgesPerNode = 10000

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c DomainConfig) Validate() error {
	if c.MaxNodesPerGraph <= 0 {
		return fmt.Errorf("MaxNodesPerGraph must be positive, got %d", c.MaxNodesPerGraph)
	}
	if c.MaxEdgesPerGraph <= 0 {
		return fmt.Errorf("MaxEdgesPerGraph must be positive, got %d", c.MaxEdgesPerGraph)
	}
	if c.MaxGroupsPerGraph <= 0 {
		return fmt.Errorf("MaxGroupsPerGraph must be positive, got %d", c.MaxGroupsPerGraph)
	}
	if c.MaxEdgesPerNode <= 0 {
		return fmt.Errorf("MaxEdgesPerNode must be positive, got %d", c.MaxEdgesPerNode)
	}
	if c.MaxObserversPerNode <= 0 {
		return fmt.Errorf("MaxObserversPerNode must be positive, got %d", c.MaxObserversPerNode)
	}
	if c.MaxLabelLength <= 0 {
		return fmt.Errorf("MaxLabelLength must be positive, got %d", c.MaxLabelLength)
	}
	return nil
}
