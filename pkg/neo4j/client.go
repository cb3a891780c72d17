package neo4j

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Config holds the configuration for Neo4j connection
type Config struct {
	URI      string
	Username string
	Password string
	Database string
}

// Querier runs a single Cypher statement and collects its records.
// *Client implements it; tests substitute a fake.
type Querier interface {
	ExecuteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// Client wraps the Neo4j driver and provides higher-level operations
type Client struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

var _ Querier = (*Client)(nil)

// NewClient creates a new Neo4j client and verifies connectivity.
func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	driver, err := neo4j.NewDriverWithContext(
		config.URI,
		neo4j.BasicAuth(config.Username, config.Password, ""),
		func(c *neo4j.Config) {
			c.MaxConnectionPoolSize = 10
			c.MaxConnectionLifetime = 30 * time.Minute
			c.ConnectionAcquisitionTimeout = 30 * time.Second
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Neo4j driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("failed to verify Neo4j connectivity: %w", err)
	}

	logger.Debug("Connected to Neo4j", zap.String("uri", config.URI), zap.String("database", config.Database))

	return &Client{
		driver:   driver,
		database: config.Database,
		logger:   logger,
	}, nil
}

// Close closes the Neo4j driver connection
func (c *Client) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

// ExecuteQuery executes a Cypher query and returns the result
func (c *Client) ExecuteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
	})
	defer session.Close(ctx)

	c.logger.Debug("Executing query", zap.String("cypher", compact(cypher)))

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}

	return result.Collect(ctx)
}

// ExecuteWrite executes a write transaction
func (c *Client) ExecuteWrite(ctx context.Context, work func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeWrite,
	})
	defer session.Close(ctx)

	return session.ExecuteWrite(ctx, work)
}

// GetDatabaseInfo returns information about the database
func (c *Client) GetDatabaseInfo(ctx context.Context) (map[string]any, error) {
	return DatabaseInfo(ctx, c)
}

// DatabaseInfo reports name, versions and edition of the server behind q.
func DatabaseInfo(ctx context.Context, q Querier) (map[string]any, error) {
	result, err := q.ExecuteQuery(ctx, "CALL dbms.components() YIELD name, versions, edition", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get database info: %w", err)
	}

	info := make(map[string]any)
	for _, record := range result {
		recordMap := record.AsMap()
		info["name"] = recordMap["name"]
		info["versions"] = recordMap["versions"]
		info["edition"] = recordMap["edition"]
	}

	return info, nil
}

// MergeNode creates or updates a node using MERGE and returns its element id.
func MergeNode(ctx context.Context, q Querier, labels []string, mergeProps, setProps map[string]any) (string, error) {
	keys := make([]string, 0, len(mergeProps))
	for key := range mergeProps {
		keys = append(keys, fmt.Sprintf("%s: $merge.%s", key, key))
	}
	sort.Strings(keys)

	cypher := fmt.Sprintf(`
		MERGE (n:%s {%s})
		SET n += $set
		RETURN elementId(n) as id
	`, strings.Join(labels, ":"), strings.Join(keys, ", "))

	result, err := q.ExecuteQuery(ctx, cypher, map[string]any{
		"merge": mergeProps,
		"set":   setProps,
	})
	if err != nil {
		return "", fmt.Errorf("failed to merge node: %w", err)
	}

	if len(result) == 0 {
		return "", fmt.Errorf("no records returned from merge node query")
	}

	id, ok := result[0].AsMap()["id"].(string)
	if !ok {
		return "", fmt.Errorf("failed to extract node ID from result")
	}

	return id, nil
}

func compact(cypher string) string {
	return strings.Join(strings.Fields(cypher), " ")
}
