package schema

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/context-maximiser/sample-fixture/pkg/neo4j"
)

// Manager creates and drops the constraints and indexes of the fixture graph.
type Manager struct {
	q      neo4j.Querier
	logger *zap.Logger
}

// NewManager creates a new schema manager
func NewManager(q neo4j.Querier, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{q: q, logger: logger}
}

// Constraint represents a Neo4j constraint
type Constraint struct {
	Name      string
	NodeLabel string
	Property  string
	Type      string // "UNIQUE", "EXISTENCE"
}

// Index represents a Neo4j index
type Index struct {
	Name       string
	NodeLabel  string
	Properties []string
}

// Constraints returns the constraint definitions of the fixture graph.
func Constraints() []Constraint {
	return []Constraint{
		{Name: "fixture_module_unique", NodeLabel: "Fixture", Property: "module", Type: "UNIQUE"},
		{Name: "fixture_symbol_unique", NodeLabel: "FixtureSymbol", Property: "symbol", Type: "UNIQUE"},
		{Name: "fixture_symbol_kind", NodeLabel: "FixtureSymbol", Property: "kind", Type: "EXISTENCE"},
	}
}

// Indexes returns the index definitions of the fixture graph.
func Indexes() []Index {
	return []Index{
		{Name: "fixture_symbol_name", NodeLabel: "FixtureSymbol", Properties: []string{"name"}},
		{Name: "fixture_symbol_location", NodeLabel: "FixtureSymbol", Properties: []string{"filePath", "startLine"}},
	}
}

// CreateSchema creates all constraints and indexes. Statements use
// IF NOT EXISTS so repeated runs are harmless.
func (m *Manager) CreateSchema(ctx context.Context) error {
	for _, c := range Constraints() {
		cypher, err := constraintCypher(c)
		if err != nil {
			return err
		}
		if _, err := m.q.ExecuteQuery(ctx, cypher, nil); err != nil {
			return fmt.Errorf("failed to create constraint %s: %w", c.Name, err)
		}
		m.logger.Debug("Constraint ready", zap.String("name", c.Name))
	}

	for _, idx := range Indexes() {
		if _, err := m.q.ExecuteQuery(ctx, indexCypher(idx), nil); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.Name, err)
		}
		m.logger.Debug("Index ready", zap.String("name", idx.Name))
	}

	return nil
}

// DropSchema drops the constraints and indexes created by CreateSchema.
func (m *Manager) DropSchema(ctx context.Context) error {
	for _, idx := range Indexes() {
		cypher := fmt.Sprintf("DROP INDEX %s IF EXISTS", idx.Name)
		if _, err := m.q.ExecuteQuery(ctx, cypher, nil); err != nil {
			return fmt.Errorf("failed to drop index %s: %w", idx.Name, err)
		}
	}

	for _, c := range Constraints() {
		cypher := fmt.Sprintf("DROP CONSTRAINT %s IF EXISTS", c.Name)
		if _, err := m.q.ExecuteQuery(ctx, cypher, nil); err != nil {
			return fmt.Errorf("failed to drop constraint %s: %w", c.Name, err)
		}
	}

	return nil
}

func constraintCypher(c Constraint) (string, error) {
	switch c.Type {
	case "UNIQUE":
		return fmt.Sprintf(
			"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			c.Name, c.NodeLabel, c.Property,
		), nil
	case "EXISTENCE":
		return fmt.Sprintf(
			"CREATE CONSTRAINT %s IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS NOT NULL",
			c.Name, c.NodeLabel, c.Property,
		), nil
	default:
		return "", fmt.Errorf("unsupported constraint type: %s", c.Type)
	}
}

func indexCypher(idx Index) string {
	return fmt.Sprintf(
		"CREATE INDEX %s IF NOT EXISTS FOR (n:%s) ON (n.%s)",
		idx.Name, idx.NodeLabel, strings.Join(idx.Properties, ", n."),
	)
}
