package neo4j

import (
	"context"
	"fmt"
	"sort"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// QueryBuilder holds the read queries used against an indexed code graph.
type QueryBuilder struct {
	q Querier
}

// NewQueryBuilder creates a new query builder
func NewQueryBuilder(q Querier) *QueryBuilder {
	return &QueryBuilder{q: q}
}

// FindNodesByLabel finds all nodes with a specific label
func (qb *QueryBuilder) FindNodesByLabel(ctx context.Context, label string, limit int) ([]*neo4j.Record, error) {
	cypher := fmt.Sprintf("MATCH (n:%s) RETURN n", label)
	if limit > 0 {
		cypher += fmt.Sprintf(" LIMIT %d", limit)
	}

	result, err := qb.q.ExecuteQuery(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find nodes by label %s: %w", label, err)
	}

	return result, nil
}

// FindNames returns which of names exist as the name property of a node
// carrying any of labels. The result is sorted and deduplicated.
func (qb *QueryBuilder) FindNames(ctx context.Context, labels, names []string) ([]string, error) {
	cypher := `
		MATCH (n)
		WHERE any(l IN labels(n) WHERE l IN $labels) AND n.name IN $names
		RETURN DISTINCT n.name AS name
	`

	result, err := qb.q.ExecuteQuery(ctx, cypher, map[string]any{
		"labels": labels,
		"names":  names,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find names for %v: %w", labels, err)
	}

	found := make([]string, 0, len(result))
	for _, record := range result {
		if name := getString(record.AsMap(), "name"); name != "" {
			found = append(found, name)
		}
	}
	sort.Strings(found)

	return found, nil
}

// CountFixtureSymbols counts the FixtureSymbol nodes declared by module.
func (qb *QueryBuilder) CountFixtureSymbols(ctx context.Context, module string) (int, error) {
	cypher := `
		MATCH (:Fixture {module: $module})-[:DECLARES]->(s:FixtureSymbol)
		RETURN count(s) AS total
	`

	result, err := qb.q.ExecuteQuery(ctx, cypher, map[string]any{"module": module})
	if err != nil {
		return 0, fmt.Errorf("failed to count fixture symbols: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}

	return getInt(result[0].AsMap(), "total"), nil
}

func getString(m map[string]any, key string) string {
	if val, ok := m[key]; ok && val != nil {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}
