// Package graph loads a fixture catalog into Neo4j and checks an indexed
// code graph against it.
package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/context-maximiser/sample-fixture/pkg/catalog"
	"github.com/context-maximiser/sample-fixture/pkg/neo4j"
)

// Seeder writes Fixture and FixtureSymbol nodes.
type Seeder struct {
	q      neo4j.Querier
	logger *zap.Logger
}

func NewSeeder(q neo4j.Querier, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{q: q, logger: logger}
}

// Seed merges the catalog into the graph and returns the run ID stamped on
// every node it touched. Symbols left over from earlier runs of the same
// module are removed.
func (s *Seeder) Seed(ctx context.Context, c *catalog.Catalog) (string, error) {
	runID := uuid.NewString()
	log := s.logger.With(zap.String("module", c.Module), zap.String("run_id", runID))

	if _, err := neo4j.MergeNode(ctx, s.q, []string{"Fixture"},
		map[string]any{"module": c.Module},
		map[string]any{"version": c.Version, "runId": runID},
	); err != nil {
		return "", fmt.Errorf("failed to merge fixture node: %w", err)
	}

	rows := make([]map[string]any, 0, len(c.Symbols))
	for _, sym := range c.Symbols {
		rows = append(rows, map[string]any{
			"symbol": sym.GenerateSymbolID(),
			"props": map[string]any{
				"name":          sym.DisplayName,
				"qualifiedName": sym.QualifiedName(),
				"kind":          string(sym.Kind),
				"signature":     sym.Signature,
				"docstring":     sym.Documentation,
				"filePath":      sym.FilePath,
				"startLine":     sym.StartLine,
				"endLine":       sym.EndLine,
				"isExported":    sym.IsExported(),
			},
		})
	}

	upsert := `
		MATCH (f:Fixture {module: $module})
		UNWIND $symbols AS row
		MERGE (s:FixtureSymbol {symbol: row.symbol})
		SET s += row.props, s.runId = $runId
		MERGE (f)-[:DECLARES]->(s)
		RETURN count(s) AS total
	`
	if _, err := s.q.ExecuteQuery(ctx, upsert, map[string]any{
		"module":  c.Module,
		"symbols": rows,
		"runId":   runID,
	}); err != nil {
		return "", fmt.Errorf("failed to upsert fixture symbols: %w", err)
	}

	prune := `
		MATCH (:Fixture {module: $module})-[:DECLARES]->(s:FixtureSymbol)
		WHERE s.runId <> $runId
		DETACH DELETE s
	`
	if _, err := s.q.ExecuteQuery(ctx, prune, map[string]any{
		"module": c.Module,
		"runId":  runID,
	}); err != nil {
		return "", fmt.Errorf("failed to prune stale symbols: %w", err)
	}

	log.Info("Seeded fixture", zap.Int("symbols", len(rows)))
	return runID, nil
}
