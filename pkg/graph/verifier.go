package graph

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/context-maximiser/sample-fixture/pkg/catalog"
	"github.com/context-maximiser/sample-fixture/pkg/models"
	"github.com/context-maximiser/sample-fixture/pkg/neo4j"
)

// ErrMissingSymbols is returned (wrapped) by Verify when the indexed graph
// lacks catalog symbols.
var ErrMissingSymbols = errors.New("symbols missing from graph")

// DefaultKinds are the symbol kinds checked when a Verifier has none set.
var DefaultKinds = []models.SymbolKind{models.FunctionSymbol, models.MethodSymbol, models.TypeSymbol}

// Report lists catalog symbols by qualified name, split by whether the
// graph holds them.
type Report struct {
	Found   []string `json:"found"`
	Missing []string `json:"missing"`
}

// Verifier checks an indexed code graph for the symbols of a catalog.
type Verifier struct {
	queries *neo4j.QueryBuilder
	logger  *zap.Logger
	Kinds   []models.SymbolKind
}

func NewVerifier(q neo4j.Querier, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{queries: neo4j.NewQueryBuilder(q), logger: logger}
}

// Verify looks up every catalog symbol of the configured kinds, one query
// per kind in parallel. Symbols are matched on their display name under the
// labels a code graph indexer uses for that kind.
func (v *Verifier) Verify(ctx context.Context, c *catalog.Catalog) (*Report, error) {
	kinds := v.Kinds
	if len(kinds) == 0 {
		kinds = DefaultKinds
	}

	var (
		mu     sync.Mutex
		report Report
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		symbols := c.Filter(kind)
		if len(symbols) == 0 {
			continue
		}

		g.Go(func() error {
			names := make([]string, 0, len(symbols))
			for _, s := range symbols {
				names = append(names, s.DisplayName)
			}

			found, err := v.queries.FindNames(gctx, kind.GraphLabels(), names)
			if err != nil {
				return fmt.Errorf("%s lookup: %w", kind, err)
			}
			present := make(map[string]bool, len(found))
			for _, n := range found {
				present[n] = true
			}

			mu.Lock()
			defer mu.Unlock()
			for _, s := range symbols {
				if present[s.DisplayName] {
					report.Found = append(report.Found, s.QualifiedName())
				} else {
					report.Missing = append(report.Missing, s.QualifiedName())
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to verify graph: %w", err)
	}

	sort.Strings(report.Found)
	sort.Strings(report.Missing)

	v.logger.Info("Verified graph",
		zap.String("module", c.Module),
		zap.Int("found", len(report.Found)),
		zap.Int("missing", len(report.Missing)))

	if len(report.Missing) > 0 {
		return &report, fmt.Errorf("%w: %s", ErrMissingSymbols, strings.Join(report.Missing, ", "))
	}
	return &report, nil
}
