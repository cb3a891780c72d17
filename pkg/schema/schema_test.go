package schema

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQuerier struct {
	statements []string
	failOn     string
}

func (r *recordingQuerier) ExecuteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	r.statements = append(r.statements, cypher)
	if r.failOn != "" && strings.Contains(cypher, r.failOn) {
		return nil, errors.New("rejected")
	}
	return nil, nil
}

func TestCreateSchema(t *testing.T) {
	q := &recordingQuerier{}
	require.NoError(t, NewManager(q, nil).CreateSchema(context.Background()))

	require.Len(t, q.statements, len(Constraints())+len(Indexes()))
	assert.Equal(t, "CREATE CONSTRAINT fixture_module_unique IF NOT EXISTS FOR (n:Fixture) REQUIRE n.module IS UNIQUE", q.statements[0])
	assert.Equal(t, "CREATE CONSTRAINT fixture_symbol_kind IF NOT EXISTS FOR (n:FixtureSymbol) REQUIRE n.kind IS NOT NULL", q.statements[2])
	assert.Equal(t, "CREATE INDEX fixture_symbol_location IF NOT EXISTS FOR (n:FixtureSymbol) ON (n.filePath, n.startLine)", q.statements[4])
}

func TestCreateSchemaFailure(t *testing.T) {
	q := &recordingQuerier{failOn: "fixture_symbol_unique"}
	err := NewManager(q, nil).CreateSchema(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create constraint fixture_symbol_unique")
	assert.Len(t, q.statements, 2)
}

func TestDropSchema(t *testing.T) {
	q := &recordingQuerier{}
	require.NoError(t, NewManager(q, nil).DropSchema(context.Background()))

	assert.Equal(t, "DROP INDEX fixture_symbol_name IF EXISTS", q.statements[0])
	assert.Equal(t, "DROP CONSTRAINT fixture_symbol_kind IF EXISTS", q.statements[len(q.statements)-1])
}

func TestUnsupportedConstraint(t *testing.T) {
	_, err := constraintCypher(Constraint{Name: "x", Type: "NODE_KEY"})
	assert.ErrorContains(t, err, "unsupported constraint type")
}
