package neo4j

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	cypher string
	params map[string]any
}

type fakeQuerier struct {
	calls   []call
	records []*neo4j.Record
	err     error
}

func (f *fakeQuerier) ExecuteQuery(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	f.calls = append(f.calls, call{cypher: compact(cypher), params: params})
	return f.records, f.err
}

func record(keys []string, values ...any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func TestMergeNode(t *testing.T) {
	q := &fakeQuerier{records: []*neo4j.Record{record([]string{"id"}, "4:abc:1")}}

	id, err := MergeNode(context.Background(), q, []string{"Fixture", "Module"},
		map[string]any{"module": "m"}, map[string]any{"version": "v1"})
	require.NoError(t, err)

	assert.Equal(t, "4:abc:1", id)
	require.Len(t, q.calls, 1)
	assert.Equal(t, "MERGE (n:Fixture:Module {module: $merge.module}) SET n += $set RETURN elementId(n) as id", q.calls[0].cypher)
	assert.Equal(t, map[string]any{"version": "v1"}, q.calls[0].params["set"])
}

func TestMergeNodeKeyOrderIsStable(t *testing.T) {
	merge := map[string]any{"symbol": "s", "module": "m", "file": "f.go", "kind": "Function"}

	for i := 0; i < 20; i++ {
		q := &fakeQuerier{records: []*neo4j.Record{record([]string{"id"}, "1")}}
		_, err := MergeNode(context.Background(), q, []string{"FixtureSymbol"}, merge, nil)
		require.NoError(t, err)
		assert.Equal(t,
			"MERGE (n:FixtureSymbol {file: $merge.file, kind: $merge.kind, module: $merge.module, symbol: $merge.symbol}) SET n += $set RETURN elementId(n) as id",
			q.calls[0].cypher)
	}
}

func TestMergeNodeErrors(t *testing.T) {
	ctx := context.Background()

	_, err := MergeNode(ctx, &fakeQuerier{err: errors.New("boom")}, []string{"X"}, map[string]any{"k": 1}, nil)
	assert.ErrorContains(t, err, "failed to merge node: boom")

	_, err = MergeNode(ctx, &fakeQuerier{}, []string{"X"}, map[string]any{"k": 1}, nil)
	assert.ErrorContains(t, err, "no records")

	_, err = MergeNode(ctx, &fakeQuerier{records: []*neo4j.Record{record([]string{"id"}, 42)}}, []string{"X"}, map[string]any{"k": 1}, nil)
	assert.ErrorContains(t, err, "failed to extract node ID")
}

func TestDatabaseInfo(t *testing.T) {
	q := &fakeQuerier{records: []*neo4j.Record{
		record([]string{"name", "versions", "edition"}, "Neo4j Kernel", []any{"5.20.0"}, "community"),
	}}

	info, err := DatabaseInfo(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "Neo4j Kernel", info["name"])
	assert.Equal(t, "community", info["edition"])
}

func TestQueryBuilder(t *testing.T) {
	ctx := context.Background()

	q := &fakeQuerier{records: []*neo4j.Record{
		record([]string{"name"}, "Greet"),
		record([]string{"name"}, "Add"),
		record([]string{"name"}, nil),
	}}
	names, err := NewQueryBuilder(q).FindNames(ctx, []string{"Function"}, []string{"Greet", "Add", "Run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Add", "Greet"}, names)
	assert.Equal(t, []string{"Function"}, q.calls[0].params["labels"])

	q = &fakeQuerier{records: []*neo4j.Record{record([]string{"total"}, int64(17))}}
	total, err := NewQueryBuilder(q).CountFixtureSymbols(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, 17, total)

	q = &fakeQuerier{}
	_, err = NewQueryBuilder(q).FindNodesByLabel(ctx, "Function", 5)
	require.NoError(t, err)
	assert.Equal(t, "MATCH (n:Function) RETURN n LIMIT 5", q.calls[0].cypher)

	_, err = NewQueryBuilder(&fakeQuerier{err: errors.New("down")}).FindNames(ctx, nil, nil)
	assert.ErrorContains(t, err, "down")
}
