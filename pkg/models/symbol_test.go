package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSCIPSymbol(t *testing.T) {
	raw := "scip-go go github.com/acme/fixture v1.0.0 sample/DataProcessor#Process()."

	sym, err := ParseSCIPSymbol(raw)
	require.NoError(t, err)

	assert.Equal(t, "scip-go", sym.Scheme)
	assert.Equal(t, "go", sym.Manager)
	assert.Equal(t, "github.com/acme/fixture", sym.Name)
	assert.Equal(t, "v1.0.0", sym.Version)
	assert.Equal(t, "sample/DataProcessor#Process().", sym.Descriptor)
	assert.Equal(t, raw, sym.String())
}

func TestParseSCIPSymbolInvalid(t *testing.T) {
	for _, raw := range []string{"", "scip-go go name", "scip-go  go v1 desc"} {
		_, err := ParseSCIPSymbol(raw)
		assert.ErrorIs(t, err, ErrInvalidSymbol, raw)
	}
}

func TestGoDescriptor(t *testing.T) {
	tests := []struct {
		desc GoDescriptor
		want string
	}{
		{GoDescriptor{Package: "sample", Method: "Greet"}, "sample/Greet()."},
		{GoDescriptor{Package: "sample", Type: "Point"}, "sample/Point#"},
		{GoDescriptor{Package: "sample", Type: "Point", Field: "X"}, "sample/Point#X."},
		{GoDescriptor{Package: "sample", Type: "DataProcessor", Method: "Process"}, "sample/DataProcessor#Process()."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.desc.String())
	}
}

func TestSymbolInfo(t *testing.T) {
	info := &SymbolInfo{
		Kind:        MethodSymbol,
		DisplayName: "Process",
		Receiver:    "DataProcessor",
		FilePath:    "process.go",
		StartLine:   30,
		StartColumn: 1,
	}

	assert.True(t, info.IsExported())
	assert.Equal(t, "DataProcessor.Process", info.QualifiedName())
	assert.Equal(t, "process.go:30:1", info.GenerateSymbolID())
	assert.Equal(t, []string{"Method"}, info.Kind.GraphLabels())

	info.Symbol = NewGoSCIPSymbol("m", "v1", "sample/DataProcessor#Process().")
	assert.Equal(t, "scip-go go m v1 sample/DataProcessor#Process().", info.GenerateSymbolID())

	assert.False(t, (&SymbolInfo{DisplayName: "name"}).IsExported())
	assert.Equal(t, []string{"Class", "Interface"}, TypeSymbol.GraphLabels())
	assert.Equal(t, []string{"Variable"}, FieldSymbol.GraphLabels())
}
