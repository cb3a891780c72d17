package models

import (
	"errors"
	"fmt"
	"go/ast"
	"strings"
)

// ErrInvalidSymbol is returned when a SCIP symbol string does not have the
// five space separated parts.
var ErrInvalidSymbol = errors.New("invalid SCIP symbol")

// SCIPSymbol represents a SCIP (Source Code Intelligence Protocol) symbol
// Format: <scheme> <manager> <name> <version> <descriptor>
// Example: scip-go go github.com/context-maximiser/sample-fixture v1.0.0 sample/DataProcessor#Process().
type SCIPSymbol struct {
	Scheme     string `json:"scheme" yaml:"scheme"`
	Manager    string `json:"manager" yaml:"manager"`
	Name       string `json:"name" yaml:"name"`
	Version    string `json:"version" yaml:"version"`
	Descriptor string `json:"descriptor" yaml:"descriptor"`
}

// String returns the SCIP symbol as a formatted string
func (s *SCIPSymbol) String() string {
	return fmt.Sprintf("%s %s %s %s %s", s.Scheme, s.Manager, s.Name, s.Version, s.Descriptor)
}

// ParseSCIPSymbol parses a SCIP symbol string into components
func ParseSCIPSymbol(symbol string) (*SCIPSymbol, error) {
	parts := strings.SplitN(symbol, " ", 5)
	if len(parts) != 5 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
	}

	return &SCIPSymbol{
		Scheme:     parts[0],
		Manager:    parts[1],
		Name:       parts[2],
		Version:    parts[3],
		Descriptor: parts[4],
	}, nil
}

// NewGoSCIPSymbol creates a SCIP symbol for Go code
func NewGoSCIPSymbol(module, version, descriptor string) *SCIPSymbol {
	return &SCIPSymbol{
		Scheme:     "scip-go",
		Manager:    "go",
		Name:       module,
		Version:    version,
		Descriptor: descriptor,
	}
}

// GoDescriptor builds the descriptor part of a Go SCIP symbol.
type GoDescriptor struct {
	Package string
	Type    string
	Method  string
	Field   string
}

// String formats the Go descriptor according to SCIP conventions:
// pkg/Type#, pkg/Type#Method()., pkg/Type#Field., pkg/Func().
func (d *GoDescriptor) String() string {
	var b strings.Builder

	if d.Package != "" {
		b.WriteString(d.Package)
		b.WriteString("/")
	}
	if d.Type != "" {
		b.WriteString(d.Type)
		b.WriteString("#")
	}
	if d.Method != "" {
		b.WriteString(d.Method)
		b.WriteString("().")
	}
	if d.Field != "" {
		b.WriteString(d.Field)
		b.WriteString(".")
	}

	return b.String()
}

// SymbolKind represents different kinds of symbols
type SymbolKind string

const (
	FunctionSymbol SymbolKind = "Function"
	MethodSymbol   SymbolKind = "Method"
	TypeSymbol     SymbolKind = "Type"
	FieldSymbol    SymbolKind = "Field"
)

// GraphLabels are the node labels a code graph indexer stores this kind
// under.
func (k SymbolKind) GraphLabels() []string {
	switch k {
	case TypeSymbol:
		return []string{"Class", "Interface"}
	case FieldSymbol:
		return []string{"Variable"}
	case MethodSymbol:
		return []string{"Method"}
	default:
		return []string{"Function"}
	}
}

// SymbolInfo represents metadata about a code symbol
type SymbolInfo struct {
	Symbol        *SCIPSymbol `json:"symbol" yaml:"symbol"`
	Kind          SymbolKind  `json:"kind" yaml:"kind"`
	DisplayName   string      `json:"displayName" yaml:"displayName"`
	Receiver      string      `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Documentation string      `json:"documentation,omitempty" yaml:"documentation,omitempty"`
	Signature     string      `json:"signature,omitempty" yaml:"signature,omitempty"`
	FilePath      string      `json:"filePath" yaml:"filePath"`
	StartLine     int         `json:"startLine" yaml:"startLine"`
	EndLine       int         `json:"endLine" yaml:"endLine"`
	StartColumn   int         `json:"startColumn" yaml:"startColumn"`
	EndColumn     int         `json:"endColumn" yaml:"endColumn"`
}

// QualifiedName is Receiver.DisplayName for methods and fields, DisplayName
// otherwise.
func (si *SymbolInfo) QualifiedName() string {
	if si.Receiver != "" {
		return si.Receiver + "." + si.DisplayName
	}
	return si.DisplayName
}

// IsExported returns true if the symbol is exported (public)
func (si *SymbolInfo) IsExported() bool {
	return ast.IsExported(si.DisplayName)
}

// GenerateSymbolID generates a unique ID for the symbol (for use as Neo4j node key)
func (si *SymbolInfo) GenerateSymbolID() string {
	if si.Symbol != nil {
		return si.Symbol.String()
	}
	// Fallback: use file path and position
	return fmt.Sprintf("%s:%d:%d", si.FilePath, si.StartLine, si.StartColumn)
}
