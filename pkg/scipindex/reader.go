package scipindex

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"github.com/context-maximiser/sample-fixture/pkg/models"
)

// ErrNoIndex is returned when the reader is used before an index was loaded.
var ErrNoIndex = errors.New("no SCIP index loaded")

// Reader parses SCIP index files and extracts symbol information
type Reader struct {
	index *scip.Index
}

func NewReader() *Reader {
	return &Reader{}
}

// ParseFile parses a SCIP index file
func (r *Reader) ParseFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read SCIP file: %w", err)
	}
	return r.ParseBytes(data)
}

// ParseBytes parses a serialized SCIP index.
func (r *Reader) ParseBytes(data []byte) error {
	idx := &scip.Index{}
	if err := proto.Unmarshal(data, idx); err != nil {
		return fmt.Errorf("failed to unmarshal SCIP data: %w", err)
	}
	r.index = idx
	return nil
}

// Metadata returns the metadata from the loaded index, or nil.
func (r *Reader) Metadata() *scip.Metadata {
	if r.index == nil {
		return nil
	}
	return r.index.Metadata
}

// ExtractSymbols returns one SymbolInfo per symbol defined in the index,
// positioned at its definition occurrence.
func (r *Reader) ExtractSymbols() ([]*models.SymbolInfo, error) {
	if r.index == nil {
		return nil, ErrNoIndex
	}

	var out []*models.SymbolInfo
	for _, doc := range r.index.Documents {
		defs := make(map[string]*scip.Occurrence)
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&int32(scip.SymbolRole_Definition) != 0 {
				defs[occ.Symbol] = occ
			}
		}

		for _, si := range doc.Symbols {
			sym, err := models.ParseSCIPSymbol(si.Symbol)
			if err != nil {
				return nil, fmt.Errorf("document %s: %w", doc.RelativePath, err)
			}

			info := &models.SymbolInfo{
				Symbol:        sym,
				Kind:          fromSCIPKind(si.Kind),
				DisplayName:   si.DisplayName,
				Receiver:      receiverOf(sym.Descriptor),
				Documentation: strings.Join(si.Documentation, "\n"),
				FilePath:      doc.RelativePath,
			}
			if info.DisplayName == "" {
				info.DisplayName = displayNameOf(sym.Descriptor)
			}
			if si.SignatureDocumentation != nil {
				info.Signature = si.SignatureDocumentation.Text
			}
			if occ, ok := defs[si.Symbol]; ok {
				info.StartLine, info.StartColumn, info.EndLine, info.EndColumn = convertRange(occ.Range)
			}
			out = append(out, info)
		}
	}

	return out, nil
}

// convertRange turns a 0-based SCIP range (3 or 4 elements) into 1-based
// line and column numbers.
func convertRange(r []int32) (startLine, startCol, endLine, endCol int) {
	switch len(r) {
	case 3:
		return int(r[0]) + 1, int(r[1]) + 1, int(r[0]) + 1, int(r[2]) + 1
	case 4:
		return int(r[0]) + 1, int(r[1]) + 1, int(r[2]) + 1, int(r[3]) + 1
	}
	return 0, 0, 0, 0
}

func packageOf(descriptor string) string {
	if i := strings.LastIndex(descriptor, "/"); i >= 0 {
		return descriptor[:i]
	}
	return ""
}

func receiverOf(descriptor string) string {
	name := descriptor[strings.LastIndex(descriptor, "/")+1:]
	i := strings.Index(name, "#")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return name[:i]
}

func displayNameOf(descriptor string) string {
	name := descriptor[strings.LastIndex(descriptor, "/")+1:]
	if i := strings.Index(name, "#"); i >= 0 && i < len(name)-1 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "().")
	name = strings.TrimSuffix(name, ".")
	return strings.TrimSuffix(name, "#")
}
