// Package scipindex writes and reads golden SCIP indexes for a scanned
// catalog, so indexer output can be compared file for file.
package scipindex

import (
	"fmt"
	"os"

	"github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	"github.com/context-maximiser/sample-fixture/pkg/catalog"
	"github.com/context-maximiser/sample-fixture/pkg/models"
)

// Build converts a catalog into a SCIP index with one document per file and
// a definition occurrence per symbol.
func Build(c *catalog.Catalog, toolName, toolVersion string) *scip.Index {
	idx := &scip.Index{
		Metadata: &scip.Metadata{
			Version: scip.ProtocolVersion_UnspecifiedProtocolVersion,
			ToolInfo: &scip.ToolInfo{
				Name:      toolName,
				Version:   toolVersion,
				Arguments: []string{c.Module, c.Version},
			},
			ProjectRoot:          "file:///" + c.Module,
			TextDocumentEncoding: scip.TextEncoding_UTF8,
		},
	}

	docs := make(map[string]*scip.Document)
	for _, path := range c.Files() {
		doc := &scip.Document{Language: "go", RelativePath: path}
		docs[path] = doc
		idx.Documents = append(idx.Documents, doc)
	}

	for _, s := range c.Symbols {
		doc := docs[s.FilePath]
		symbol := s.Symbol.String()

		// SCIP ranges are 0-based [line, startChar, endChar] for single line spans.
		line := int32(s.StartLine - 1)
		doc.Occurrences = append(doc.Occurrences, &scip.Occurrence{
			Range:       []int32{line, int32(s.StartColumn - 1), int32(s.EndColumn - 1)},
			Symbol:      symbol,
			SymbolRoles: int32(scip.SymbolRole_Definition),
		})

		info := &scip.SymbolInformation{
			Symbol:      symbol,
			Kind:        toSCIPKind(s.Kind),
			DisplayName: s.DisplayName,
		}
		if s.Documentation != "" {
			info.Documentation = []string{s.Documentation}
		}
		if s.Signature != "" {
			info.SignatureDocumentation = &scip.Document{Language: "go", Text: s.Signature}
		}
		if s.Receiver != "" {
			parent := models.GoDescriptor{Package: packageOf(s.Symbol.Descriptor), Type: s.Receiver}
			info.EnclosingSymbol = models.NewGoSCIPSymbol(s.Symbol.Name, s.Symbol.Version, parent.String()).String()
		}
		doc.Symbols = append(doc.Symbols, info)
	}

	return idx
}

// Write marshals idx to path.
func Write(path string, idx *scip.Index) error {
	data, err := proto.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal SCIP index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write SCIP index: %w", err)
	}
	return nil
}

func toSCIPKind(k models.SymbolKind) scip.SymbolInformation_Kind {
	switch k {
	case models.FunctionSymbol:
		return scip.SymbolInformation_Function
	case models.MethodSymbol:
		return scip.SymbolInformation_Method
	case models.TypeSymbol:
		return scip.SymbolInformation_Type
	case models.FieldSymbol:
		return scip.SymbolInformation_Field
	default:
		return scip.SymbolInformation_UnspecifiedKind
	}
}

func fromSCIPKind(k scip.SymbolInformation_Kind) models.SymbolKind {
	switch k {
	case scip.SymbolInformation_Method:
		return models.MethodSymbol
	case scip.SymbolInformation_Type, scip.SymbolInformation_Class,
		scip.SymbolInformation_Struct, scip.SymbolInformation_Interface:
		return models.TypeSymbol
	case scip.SymbolInformation_Field:
		return models.FieldSymbol
	default:
		return models.FunctionSymbol
	}
}
