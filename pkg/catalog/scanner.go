// Package catalog builds the symbol table of a Go source tree. It is the
// reference an indexer's output is checked against.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"go/types"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/context-maximiser/sample-fixture/pkg/models"
	"github.com/context-maximiser/sample-fixture/pkg/sample"
)

// ErrNoSymbols is returned when a scan finds no declarations at all.
var ErrNoSymbols = errors.New("no symbols found")

// Catalog is the sorted symbol table of one scanned tree.
type Catalog struct {
	Module  string               `json:"module" yaml:"module"`
	Version string               `json:"version" yaml:"version"`
	Symbols []*models.SymbolInfo `json:"symbols" yaml:"symbols"`
}

// ScanFixture scans the embedded sources of the sample package.
func ScanFixture(module, version string) (*Catalog, error) {
	return Scan(sample.Sources, module, version)
}

// Scan parses every non-test .go file in fsys and records its functions,
// methods, types and struct fields.
func Scan(fsys fs.FS, module, version string) (*Catalog, error) {
	c := &Catalog{Module: module, Version: version}
	fset := token.NewFileSet()

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && shouldSkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(p, ".go") || strings.HasSuffix(p, "_test.go") {
			return nil
		}

		src, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		file, err := parser.ParseFile(fset, p, src, parser.ParseComments)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", p, err)
		}

		v := &fileVisitor{catalog: c, fset: fset, filePath: p, pkg: packagePath(p, file.Name.Name)}
		for _, decl := range file.Decls {
			v.visitDecl(decl)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan sources: %w", err)
	}

	if len(c.Symbols) == 0 {
		return nil, ErrNoSymbols
	}

	sort.SliceStable(c.Symbols, func(i, j int) bool {
		a, b := c.Symbols[i], c.Symbols[j]
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.StartLine != b.StartLine {
			return a.StartLine < b.StartLine
		}
		return a.StartColumn < b.StartColumn
	})

	return c, nil
}

// Lookup finds a symbol by its qualified name (Func, Type or Type.Method).
func (c *Catalog) Lookup(name string) (*models.SymbolInfo, bool) {
	for _, s := range c.Symbols {
		if s.QualifiedName() == name {
			return s, true
		}
	}
	return nil, false
}

// Missing returns the names that have no symbol in the catalog, in input order.
func (c *Catalog) Missing(names []string) []string {
	var missing []string
	for _, n := range names {
		if _, ok := c.Lookup(n); !ok {
			missing = append(missing, n)
		}
	}
	return missing
}

// Filter returns the symbols of the given kinds.
func (c *Catalog) Filter(kinds ...models.SymbolKind) []*models.SymbolInfo {
	var out []*models.SymbolInfo
	for _, s := range c.Symbols {
		for _, k := range kinds {
			if s.Kind == k {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// Files returns the distinct file paths in catalog order.
func (c *Catalog) Files() []string {
	var files []string
	seen := make(map[string]bool)
	for _, s := range c.Symbols {
		if !seen[s.FilePath] {
			seen[s.FilePath] = true
			files = append(files, s.FilePath)
		}
	}
	return files
}

type fileVisitor struct {
	catalog  *Catalog
	fset     *token.FileSet
	filePath string
	pkg      string
}

func (v *fileVisitor) visitDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		v.visitFunc(d)
	case *ast.GenDecl:
		if d.Tok != token.TYPE {
			return
		}
		for _, spec := range d.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(d.Specs) == 1 {
				doc = d.Doc
			}
			v.visitType(ts, doc)
		}
	}
}

func (v *fileVisitor) visitFunc(fn *ast.FuncDecl) {
	if fn.Name == nil {
		return
	}

	desc := models.GoDescriptor{Package: v.pkg, Method: fn.Name.Name}
	kind := models.FunctionSymbol
	recv := receiverName(fn)
	if recv != "" {
		desc.Type = recv
		kind = models.MethodSymbol
	}

	v.add(&models.SymbolInfo{
		Kind:          kind,
		DisplayName:   fn.Name.Name,
		Receiver:      recv,
		Documentation: docText(fn.Doc),
		Signature:     v.funcSignature(fn),
	}, desc, fn.Name)
}

func (v *fileVisitor) visitType(ts *ast.TypeSpec, doc *ast.CommentGroup) {
	name := ts.Name.Name
	sig := "type " + name
	if ts.TypeParams != nil {
		sig += "[" + fieldListString(ts.TypeParams) + "]"
	}
	switch ts.Type.(type) {
	case *ast.StructType:
		sig += " struct"
	case *ast.InterfaceType:
		sig += " interface"
	default:
		sig += " " + types.ExprString(ts.Type)
	}

	v.add(&models.SymbolInfo{
		Kind:          models.TypeSymbol,
		DisplayName:   name,
		Documentation: docText(doc),
		Signature:     sig,
	}, models.GoDescriptor{Package: v.pkg, Type: name}, ts.Name)

	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return
	}
	for _, field := range st.Fields.List {
		for _, fname := range field.Names {
			v.add(&models.SymbolInfo{
				Kind:          models.FieldSymbol,
				DisplayName:   fname.Name,
				Receiver:      name,
				Documentation: docText(field.Doc),
				Signature:     fname.Name + " " + types.ExprString(field.Type),
			}, models.GoDescriptor{Package: v.pkg, Type: name, Field: fname.Name}, fname)
		}
	}
}

// add records info with the range of its defining identifier, the same
// single-line span a SCIP definition occurrence carries.
func (v *fileVisitor) add(info *models.SymbolInfo, desc models.GoDescriptor, ident *ast.Ident) {
	start := v.fset.Position(ident.Pos())

	info.Symbol = models.NewGoSCIPSymbol(v.catalog.Module, v.catalog.Version, desc.String())
	info.FilePath = v.filePath
	info.StartLine = start.Line
	info.StartColumn = start.Column
	info.EndLine = start.Line
	info.EndColumn = start.Column + len(ident.Name)

	v.catalog.Symbols = append(v.catalog.Symbols, info)
}

func (v *fileVisitor) funcSignature(fn *ast.FuncDecl) string {
	decl := *fn
	decl.Doc = nil
	decl.Body = nil

	var buf bytes.Buffer
	if err := printer.Fprint(&buf, v.fset, &decl); err != nil {
		return "func " + fn.Name.Name
	}
	return buf.String()
}

func receiverName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	expr := fn.Recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	case *ast.IndexListExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	}
	return ""
}

func fieldListString(fl *ast.FieldList) string {
	var parts []string
	for _, f := range fl.List {
		var names []string
		for _, n := range f.Names {
			names = append(names, n.Name)
		}
		parts = append(parts, strings.Join(names, ", ")+" "+types.ExprString(f.Type))
	}
	return strings.Join(parts, ", ")
}

func docText(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	return strings.TrimSpace(cg.Text())
}

// packagePath is the descriptor prefix: the directory for nested packages,
// the package name at the root.
func packagePath(filePath, pkgName string) string {
	dir := path.Dir(filePath)
	if dir == "." {
		return pkgName
	}
	return dir
}

func shouldSkipDir(name string) bool {
	return name == "vendor" || name == "testdata" || strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
