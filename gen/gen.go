// Package gen generates the companion tag type and variant mapping for
// a sealed-interface union type, so the type can be stored in a
// variantset.Set. It is the build-time collaborator of the container;
// cmd/variantgen wraps it in a CLI meant for go:generate.
//
// A union type is an interface sealed by an unexported niladic marker
// method, for example:
//
//	type Event interface {
//		isEvent()
//		Variant() EventVariant
//	}
//
// Every top-level type in the package declaring the marker method is a
// variant. The generated file provides the EventVariant tag type with
// one dense constant per variant, its Ordinal and String methods, and
// a Variant method on every variant type.
package gen

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Union describes a sealed-interface union type found in a package.
type Union struct {
	Package  string   // name of the package the union is declared in
	Name     string   // interface type name
	Marker   string   // unexported niladic method sealing the interface
	Variants []string // variant type names, in file/source order
}

// Parse locates the union type in the package at dir and resolves its
// variants. Test files are ignored.
func Parse(dir, typeName string) (*Union, error) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, dir, notTestFile, 0)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", dir, err)
	}

	for _, pkgName := range sortedKeys(pkgs) {
		pkg := pkgs[pkgName]
		spec := findType(pkg, typeName)
		if spec == nil {
			continue
		}
		iface, ok := spec.Type.(*ast.InterfaceType)
		if !ok {
			return nil, fmt.Errorf("type %s in package %s is not an interface", typeName, pkgName)
		}
		marker, ok := markerOf(iface)
		if !ok {
			return nil, fmt.Errorf("interface %s has no unexported niladic marker method", typeName)
		}
		variants := variantsOf(pkg, marker)
		if len(variants) == 0 {
			return nil, fmt.Errorf("union %s has no variants: no type declares %s()", typeName, marker)
		}
		return &Union{
			Package:  pkgName,
			Name:     typeName,
			Marker:   marker,
			Variants: variants,
		}, nil
	}
	return nil, fmt.Errorf("type %s not found in %s", typeName, dir)
}

// TagName is the name of the generated tag type.
func (u *Union) TagName() string {
	return u.Name + "Variant"
}

// Generate renders the tag type, its constants and the Variant mapping
// as gofmt-formatted source.
func (u *Union) Generate() ([]byte, error) {
	tag := u.TagName()

	var b bytes.Buffer
	b.WriteString("// Code generated by variantgen; DO NOT EDIT.\n\n")
	fmt.Fprintf(&b, "package %s\n\n", u.Package)
	b.WriteString("import \"fmt\"\n\n")

	fmt.Fprintf(&b, "// %s identifies a variant of %s without its payload.\n", tag, u.Name)
	fmt.Fprintf(&b, "type %s uint8\n\n", tag)

	b.WriteString("const (\n")
	for i, v := range u.Variants {
		if i == 0 {
			fmt.Fprintf(&b, "\t%s%s %s = iota\n", tag, v, tag)
		} else {
			fmt.Fprintf(&b, "\t%s%s\n", tag, v)
		}
	}
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "// Ordinal returns the dense index of the variant.\n")
	fmt.Fprintf(&b, "func (v %s) Ordinal() int { return int(v) }\n\n", tag)

	fmt.Fprintf(&b, "func (v %s) String() string {\n", tag)
	b.WriteString("\tswitch v {\n")
	for _, v := range u.Variants {
		fmt.Fprintf(&b, "\tcase %s%s:\n\t\treturn %q\n", tag, v, v)
	}
	b.WriteString("\t}\n")
	fmt.Fprintf(&b, "\treturn fmt.Sprintf(%q, uint8(v))\n}\n\n", tag+"(%d)")

	for _, v := range u.Variants {
		fmt.Fprintf(&b, "// Variant returns the tag of the %s variant.\n", v)
		fmt.Fprintf(&b, "func (%s) Variant() %s { return %s%s }\n\n", v, tag, tag, v)
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source for %s: %w", u.Name, err)
	}
	return src, nil
}

// DefaultFilename is where the generated source goes when no output
// path is given.
func DefaultFilename(dir, typeName string) string {
	return filepath.Join(dir, strings.ToLower(typeName)+"_variant.go")
}

func notTestFile(fi fs.FileInfo) bool {
	return !strings.HasSuffix(fi.Name(), "_test.go")
}

func findType(pkg *ast.Package, typeName string) *ast.TypeSpec {
	for _, fname := range sortedKeys(pkg.Files) {
		for _, decl := range pkg.Files[fname].Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if ok && ts.Name.Name == typeName {
					return ts
				}
			}
		}
	}
	return nil
}

// markerOf picks the first unexported method with no parameters and no
// results; that method seals the interface.
func markerOf(iface *ast.InterfaceType) (string, bool) {
	for _, m := range iface.Methods.List {
		if len(m.Names) == 0 {
			continue // embedded interface
		}
		ft, ok := m.Type.(*ast.FuncType)
		if !ok {
			continue
		}
		name := m.Names[0].Name
		if ast.IsExported(name) {
			continue
		}
		if ft.Params.NumFields() == 0 && ft.Results.NumFields() == 0 {
			return name, true
		}
	}
	return "", false
}

// variantsOf collects every top-level type declaring the marker method,
// in sorted-file source order.
func variantsOf(pkg *ast.Package, marker string) []string {
	var variants []string
	seen := make(map[string]bool)
	for _, fname := range sortedKeys(pkg.Files) {
		for _, decl := range pkg.Files[fname].Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || fd.Name.Name != marker {
				continue
			}
			recv := receiverName(fd.Recv)
			if recv == "" || seen[recv] {
				continue
			}
			seen[recv] = true
			variants = append(variants, recv)
		}
	}
	return variants
}

func receiverName(recv *ast.FieldList) string {
	if len(recv.List) == 0 {
		return ""
	}
	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
