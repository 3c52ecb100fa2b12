// Package load extracts companion schemas from annotated Go packages.
//
// A record type opts into generation with a companion:generate directive
// comment, or by being named explicitly on the command line:
//
//	//companion:generate value=Get derive_field="Clone, Hash"
//	type User struct {
//		ID   uuid.UUID `companion:"rename=Ident"`
//		Name string
//		note string `companion:"-"`
//	}
//
// Loading is purely syntactic. The package is parsed but never
// type-checked, so a package whose code already references artifacts that
// are yet to be generated still loads.
package load

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Config holds the arguments for loading schemas from one Go package.
type Config struct {
	// Path is the package pattern to load, usually a directory.
	Path string
	// Names restricts loading to the given type names. Named types are
	// loaded whether or not they carry the directive comment. When empty,
	// every type carrying the directive is loaded.
	Names []string
	// BuildFlags are extra flags for the build system, as in go build.
	BuildFlags []string
}

// Load parses the configured package and returns the schemas of all
// selected record types. Schemas follow the request order of
// Config.Names; without Names they follow source order.
func (c *Config) Load() ([]*Schema, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode:       packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
		BuildFlags: c.BuildFlags,
	}, c.Path)
	if err != nil {
		return nil, fmt.Errorf("companion/load: load package %q: %w", c.Path, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("companion/load: no package found in %q", c.Path)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, fmt.Errorf("companion/load: parse package %q: %v", c.Path, pkg.Errors[0])
	}
	var schemas []*Schema
	for _, f := range pkg.Syntax {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				opts, marked, err := specOptions(gd, ts)
				if err != nil {
					return nil, fmt.Errorf("companion/load: %s: %w", pkg.Fset.Position(ts.Pos()), err)
				}
				if !marked && !slices.Contains(c.Names, ts.Name.Name) {
					continue
				}
				s, err := schemaOf(pkg, f, ts, opts)
				if err != nil {
					return nil, err
				}
				schemas = append(schemas, s)
			}
		}
	}
	if len(c.Names) > 0 {
		return orderByNames(schemas, c.Names, c.Path)
	}
	if len(schemas) == 0 {
		return nil, fmt.Errorf("companion/load: no %s directive in %q", directive, c.Path)
	}
	return schemas, nil
}

// specOptions parses the directive comment of one type declaration, if
// present. The directive may sit on the declaration itself or, inside a
// grouped declaration, on the individual type spec. A doc comment on a
// grouped declaration marks nothing; the directive must sit on the spec.
func specOptions(gd *ast.GenDecl, ts *ast.TypeSpec) (*Options, bool, error) {
	docs := []*ast.CommentGroup{ts.Doc}
	if len(gd.Specs) == 1 {
		docs = append(docs, gd.Doc)
	}
	for _, cg := range docs {
		if cg == nil {
			continue
		}
		for _, c := range cg.List {
			opts, ok, err := ParseDirective(c.Text)
			if err != nil {
				return nil, true, err
			}
			if ok {
				return opts, true, nil
			}
		}
	}
	return nil, false, nil
}

// schemaOf builds the schema of one selected struct type.
func schemaOf(pkg *packages.Package, file *ast.File, ts *ast.TypeSpec, opts *Options) (*Schema, error) {
	pos := pkg.Fset.Position(ts.Pos())
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("companion/load: %s: type %s is not a struct", pos, ts.Name.Name)
	}
	s := &Schema{
		Name:     ts.Name.Name,
		Pkg:      pkg.Name,
		PkgPath:  pkg.PkgPath,
		Pos:      pos.String(),
		Exported: ast.IsExported(ts.Name.Name),
		Options:  opts,
		Imports:  fileImports(file),
	}
	if ts.TypeParams != nil {
		for _, tp := range ts.TypeParams.List {
			constraint := types.ExprString(tp.Type)
			for _, name := range tp.Names {
				s.TypeParams = append(s.TypeParams, TypeParam{Name: name.Name, Constraint: constraint})
			}
		}
	}
	for _, fd := range st.Fields.List {
		if len(fd.Names) == 0 {
			return nil, fmt.Errorf("companion/load: %s: struct %s has an embedded field; companion fields must be named", pkg.Fset.Position(fd.Pos()), s.Name)
		}
		tag, err := fieldTag(fd)
		if err != nil {
			return nil, fmt.Errorf("companion/load: %s: struct %s: %w", pkg.Fset.Position(fd.Pos()), s.Name, err)
		}
		typ := types.ExprString(fd.Type)
		for _, name := range fd.Names {
			f := &Field{
				Name: name.Name,
				Type: typ,
				Pos:  pkg.Fset.Position(name.Pos()).String(),
			}
			if err := ParseTag(f, tag); err != nil {
				return nil, fmt.Errorf("companion/load: %s: struct %s: %w", pkg.Fset.Position(name.Pos()), s.Name, err)
			}
			s.Fields = append(s.Fields, f)
		}
	}
	return s, nil
}

// fieldTag returns the value of the companion struct tag of one field.
func fieldTag(fd *ast.Field) (string, error) {
	if fd.Tag == nil {
		return "", nil
	}
	tag, err := strconv.Unquote(fd.Tag.Value)
	if err != nil {
		return "", fmt.Errorf("invalid struct tag %s: %w", fd.Tag.Value, err)
	}
	return parseStructTag(tag, "companion")
}

// fileImports maps the package qualifiers usable inside the given file to
// their import paths. Loading is syntactic, so the qualifier of an
// unaliased import is guessed from its path; a wrong guess only disables
// explicit import rendering for that path, the generated file is fixed up
// by goimports either way.
func fileImports(file *ast.File) map[string]string {
	if len(file.Imports) == 0 {
		return nil
	}
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := ""
		if spec.Name != nil {
			if name = spec.Name.Name; name == "_" || name == "." {
				continue
			}
		} else {
			name = packageName(p)
		}
		imports[name] = p
	}
	return imports
}

// packageName guesses the package name of an import path. It covers the
// common layouts: the last path element, gopkg.in-style name.vN elements,
// and trailing /vN major-version directories.
func packageName(p string) string {
	base := path.Base(p)
	if i := strings.IndexByte(base, '.'); i > 0 {
		return base[:i]
	}
	if len(base) > 1 && base[0] == 'v' && strings.TrimLeft(base[1:], "0123456789") == "" {
		return packageName(path.Dir(p))
	}
	return base
}

// parseStructTag extracts the named key from a conventional struct tag.
// Unlike reflect.StructTag.Get it reports malformed tags instead of
// returning an empty value.
func parseStructTag(tag, key string) (string, error) {
	for tag != "" {
		i := 0
		for i < len(tag) && tag[i] == ' ' {
			i++
		}
		tag = tag[i:]
		if tag == "" {
			break
		}
		i = 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			return "", fmt.Errorf("malformed struct tag %q", tag)
		}
		name := tag[:i]
		tag = tag[i+1:]
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			return "", fmt.Errorf("unterminated struct tag value for %q", name)
		}
		value, err := strconv.Unquote(tag[:i+1])
		if err != nil {
			return "", fmt.Errorf("invalid struct tag value for %q: %w", name, err)
		}
		tag = tag[i+1:]
		if name == key {
			return value, nil
		}
	}
	return "", nil
}

// orderByNames reorders schemas to follow the requested name order,
// failing on names that matched no type in the package.
func orderByNames(schemas []*Schema, names []string, pattern string) ([]*Schema, error) {
	byName := make(map[string]*Schema, len(schemas))
	for _, s := range schemas {
		byName[s.Name] = s
	}
	ordered := make([]*Schema, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("companion/load: type %s not found in %q", name, pattern)
		}
		ordered = append(ordered, s)
	}
	return ordered, nil
}
