// Package introspect builds SubjectDescriptors from Go source. It is the
// introspection stage of the pipeline: it resolves the target element type
// from the subject.Subject embed, enumerates candidate methods in
// declaration order, and attaches directive-declared modifiers and
// parameter annotations. It reads metadata only and never writes files.
package introspect

import (
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/proofkit/iterwrap/internal/annotations"
	"github.com/proofkit/iterwrap/internal/errors"
	"github.com/proofkit/iterwrap/internal/models"
	"github.com/proofkit/iterwrap/pkg/subject"
)

// elementSlot is the type-argument position of the target element type in
// the subject.Subject[S, T] embed. Fixed at build time, not configurable.
const elementSlot = 1

// Introspector extracts subject descriptors from parsed Go packages.
type Introspector struct {
	fset       *token.FileSet
	directives *annotations.Parser
}

// NewIntrospector creates an introspector with a fresh file set.
func NewIntrospector() *Introspector {
	return &Introspector{
		fset:       token.NewFileSet(),
		directives: annotations.NewParser(),
	}
}

// typeDecl is one struct type declaration and where it was found.
type typeDecl struct {
	name     string
	strct    *ast.StructType
	doc      *ast.CommentGroup
	file     *ast.File
	fileName string
}

// methodDecl is one method declaration bound to its receiver's base name.
type methodDecl struct {
	decl     *ast.FuncDecl
	file     *ast.File
	fileName string
}

// sourcePackage is the parsed view of a single package.
type sourcePackage struct {
	name     string
	path     string
	types    map[string]*typeDecl
	methods  map[string][]*methodDecl
	subjects []string
}

// hierarchyInfo is the resolved embed chain of one subject type.
type hierarchyInfo struct {
	chain       []string // subject first, intermediates after; base excluded
	baseName    string   // the base embed as written, e.g. "subject.Subject"
	elementType string
	elementFile *ast.File // file declaring the base embed
	foreign     []string  // local embeds outside the hierarchy
}

// DescribePackage parses the package in dir and returns one descriptor per
// type carrying an //iterwrap::subject directive, in declaration order.
func (i *Introspector) DescribePackage(dir string) ([]*models.SubjectDescriptor, error) {
	pkgs, err := parser.ParseDir(i.fset, dir, sourceFileFilter, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrapf(errors.FileSystemErrorCode, err, "failed to parse directory %s", dir)
	}
	if len(pkgs) == 0 {
		return nil, errors.Newf(errors.ValidationErrorCode, "no Go packages found in %s", dir)
	}
	if len(pkgs) > 1 {
		return nil, errors.Newf(errors.ValidationErrorCode, "multiple packages found in %s", dir)
	}

	var pkg *ast.Package
	var pkgName string
	for name, p := range pkgs {
		pkg, pkgName = p, name
	}

	src, err := i.collect(pkgName, dir, pkg.Files)
	if err != nil {
		return nil, err
	}

	var descriptors []*models.SubjectDescriptor
	for _, typeName := range src.subjects {
		d, err := i.describeType(src, typeName)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// DescribeSource parses a single source string and describes typeName in
// it. Used by tests and by callers that already hold the source text.
func (i *Introspector) DescribeSource(fileName, source, typeName string) (*models.SubjectDescriptor, error) {
	file, err := parser.ParseFile(i.fset, fileName, source, parser.ParseComments)
	if err != nil {
		return nil, errors.Wrap(errors.DescriptorErrorCode, "failed to parse source", err)
	}

	src, err := i.collect(file.Name.Name, "", map[string]*ast.File{fileName: file})
	if err != nil {
		return nil, err
	}
	return i.describeType(src, typeName)
}

// sourceFileFilter skips test files and previously generated wrapper files.
func sourceFileFilter(fi fs.FileInfo) bool {
	name := fi.Name()
	return !strings.HasSuffix(name, "_test.go") && !strings.HasSuffix(name, "_iterwrap.go")
}

// collect walks the package files in stable name order and indexes struct
// declarations, methods per receiver, and subject-directive targets.
func (i *Introspector) collect(pkgName, path string, files map[string]*ast.File) (*sourcePackage, error) {
	src := &sourcePackage{
		name:    pkgName,
		path:    path,
		types:   make(map[string]*typeDecl),
		methods: make(map[string][]*methodDecl),
	}

	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		file := files[fileName]
		for _, decl := range file.Decls {
			switch node := decl.(type) {
			case *ast.GenDecl:
				if node.Tok != token.TYPE {
					continue
				}
				for _, spec := range node.Specs {
					typeSpec, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					structType, ok := typeSpec.Type.(*ast.StructType)
					if !ok {
						continue
					}

					doc := node.Doc
					if typeSpec.Doc != nil {
						doc = typeSpec.Doc
					}
					td := &typeDecl{
						name:     typeSpec.Name.Name,
						strct:    structType,
						doc:      doc,
						file:     file,
						fileName: fileName,
					}
					src.types[td.name] = td

					marked, err := i.hasSubjectDirective(td)
					if err != nil {
						return nil, err
					}
					if marked {
						src.subjects = append(src.subjects, td.name)
					}
				}

			case *ast.FuncDecl:
				recv := receiverTypeName(node.Recv)
				if recv == "" {
					continue
				}
				src.methods[recv] = append(src.methods[recv], &methodDecl{
					decl:     node,
					file:     file,
					fileName: fileName,
				})
			}
		}
	}

	return src, nil
}

// hasSubjectDirective reports whether a type doc carries
// //iterwrap::subject, validating every directive it finds on the way.
func (i *Introspector) hasSubjectDirective(td *typeDecl) (bool, error) {
	if td.doc == nil {
		return false, nil
	}

	marked := false
	for _, comment := range td.doc.List {
		if !annotations.IsDirective(comment.Text) {
			continue
		}
		parsed, err := i.directives.Parse(comment.Text, td.name, i.location(comment.Pos()))
		if err != nil {
			return false, err
		}
		if parsed.Type == annotations.AnnotationSubject {
			marked = true
		}
	}
	return marked, nil
}

// describeType builds the full descriptor for one subject type.
func (i *Introspector) describeType(src *sourcePackage, typeName string) (*models.SubjectDescriptor, error) {
	td, ok := src.types[typeName]
	if !ok {
		return nil, errors.NewDescriptorError(typeName, "type not found in package "+src.name)
	}

	h, err := i.resolveHierarchy(src, typeName, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.NewDescriptorError(typeName, "does not embed subject.Subject[S, T]")
	}

	methods, usedFiles, err := i.collectMethods(src, h)
	if err != nil {
		return nil, err
	}

	d := &models.SubjectDescriptor{
		PackageName:   src.name,
		PackagePath:   src.path,
		Name:          typeName,
		ElementType:   h.elementType,
		ElementImport: i.elementImport(h),
		BaseName:      h.baseName,
		Hierarchy:     append(append([]string{}, h.chain...), h.baseName),
		Methods:       methods,
		FileImports:   fileImports(usedFiles),
		SourceFile:    td.fileName,
	}
	return d, nil
}

// resolveHierarchy follows embedded fields from typeName down to the
// subject base. It returns nil when no path to the base exists; it returns
// an error for a base embed with a missing or raw element slot.
func (i *Introspector) resolveHierarchy(src *sourcePackage, typeName string, visited map[string]bool) (*hierarchyInfo, error) {
	if visited[typeName] {
		return nil, nil
	}
	visited[typeName] = true

	td, ok := src.types[typeName]
	if !ok {
		return nil, nil
	}

	var locals []string
	var found *hierarchyInfo
	for _, field := range td.strct.Fields.List {
		if len(field.Names) != 0 {
			continue
		}

		expr := field.Type
		if star, ok := expr.(*ast.StarExpr); ok {
			expr = star.X
		}

		if base, elem, err := i.baseEmbed(td, expr); err != nil {
			return nil, err
		} else if base != "" {
			if found == nil {
				found = &hierarchyInfo{
					chain:       []string{typeName},
					baseName:    base,
					elementType: elem,
					elementFile: td.file,
				}
			}
			continue
		}

		if ident, ok := expr.(*ast.Ident); ok {
			locals = append(locals, ident.Name)
		}
	}

	// A direct base embed ends the walk; every other local embed sits
	// outside the hierarchy.
	if found != nil {
		found.foreign = locals
		return found, nil
	}

	// No direct base embed: try each local embed as an intermediate.
	for n, local := range locals {
		sub, err := i.resolveHierarchy(src, local, visited)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			sub.chain = append([]string{typeName}, sub.chain...)
			sub.foreign = append(sub.foreign, locals[:n]...)
			sub.foreign = append(sub.foreign, locals[n+1:]...)
			return sub, nil
		}
	}

	return nil, nil
}

// baseEmbed inspects one embedded field expression. It returns the base
// name and element type when expr is a properly instantiated
// subject.Subject embed, an error when the embed is raw or missing the
// element slot, and empty strings otherwise.
func (i *Introspector) baseEmbed(td *typeDecl, expr ast.Expr) (string, string, error) {
	var sel *ast.SelectorExpr
	var indices []ast.Expr

	switch e := expr.(type) {
	case *ast.IndexListExpr:
		if s, ok := e.X.(*ast.SelectorExpr); ok {
			sel, indices = s, e.Indices
		}
	case *ast.IndexExpr:
		if s, ok := e.X.(*ast.SelectorExpr); ok {
			sel, indices = s, []ast.Expr{e.Index}
		}
	case *ast.SelectorExpr:
		sel = e
	}

	if sel == nil || sel.Sel.Name != "Subject" {
		return "", "", nil
	}
	alias, ok := sel.X.(*ast.Ident)
	if !ok || !importsSubjectPackage(td.file, alias.Name) {
		return "", "", nil
	}

	if len(indices) <= elementSlot {
		return "", "", errors.NewDescriptorError(td.name,
			"subject.Subject embed does not expose the target element type slot").
			WithLocation(i.location(expr.Pos()))
	}

	elem, err := typeString(indices[elementSlot])
	if err != nil {
		return "", "", errors.NewDescriptorError(td.name,
			"target element type: "+err.Error()).
			WithLocation(i.location(expr.Pos()))
	}
	return alias.Name + "." + sel.Sel.Name, elem, nil
}

// collectMethods enumerates candidate methods for the hierarchy, subject
// type first, in declaration order. A name declared lower in the chain
// shadows the same name declared higher up or on a foreign embed.
func (i *Introspector) collectMethods(src *sourcePackage, h *hierarchyInfo) ([]models.MethodDescriptor, []*ast.File, error) {
	var methods []models.MethodDescriptor
	seen := make(map[string]bool)
	usedFiles := make(map[*ast.File]bool)
	if h.elementFile != nil {
		usedFiles[h.elementFile] = true
	}

	declaring := append(append([]string{}, h.chain...), h.foreign...)
	for _, typeName := range declaring {
		for _, m := range src.methods[typeName] {
			name := m.decl.Name.Name
			if seen[name] {
				continue
			}
			seen[name] = true

			md, err := i.describeMethod(typeName, m)
			if err != nil {
				return nil, nil, err
			}
			methods = append(methods, md)
			usedFiles[m.file] = true
		}
	}

	return methods, sortedFiles(usedFiles), nil
}

// describeMethod builds one MethodDescriptor, applying modifier and param
// directives from the method's doc comment.
func (i *Introspector) describeMethod(declaredBy string, m *methodDecl) (models.MethodDescriptor, error) {
	name := m.decl.Name.Name
	target := declaredBy + "." + name

	params, err := paramDescriptors(m.decl.Type)
	if err != nil {
		return models.MethodDescriptor{}, errors.NewDescriptorError(target, err.Error()).
			WithLocation(i.location(m.decl.Pos()))
	}
	results, err := resultTypes(m.decl.Type)
	if err != nil {
		return models.MethodDescriptor{}, errors.NewDescriptorError(target, err.Error()).
			WithLocation(i.location(m.decl.Pos()))
	}

	md := models.MethodDescriptor{
		Name:       name,
		DeclaredBy: declaredBy,
		Visibility: models.VisibilityPackage,
		Params:     params,
		Results:    results,
	}
	if ast.IsExported(name) {
		md.Visibility = models.VisibilityPublic
	}

	if m.decl.Doc == nil {
		return md, nil
	}

	for _, comment := range m.decl.Doc.List {
		if !annotations.IsDirective(comment.Text) {
			continue
		}
		parsed, err := i.directives.Parse(comment.Text, target, i.location(comment.Pos()))
		if err != nil {
			return md, err
		}

		switch parsed.Type {
		case annotations.AnnotationFinal:
			md.Final = true
		case annotations.AnnotationStatic:
			md.Static = true
		case annotations.AnnotationPrivate:
			md.Private = true
		case annotations.AnnotationParam:
			if parsed.ParamIndex >= len(md.Params) {
				return md, errors.NewDescriptorError(target,
					"param directive references parameter "+strconv.Itoa(parsed.ParamIndex)+
						" but the method has "+strconv.Itoa(len(md.Params))+" parameter(s)").
					WithLocation(parsed.Location)
			}
			p := &md.Params[parsed.ParamIndex]
			p.Annotations = append(p.Annotations, parsed.Names...)
		}
	}

	return md, nil
}

// paramDescriptors flattens a parameter list, one descriptor per declared
// name, with grouped names sharing a type.
func paramDescriptors(ft *ast.FuncType) ([]models.ParameterDescriptor, error) {
	if ft.Params == nil {
		return nil, nil
	}

	var params []models.ParameterDescriptor
	for _, field := range ft.Params.List {
		variadic := false
		typeExpr := field.Type
		if ellipsis, ok := typeExpr.(*ast.Ellipsis); ok {
			variadic = true
			typeExpr = ellipsis.Elt
		}
		typeStr, err := typeString(typeExpr)
		if err != nil {
			return nil, err
		}

		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			params = append(params, models.ParameterDescriptor{
				Type:     typeStr,
				Variadic: variadic,
			})
		}
	}
	return params, nil
}

// resultTypes flattens the result list into ordered type names.
func resultTypes(ft *ast.FuncType) ([]string, error) {
	if ft.Results == nil {
		return nil, nil
	}

	var results []string
	for _, field := range ft.Results.List {
		typeStr, err := typeString(field.Type)
		if err != nil {
			return nil, err
		}
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			results = append(results, typeStr)
		}
	}
	return results, nil
}

// receiverTypeName unwraps a receiver expression down to its base type
// name, tolerating pointers and generic instantiations.
func receiverTypeName(recv *ast.FieldList) string {
	if recv == nil || len(recv.List) == 0 {
		return ""
	}

	t := recv.List[0].Type
	for {
		switch e := t.(type) {
		case *ast.StarExpr:
			t = e.X
		case *ast.IndexExpr:
			t = e.X
		case *ast.IndexListExpr:
			t = e.X
		case *ast.ParenExpr:
			t = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// importsSubjectPackage reports whether alias is bound to the subject
// runtime package in the given file.
func importsSubjectPackage(file *ast.File, alias string) bool {
	for _, imp := range file.Imports {
		path := strings.Trim(imp.Path.Value, `"`)
		name := importName(imp)
		if name != alias {
			continue
		}
		if path == subject.ImportPath || strings.HasSuffix(path, "/pkg/subject") {
			return true
		}
	}
	return false
}

// elementImport resolves the import path behind the element type's
// qualifier, if any.
func (i *Introspector) elementImport(h *hierarchyInfo) string {
	qs := qualifiers(h.elementType)
	if len(qs) == 0 || h.elementFile == nil {
		return ""
	}
	for _, imp := range h.elementFile.Imports {
		if importName(imp) == qs[0] {
			return strings.Trim(imp.Path.Value, `"`)
		}
	}
	return ""
}

// fileImports gathers the imports of the given files, deduplicated by path
// and sorted for deterministic emission.
func fileImports(files []*ast.File) []models.ImportSpec {
	byPath := make(map[string]string)
	for _, file := range files {
		for _, imp := range file.Imports {
			path := strings.Trim(imp.Path.Value, `"`)
			if _, ok := byPath[path]; !ok {
				byPath[path] = importName(imp)
			}
		}
	}

	paths := make([]string, 0, len(byPath))
	for path := range byPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	specs := make([]models.ImportSpec, 0, len(paths))
	for _, path := range paths {
		specs = append(specs, models.ImportSpec{Alias: byPath[path], Path: path})
	}
	return specs
}

// importName returns the local name an import is bound to.
func importName(imp *ast.ImportSpec) string {
	if imp.Name != nil {
		return imp.Name.Name
	}
	path := strings.Trim(imp.Path.Value, `"`)
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// sortedFiles returns the file set in a stable order keyed by position.
func sortedFiles(files map[*ast.File]bool) []*ast.File {
	out := make([]*ast.File, 0, len(files))
	for f := range files {
		out = append(out, f)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Pos() < out[b].Pos() })
	return out
}

func (i *Introspector) location(pos token.Pos) errors.SourceLocation {
	p := i.fset.Position(pos)
	return errors.SourceLocation{File: p.Filename, Line: p.Line}
}
