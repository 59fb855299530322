package analyzer

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "upstreamcalls"
	analyzerDoc  = "reports outbound HTTP through net/http package helpers outside internal/upstream"

	upstreamPkgSuffix = "internal/upstream"
)

// helpers are the net/http functions that go through http.DefaultClient.
var helpers = map[string]bool{
	"Get":      true,
	"Head":     true,
	"Post":     true,
	"PostForm": true,
}

// Analyzer keeps upstream traffic on the tuned client in internal/upstream.
// Test files are ignored.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

func run(pass *analysis.Pass) (interface{}, error) {
	if strings.HasSuffix(pass.Pkg.Path(), upstreamPkgSuffix) {
		return nil, nil
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.SelectorExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(node ast.Node) {
		sel := node.(*ast.SelectorExpr)
		if isTestFile(pass, sel) {
			return
		}
		checkSelectorExpr(pass, sel)
	})

	return nil, nil
}

func checkSelectorExpr(pass *analysis.Pass, sel *ast.SelectorExpr) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return
	}

	obj := pass.TypesInfo.Uses[ident]
	if obj == nil {
		return
	}

	pkgName, ok := obj.(*types.PkgName)
	if !ok || pkgName.Imported().Path() != "net/http" {
		return
	}

	switch name := sel.Sel.Name; {
	case name == "DefaultClient":
		pass.Reportf(sel.Pos(), "http.DefaultClient is forbidden outside %s", upstreamPkgSuffix)
	case helpers[name]:
		pass.Reportf(sel.Pos(), "http.%s is forbidden outside %s", name, upstreamPkgSuffix)
	}
}

func isTestFile(pass *analysis.Pass, node ast.Node) bool {
	return strings.HasSuffix(pass.Fset.Position(node.Pos()).Filename, "_test.go")
}
