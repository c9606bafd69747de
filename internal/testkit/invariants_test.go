package testkit_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"stylekit/internal/ast"
	"stylekit/internal/driver"
	"stylekit/internal/prefix"
	"stylekit/internal/source"
	"stylekit/internal/testkit"
)

func TestProcessedTreeHoldsInvariants(t *testing.T) {
	src := "@media screen {\n  .a > .b { transition: opacity 1s; background: linear-gradient(red, blue) }\n}\n.c { user-select: none }\n"
	m := prefix.NewSupportMatrix(nil).Browser(prefix.Chrome, 25).Browser(prefix.IE, 11)
	res, err := driver.Process(context.Background(), "a.css", []byte(src), driver.Options{AutoRefine: true, Matrix: m})
	require.NoError(t, err)
	require.NoError(t, testkit.CheckTreeInvariants(res.Sheet, res.File))
}

func TestDetachedMemberIsNotVisited(t *testing.T) {
	res, err := driver.Process(context.Background(), "a.css", []byte(".a{color:red;margin:0}"), driver.Options{AutoRefine: true})
	require.NoError(t, err)
	rule := res.Sheet.Statements().Slice()[0].(*ast.Rule)
	d, ok := rule.Declarations().First()
	require.True(t, ok)
	d.Links().Detach()
	require.NoError(t, testkit.CheckTreeInvariants(res.Sheet, res.File))
}

func TestPositionOutsideFile(t *testing.T) {
	sheet := ast.NewStylesheet()
	sheet.Statements().Append(ast.NewRule(9, 1))
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("a.css", []byte(".a{}")))
	require.Error(t, testkit.CheckTreeInvariants(sheet, file))
	require.NoError(t, testkit.CheckTreeInvariants(sheet, nil))
}
