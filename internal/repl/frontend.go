package repl

import (
	"dogwood/internal/ast"
	"dogwood/internal/diag"
)

// Frontend is the parser service a Session drives. It returns a tree only
// when parsing succeeded, possibly after repairs; failures may accompany a
// tree.
type Frontend interface {
	Parse(src string) (*ast.Expr, []diag.Failure)
	diag.Explainer
}
