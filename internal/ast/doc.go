// Package ast holds the expression tree produced by the parser.
//
// Nodes are plain data: a Number leaf only remembers where its literal is in
// the line, and an Infix node owns its two operands. Nothing here evaluates;
// the only behaviour is structural (postfix rendering, size queries).
package ast
