// Package parser turns one line of calculator input into an expression tree.
//
// The grammar has four levels: '+' '-' (left), '*' '/' '%' (left), '**'
// (right) and atoms (INT or a parenthesised expression). Parsing is a
// precedence-climbing loop over an op table.
//
// Syntax errors never stop the line. Each recovery point records a
// diag.ParseFailure with the repair sequences that were considered, the
// applied one first:
//
//   - stray tokens where an operand is expected are deleted; if no operand
//     follows, INT is inserted and the tree is dropped;
//   - stray tokens where an operator is expected are deleted;
//   - a missing ')' at the end of the line is inserted.
//
// A lexing error does stop the line: Parse returns that one failure and no
// tree. Service wraps Parse with token names and failure explanations for
// the diagnostic renderer.
package parser
