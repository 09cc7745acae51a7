// Package token defines lexical token kinds for the dogwood calculator.
// Invariants:
//   - Token.Text is a slice of the original line (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace never appears in the token stream.
//   - EOF has an empty span positioned at the end of the line.
package token
