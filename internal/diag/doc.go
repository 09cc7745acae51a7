// Package diag defines the failure and report model of the calculator.
//
// # Data model
//
// The parser service hands over Failure values: LexFailure (a single error
// span) or ParseFailure (the lexeme where parsing stopped plus repair
// sequences of Insert / Delete / Shift edits). The evaluator produces
// *eval.Failure. Render and RenderEval turn either into a Report:
//
//   - Severity – always SevError today.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – "lexing error", "parsing error", "evaluation overflowed", ...
//   - Labels – ordered (text, span) pairs in the order the user sees them.
//   - Help – the parser service's own explanation, copied verbatim.
//
// Only the first repair sequence of a ParseFailure becomes labels. Deletes
// whose spans touch are merged; inserts point at the error lexeme.
//
// # Scope
//
// Package diag does not format or print. Rendering to text, JSON or msgpack
// lives in internal/diagfmt.
package diag
