// Package trace records what the calculator does with each input line.
//
// A REPL session or batch run is a driver span, every line a turn span,
// and lex+parse, eval and render are phase spans inside it. At debug level
// the evaluator adds one mark per node it computed.
//
//	dogwood --trace=- --trace-level=phase
//	dogwood eval --trace=run.ndjson --trace-level=debug "2 ** 10"
//
// Spans travel in the context:
//
//	ctx = trace.WithRecorder(ctx, rec)
//	ctx, turn := trace.Start(ctx, trace.ScopeTurn, "turn")
//	defer turn.End("ok")
package trace
