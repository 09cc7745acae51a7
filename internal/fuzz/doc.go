// Package fuzztests houses Go fuzz harnesses for the line pipeline
// (lexer -> parser -> evaluator -> renderer). They guard against panics,
// hangs and spans that escape the input on arbitrary bytes.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
