package source

// LineCol represents a human-readable position in a line.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, в рунах
}

// Line is one unit of input: the text of a single REPL turn or one line of a batch file.
// Spans produced while processing a Line are relative to Text.
type Line struct {
	Name string // "<stdin>", "<arg 1>", path of a batch file
	No   uint32 // 1-based line number within Name
	Text string
}
