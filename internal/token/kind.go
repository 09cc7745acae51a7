package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the line.
	EOF

	// Int represents an unsigned decimal literal.
	Int

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the exponentiation operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent operator token.
	Percent // %
	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
)

var kindNames = [...]string{
	Invalid:  "Invalid",
	EOF:      "EOF",
	Int:      "Int",
	Plus:     "Plus",
	Minus:    "Minus",
	Star:     "Star",
	StarStar: "StarStar",
	Slash:    "Slash",
	Percent:  "Percent",
	LParen:   "LParen",
	RParen:   "RParen",
}

// displayNames are what users see in repair suggestions ("insert INT").
var displayNames = [...]string{
	Invalid:  "INVALID",
	EOF:      "EOF",
	Int:      "INT",
	Plus:     "'+'",
	Minus:    "'-'",
	Star:     "'*'",
	StarStar: "'**'",
	Slash:    "'/'",
	Percent:  "'%'",
	LParen:   "'('",
	RParen:   "')'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Display returns the human-readable name of the kind.
func (k Kind) Display() string {
	if int(k) < len(displayNames) {
		return displayNames[k]
	}
	return "UNKNOWN"
}
