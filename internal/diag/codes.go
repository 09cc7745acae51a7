package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0
	// Лексические
	LexUnknownChar Code = 1001
	// Парсерные
	SynUnexpectedToken Code = 2001
	// Вычисление
	EvalOverflow     Code = 3001
	EvalLiteralRange Code = 3002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:        "Unknown error",
		LexUnknownChar:     "Lexing error",
		SynUnexpectedToken: "Parsing error",
		EvalOverflow:       "Evaluation overflowed",
		EvalLiteralRange:   "Literal cannot be represented as a u64",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
