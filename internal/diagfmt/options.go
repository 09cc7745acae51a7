package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects how reports are written.
type Format uint8

const (
	FormatPretty Format = iota
	FormatShort
	FormatJSON
	FormatMsgPack
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatShort:
		return "short"
	case FormatJSON:
		return "json"
	case FormatMsgPack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag or config value to Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "pretty":
		return FormatPretty, nil
	case "short":
		return FormatShort, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgPack, nil
	default:
		return FormatPretty, fmt.Errorf("invalid format: %q (expected: pretty|short|json|msgpack)", s)
	}
}

// PrettyOpts configures pretty-printing of reports.
type PrettyOpts struct {
	Color    bool
	Context  bool // печатать строку исходника с подчёркиванием
	ShowHelp bool
}

// JSONOpts configures JSON and msgpack output of reports.
type JSONOpts struct {
	IncludePositions bool // добавить колонки
	IncludeHelp      bool
	Max              int // обрезка вывода, не Bag
}
