package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Быстрый путь: если нет \r, возвращаем как есть.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// SplitLines turns the content of a batch file into independent lines.
// BOM and CRLF line endings are normalized first; the trailing newline does not
// produce an extra empty line.
func SplitLines(name string, content []byte) []Line {
	content, _ = removeBOM(content)
	content, _ = normalizeCRLF(content)
	content = bytes.TrimSuffix(content, []byte{'\n'})
	if len(content) == 0 {
		return nil
	}

	name = normalizePath(name)
	parts := bytes.Split(content, []byte{'\n'})
	out := make([]Line, 0, len(parts))
	for i, p := range parts {
		no, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line number overflow: %w", err))
		}
		out = append(out, Line{Name: name, No: no, Text: string(p)})
	}
	return out
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	if p == "" || p[0] == '<' {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
