package diagfmt

import (
	"encoding/json"
	"io"

	"dogwood/internal/diag"
	"dogwood/internal/source"
)

// LabelJSON представляет метку отчёта
type LabelJSON struct {
	Text      string `json:"text,omitempty" msgpack:"text,omitempty"`
	StartByte uint32 `json:"start_byte" msgpack:"start_byte"`
	EndByte   uint32 `json:"end_byte" msgpack:"end_byte"`
	StartCol  uint32 `json:"start_col,omitempty" msgpack:"start_col,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty" msgpack:"end_col,omitempty"`
}

// ReportJSON представляет отчёт в JSON формате
type ReportJSON struct {
	Severity string      `json:"severity" msgpack:"severity"`
	Code     string      `json:"code" msgpack:"code"`
	Message  string      `json:"message" msgpack:"message"`
	Labels   []LabelJSON `json:"labels" msgpack:"labels"`
	Help     string      `json:"help,omitempty" msgpack:"help,omitempty"`
}

// ReportsOutput представляет корневую структуру вывода
type ReportsOutput struct {
	Input   string       `json:"input" msgpack:"input"`
	Line    uint32       `json:"line" msgpack:"line"`
	Reports []ReportJSON `json:"reports" msgpack:"reports"`
	Count   int          `json:"count" msgpack:"count"`
}

// BuildReportsOutput converts reports to their serialisable form.
func BuildReportsOutput(line source.Line, reports []diag.Report, opts JSONOpts) ReportsOutput {
	out := ReportsOutput{
		Input:   line.Name,
		Line:    line.No,
		Reports: make([]ReportJSON, 0, len(reports)),
		Count:   len(reports),
	}
	for i := range reports {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		r := &reports[i]
		rj := ReportJSON{
			Severity: r.Severity.String(),
			Code:     r.Code.ID(),
			Message:  r.Message,
			Labels:   make([]LabelJSON, 0, len(r.Labels)),
		}
		if opts.IncludeHelp {
			rj.Help = r.Help
		}
		for _, l := range r.Labels {
			lj := LabelJSON{Text: l.Text, StartByte: l.Span.Start, EndByte: l.Span.End}
			if opts.IncludePositions {
				start, end := line.Resolve(l.Span)
				lj.StartCol, lj.EndCol = start.Col, end.Col
			}
			rj.Labels = append(rj.Labels, lj)
		}
		out.Reports = append(out.Reports, rj)
	}
	return out
}

// JSON выводит отчёты одной строки как один JSON объект.
func JSON(w io.Writer, line source.Line, reports []diag.Report, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildReportsOutput(line, reports, opts))
}
