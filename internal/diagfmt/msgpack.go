package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"dogwood/internal/diag"
	"dogwood/internal/source"
)

// MsgPack пишет отчёты одной строки как один msgpack объект; при нескольких
// строках получается поток объектов, читаемый msgpack.Decoder подряд.
func MsgPack(w io.Writer, line source.Line, reports []diag.Report, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildReportsOutput(line, reports, opts))
}

// DecodeMsgPack reads one object written by MsgPack.
func DecodeMsgPack(r io.Reader) (ReportsOutput, error) {
	var out ReportsOutput
	dec := msgpack.NewDecoder(r)
	err := dec.Decode(&out)
	return out, err
}
