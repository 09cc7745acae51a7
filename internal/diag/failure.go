package diag

import (
	"fmt"

	"dogwood/internal/source"
	"dogwood/internal/token"
)

// Failure is a lex or parse failure reported by the parser service.
// The set is closed: LexFailure and ParseFailure.
type Failure interface {
	// Span is where the failure was detected.
	Span() source.Span
	Code() Code
	failure()
}

// LexFailure marks input the lexer could not turn into a token.
type LexFailure struct {
	Err source.Span
}

func (f LexFailure) Span() source.Span { return f.Err }
func (LexFailure) Code() Code          { return LexUnknownChar }
func (LexFailure) failure()            {}

func (f LexFailure) String() string {
	return fmt.Sprintf("lex failure at %s", f.Err)
}

// RepairKind is one edit of a repair sequence.
type RepairKind uint8

const (
	RepairInsert RepairKind = iota + 1
	RepairDelete
	RepairShift
)

func (k RepairKind) String() string {
	switch k {
	case RepairInsert:
		return "Insert"
	case RepairDelete:
		return "Delete"
	case RepairShift:
		return "Shift"
	default:
		return "Unknown"
	}
}

// Repair is a single suggested edit. Insert carries Token,
// Delete and Shift carry the Span of an existing token.
type Repair struct {
	Kind  RepairKind
	Span  source.Span
	Token token.Kind
}

func Insert(k token.Kind) Repair          { return Repair{Kind: RepairInsert, Token: k} }
func Delete(sp source.Span) Repair        { return Repair{Kind: RepairDelete, Span: sp} }
func Shift(sp source.Span) Repair         { return Repair{Kind: RepairShift, Span: sp} }
func (r Repair) IsInsert() bool           { return r.Kind == RepairInsert }

// ParseFailure is a syntax error at Lexeme with the repair sequences that
// let parsing continue. The first sequence is the one that was applied.
type ParseFailure struct {
	Lexeme  source.Span
	Repairs [][]Repair
}

func (f ParseFailure) Span() source.Span { return f.Lexeme }
func (ParseFailure) Code() Code          { return SynUnexpectedToken }
func (ParseFailure) failure()            {}

// First returns the applied repair sequence, nil when none was found.
func (f ParseFailure) First() []Repair {
	if len(f.Repairs) == 0 {
		return nil
	}
	return f.Repairs[0]
}

func (f ParseFailure) String() string {
	return fmt.Sprintf("parse failure at %s (%d repair sequences)", f.Lexeme, len(f.Repairs))
}
