package ast

// Op selects the evaluation rule of an infix node.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpPow: "**",
}

// String returns the operator as written in source.
func (op Op) String() string {
	if int(op) < len(opSymbols) {
		return opSymbols[op]
	}
	return "?"
}
