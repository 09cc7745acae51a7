package parser

import (
	"dogwood/internal/ast"
	"dogwood/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * / %
	precPower          = 3 // **
)

// getBinaryOperatorPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный)
func getBinaryOperatorPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative, false
	// возведение в степень (правоассоциативно)
	case token.StarStar:
		return precPower, true
	default:
		return -1, false // не бинарный оператор
	}
}

// tokenKindToBinaryOp преобразует токен в оператор дерева
func tokenKindToBinaryOp(kind token.Kind) (ast.Op, bool) {
	switch kind {
	case token.Plus:
		return ast.OpAdd, true
	case token.Minus:
		return ast.OpSub, true
	case token.Star:
		return ast.OpMul, true
	case token.Slash:
		return ast.OpDiv, true
	case token.Percent:
		return ast.OpMod, true
	case token.StarStar:
		return ast.OpPow, true
	default:
		return 0, false
	}
}
