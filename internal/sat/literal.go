package sat

import "fmt"

// Literal represents a signed reference to a variable. A variable's two
// literals are encoded as 2*var+polarity so that the complement of a literal
// is a single bit flip (index XOR 1), per the encoding used throughout the
// package.
type Literal int32

// NullLiteral is the sentinel used where no literal is available (e.g. an
// aggregate reason has no single "conflicting" literal).
const NullLiteral Literal = -1

// PositiveLiteral returns the literal that holds when variable v is true.
func PositiveLiteral(v int) Literal {
	return Literal(v * 2)
}

// NegativeLiteral returns the literal that holds when variable v is false.
func NegativeLiteral(v int) Literal {
	return PositiveLiteral(v).Opposite()
}

// VarID returns the id of the literal's underlying variable.
func (l Literal) VarID() int {
	return int(l) / 2
}

// IsPositive reports whether l holds when its variable is true.
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the complementary literal, i.e. index(l) XOR 1.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l == NullLiteral {
		return "null"
	}
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID()+1)
	}
	return fmt.Sprintf("-%d", l.VarID()+1)
}
