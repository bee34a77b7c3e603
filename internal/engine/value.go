package engine

import (
	"strconv"
)

// Value is the result of one evaluation: a number with an optional unit.
// A zero Unit means a plain scalar.
type Value struct {
	Num  float64
	Unit string
}

// String renders the value the way the REPL prints it and the way it is
// stored in memory. Currencies keep their symbol prefix ("$480") so a
// stored result substitutes back into an expression as a valid currency
// literal; other units are appended after a space ("4.8 km").
func (v Value) String() string {
	num := strconv.FormatFloat(v.Num, 'g', -1, 64)
	if v.Unit == "" {
		return num
	}
	if sym, ok := currencySymbol[v.Unit]; ok {
		return sym + num
	}
	return num + " " + v.Unit
}
