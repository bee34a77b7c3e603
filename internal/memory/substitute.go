package memory

import (
	"fmt"
	"regexp"
)

// varToken matches a variable reference: "$" followed by a maximal run of
// name characters. The greedy run means "$1a" is one token naming "1a",
// never "$1" followed by a literal "a".
var varToken = regexp.MustCompile(`\$[0-9A-Za-z_]+`)

// maxPasses caps substitution recursion. A chain of variable-to-variable
// references resolves one link per pass, so any legitimate chain finishes
// well under the cap; only a cycle keeps substituting forever.
const maxPasses = 100

// Substitute resolves $-tokens in expr against the current bindings.
//
// Each pass replaces every bound token simultaneously: all matches are
// resolved against the bindings as they were at the start of the pass, and
// replacement text is never rescanned within the same pass. Tokens that
// name no binding are left in place, dollar sign included, so text like
// "$480" with no variable "480" reaches the engine untouched and can be
// read as a currency literal.
//
// If a pass made at least one replacement the result is scanned again,
// so a variable whose value contains another $-token resolves fully.
// A pass with no replacements ends the recursion. Exceeding the pass cap
// aborts with ErrRecursionLimit and no partial result.
func (m *Memory) Substitute(expr string) (string, error) {
	current := expr
	for pass := 0; pass < maxPasses; pass++ {
		replaced := false
		next := varToken.ReplaceAllStringFunc(current, func(token string) string {
			value, ok := m.bindings[token[1:]]
			if !ok {
				return token
			}
			replaced = true
			return value
		})
		if !replaced {
			return next, nil
		}
		current = next
	}
	return "", fmt.Errorf("substituting %q: %w", expr, ErrRecursionLimit)
}
