// Package memory implements the session variable store for recalc.
// Every evaluated result is bound to a variable, either a name the user
// chose or an auto-incremented number, so later expressions can reference
// earlier results with $-tokens.
package memory

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LastResult is the reserved variable that always holds the most recent
// evaluation result.
const LastResult = "_"

var (
	// ErrNotFound is returned when an operation references a variable
	// that is not bound.
	ErrNotFound = errors.New("variable not found")

	// ErrRecursionLimit is returned when substitution exceeds the pass
	// cap, which almost always means a circular variable reference.
	ErrRecursionLimit = errors.New("substitution recursion limit exceeded (circular variable reference?)")
)

// Memory holds the variable bindings for one session. Values are kept in
// their rendered string form; the engine re-parses them when they are
// substituted back into an expression. Not safe for concurrent use: the
// REPL processes one line at a time.
type Memory struct {
	bindings map[string]string
	nextAuto int
}

// New returns an empty Memory with the auto-name counter at 1.
func New() *Memory {
	return &Memory{
		bindings: make(map[string]string),
		nextAuto: 1,
	}
}

// Store binds value under name and returns the name used. An empty name
// assigns the next auto-increment number as the name. Auto names are never
// reused within a session, even after a delete.
func (m *Memory) Store(name, value string) string {
	if name == "" {
		name = strconv.Itoa(m.nextAuto)
		m.nextAuto++
	}
	m.bindings[name] = value
	return name
}

// UpdateLast records value as the most recent result under the reserved
// "_" binding.
func (m *Memory) UpdateLast(value string) {
	m.bindings[LastResult] = value
}

// Get returns the value bound to name.
func (m *Memory) Get(name string) (string, bool) {
	v, ok := m.bindings[name]
	return v, ok
}

// Delete removes the binding for name. The bindings are left untouched if
// name is not bound.
func (m *Memory) Delete(name string) error {
	if _, ok := m.bindings[name]; !ok {
		return fmt.Errorf("$%s: %w", name, ErrNotFound)
	}
	delete(m.bindings, name)
	return nil
}

// Clear removes every binding and resets the auto-name counter to 1.
func (m *Memory) Clear() {
	m.bindings = make(map[string]string)
	m.nextAuto = 1
}

// Len returns the number of bindings.
func (m *Memory) Len() int {
	return len(m.bindings)
}

// NamedVariables returns the user-named variables, each with a "$" prefix,
// for listing and completion. Keys that are purely decimal digits are
// treated as auto-assigned results and skipped, even if the user chose
// such a name deliberately.
func (m *Memory) NamedVariables() []string {
	var names []string
	for name := range m.bindings {
		if isAllDigits(name) {
			continue
		}
		names = append(names, "$"+name)
	}
	return names
}

// Dump renders every binding as one "$name = value" row, sorted
// lexicographically by key. Auto-assigned names sort as strings, so "10"
// comes before "2"; callers rely on this ordering. Returns a sentinel
// message when there are no bindings.
func (m *Memory) Dump() string {
	if len(m.bindings) == 0 {
		return "no variables stored"
	}

	keys := make([]string, 0, len(m.bindings))
	for k := range m.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "$%s = %s", k, m.bindings[k])
	}
	return sb.String()
}

// State returns a copy of the bindings and the auto-name counter, for
// serialization by the persistence layer.
func (m *Memory) State() (map[string]string, int) {
	bindings := make(map[string]string, len(m.bindings))
	for k, v := range m.bindings {
		bindings[k] = v
	}
	return bindings, m.nextAuto
}

// Replace swaps in a whole new state, discarding the current bindings and
// counter. Restore goes through here so a half-decoded snapshot can never
// leak into a live Memory.
func (m *Memory) Replace(bindings map[string]string, nextAuto int) {
	if bindings == nil {
		bindings = make(map[string]string)
	}
	if nextAuto < 1 {
		nextAuto = 1
	}
	m.bindings = bindings
	m.nextAuto = nextAuto
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
