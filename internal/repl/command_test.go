package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Command
	}{
		{"blank", "", Command{Kind: Blank}},
		{"whitespace only", "   \t ", Command{Kind: Blank}},

		{"quit", "quit", Command{Kind: Quit}},
		{"quit short", "q", Command{Kind: Quit}},
		{"exit", "exit", Command{Kind: Quit}},

		{"clear", "clear", Command{Kind: ClearScreen}},
		{"clear short", "cs", Command{Kind: ClearScreen}},

		{"help", "help", Command{Kind: Help}},
		{"help wtf", "wtf", Command{Kind: Help}},

		{"list", "list", Command{Kind: List}},
		{"list short", "ls", Command{Kind: List}},

		{"delete all", "delete all", Command{Kind: DeleteAll}},
		{"delete var", "delete $x", Command{Kind: DeleteVar, Name: "x"}},
		{"delete auto var", "delete $12", Command{Kind: DeleteVar, Name: "12"}},

		{"save default", "save", Command{Kind: Save}},
		{"save named", "save work", Command{Kind: Save, Name: "work"}},
		{"restore default", "restore", Command{Kind: Restore}},
		{"restore named", "restore work", Command{Kind: Restore, Name: "work"}},
		{"load alias", "load work", Command{Kind: Restore, Name: "work"}},

		{"raw assignment", "$x <= 42 km", Command{Kind: AssignRaw, Name: "x", Text: "42 km"}},
		{"eval assignment", "$x = 2 + 2", Command{Kind: AssignEval, Name: "x", Text: "2 + 2"}},
		{"eval assignment tight", "$rate=0.25", Command{Kind: AssignEval, Name: "rate", Text: "0.25"}},

		{"bare expression", "2 + 2", Command{Kind: Evaluate, Text: "2 + 2"}},
		{"expression with vars", "$1 + $2", Command{Kind: Evaluate, Text: "$1 + $2"}},
		{"expression trimmed", "  sqrt(2)  ", Command{Kind: Evaluate, Text: "sqrt(2)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestClassify_RawBeforeEval(t *testing.T) {
	// "<=" must never be read as "=" with a stray "<".
	cmd := Classify("$x <= $y + 1")
	assert.Equal(t, AssignRaw, cmd.Kind)
	assert.Equal(t, "$y + 1", cmd.Text)
}

func TestClassify_KeywordsAreCaseSensitive(t *testing.T) {
	for _, line := range []string{"QUIT", "Help", "LS", "Save"} {
		cmd := Classify(line)
		assert.Equal(t, Evaluate, cmd.Kind, "line %q", line)
	}
}

func TestClassify_CommandLookalikesAreExpressions(t *testing.T) {
	tests := []string{
		"save me please", // extra args: not a save command
		"delete $x + 1",  // trailing text: not a delete
		"list all",
		"quit now",
	}
	for _, line := range tests {
		cmd := Classify(line)
		assert.Equal(t, Evaluate, cmd.Kind, "line %q", line)
	}
}
