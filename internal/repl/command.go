package repl

import (
	"regexp"
	"strings"
)

// Kind tags a classified input line.
type Kind int

const (
	// Blank is an empty or whitespace-only line, a no-op.
	Blank Kind = iota
	// Quit ends the session.
	Quit
	// ClearScreen wipes the terminal.
	ClearScreen
	// Help prints the command reference.
	Help
	// Save writes memory to a snapshot slot (Name, may be empty).
	Save
	// Restore replaces memory from a snapshot slot (Name, may be empty).
	Restore
	// List dumps all variables.
	List
	// DeleteAll clears every variable and resets the auto counter.
	DeleteAll
	// DeleteVar removes one variable (Name).
	DeleteVar
	// AssignRaw stores Text under Name without evaluation.
	AssignRaw
	// AssignEval evaluates Text and stores the result under Name.
	AssignEval
	// Evaluate evaluates Text and auto-names the result.
	Evaluate
)

var kindNames = map[Kind]string{
	Blank:       "blank",
	Quit:        "quit",
	ClearScreen: "clear-screen",
	Help:        "help",
	Save:        "save",
	Restore:     "restore",
	List:        "list",
	DeleteAll:   "delete-all",
	DeleteVar:   "delete-var",
	AssignRaw:   "assign-raw",
	AssignEval:  "assign-eval",
	Evaluate:    "evaluate",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Command is one classified input line.
type Command struct {
	Kind Kind
	// Name is the variable name for delete/assign forms or the slot name
	// for save/restore (empty means the default slot).
	Name string
	// Text is the raw value for AssignRaw or the expression for
	// AssignEval and Evaluate.
	Text string
}

// Keywords are matched case-sensitively. The assignment forms must be
// tried before the catch-all expression case, and raw assignment ("<=")
// before evaluated assignment ("=").
var (
	quitRe       = regexp.MustCompile(`^(?:quit|q|exit)$`)
	clearRe      = regexp.MustCompile(`^(?:clear|cs)$`)
	helpRe       = regexp.MustCompile(`^(?:help|wtf)$`)
	saveRe       = regexp.MustCompile(`^save(?:\s+([0-9A-Za-z_-]+))?$`)
	restoreRe    = regexp.MustCompile(`^(?:restore|load)(?:\s+([0-9A-Za-z_-]+))?$`)
	listRe       = regexp.MustCompile(`^(?:list|ls)$`)
	deleteAllRe  = regexp.MustCompile(`^delete\s+all$`)
	deleteVarRe  = regexp.MustCompile(`^delete\s+\$([0-9A-Za-z_]+)$`)
	assignRawRe  = regexp.MustCompile(`^\$([0-9A-Za-z_]+)\s*<=\s*(\S.*)$`)
	assignEvalRe = regexp.MustCompile(`^\$([0-9A-Za-z_]+)\s*=\s*(\S.*)$`)
)

// Classify maps a raw input line to a Command. Any non-blank line that
// matches no command pattern is an expression to evaluate.
func Classify(line string) Command {
	trimmed := strings.TrimSpace(line)

	switch {
	case trimmed == "":
		return Command{Kind: Blank}
	case quitRe.MatchString(trimmed):
		return Command{Kind: Quit}
	case clearRe.MatchString(trimmed):
		return Command{Kind: ClearScreen}
	case helpRe.MatchString(trimmed):
		return Command{Kind: Help}
	case listRe.MatchString(trimmed):
		return Command{Kind: List}
	case deleteAllRe.MatchString(trimmed):
		return Command{Kind: DeleteAll}
	}

	if m := saveRe.FindStringSubmatch(trimmed); m != nil {
		return Command{Kind: Save, Name: m[1]}
	}
	if m := restoreRe.FindStringSubmatch(trimmed); m != nil {
		return Command{Kind: Restore, Name: m[1]}
	}
	if m := deleteVarRe.FindStringSubmatch(trimmed); m != nil {
		return Command{Kind: DeleteVar, Name: m[1]}
	}
	if m := assignRawRe.FindStringSubmatch(trimmed); m != nil {
		return Command{Kind: AssignRaw, Name: m[1], Text: strings.TrimSpace(m[2])}
	}
	if m := assignEvalRe.FindStringSubmatch(trimmed); m != nil {
		return Command{Kind: AssignEval, Name: m[1], Text: strings.TrimSpace(m[2])}
	}
	return Command{Kind: Evaluate, Text: trimmed}
}
