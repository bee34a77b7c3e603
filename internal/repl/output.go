package repl

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// promptStyle for the input prompt
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// nameStyle for variable names in results
	nameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	// dimStyle for muted hints and confirmations
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// errorStyle for error diagnostics
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// helpTitleStyle for section headers in help output
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))
)

// formatResult renders a "$name = value" result line.
func formatResult(name, value string) string {
	return nameStyle.Render("$"+name) + " = " + value
}

const helpText = `expressions
  2 + 2                 evaluate and store as the next numbered variable
  sqrt(2) * pi          math builtins: sqrt abs ln log sin cos tan floor ceil round pow pi e
  10 km in mi           unit conversion (in or to); currencies: $ £ €
  $1 + $rate            reference stored results; $_ is the last result

assignment
  $name = expr          evaluate expr, store under $name
  $name <= text         store text verbatim, no evaluation

memory
  list, ls              show all variables
  delete $name          remove one variable
  delete all            remove everything, reset numbering

sessions
  save [slot]           snapshot memory to a named slot (default: "default")
  restore [slot]        replace memory from a slot (also: load)

other
  clear, cs             clear the screen
  help, wtf             this text
  quit, q, exit         leave`
