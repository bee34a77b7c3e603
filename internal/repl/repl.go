// Package repl drives the interactive session: it reads lines, classifies
// them against the command surface, and dispatches to memory, the
// evaluation engine and the snapshot store.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"recalc/internal/engine"
	"recalc/internal/memory"
	"recalc/internal/snapshot"
)

const prompt = "» "

// Options configures a Session. Zero fields get working defaults.
type Options struct {
	Memory    *memory.Memory
	Engine    *engine.Engine
	Snapshots *snapshot.Store
	In        io.Reader
	Out       io.Writer
	ErrOut    io.Writer
	Logger    *zap.Logger
}

// Session is one interactive calculator session. One command is fully
// processed before the next line is read; nothing here is safe for
// concurrent use.
type Session struct {
	mem    *memory.Memory
	eng    *engine.Engine
	snaps  *snapshot.Store
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *zap.Logger
}

// New creates a Session from opts.
func New(opts Options) (*Session, error) {
	if opts.Memory == nil {
		opts.Memory = memory.New()
	}
	if opts.Engine == nil {
		opts.Engine = engine.New(engine.Config{})
	}
	if opts.Snapshots == nil {
		dir, err := snapshot.DefaultDir()
		if err != nil {
			return nil, err
		}
		opts.Snapshots = snapshot.NewStore(dir)
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Session{
		mem:    opts.Memory,
		eng:    opts.Engine,
		snaps:  opts.Snapshots,
		in:     opts.In,
		out:    opts.Out,
		errOut: opts.ErrOut,
		logger: opts.Logger,
	}, nil
}

// Run loops until a quit command, end of input, or ctx cancellation.
// Lines are read on a separate goroutine so an interrupt lands on the
// blocking read, never mid-command; memory is only mutated between reads.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, dimStyle.Render("recalc — type \"help\" for commands"))

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(s.out, promptStyle.Render(prompt))
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return <-scanErr
			}
			if quit := s.handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// handle processes one input line. It returns true when the session
// should end. Every error is reported here and the loop continues; this
// is the single per-command error boundary.
func (s *Session) handle(ctx context.Context, line string) bool {
	cmd := Classify(line)
	s.logger.Debug("classified input",
		zap.String("kind", cmd.Kind.String()),
		zap.String("name", cmd.Name))

	switch cmd.Kind {
	case Blank:
		// no-op

	case Quit:
		fmt.Fprintln(s.out, dimStyle.Render("bye"))
		return true

	case ClearScreen:
		fmt.Fprint(s.out, "\x1b[2J\x1b[H")

	case Help:
		fmt.Fprintln(s.out, helpTitleStyle.Render("recalc commands"))
		fmt.Fprintln(s.out, helpText)

	case List:
		fmt.Fprintln(s.out, s.mem.Dump())

	case DeleteAll:
		s.mem.Clear()
		fmt.Fprintln(s.out, dimStyle.Render("all variables deleted"))

	case DeleteVar:
		if err := s.mem.Delete(cmd.Name); err != nil {
			s.reportError(err)
			break
		}
		fmt.Fprintln(s.out, dimStyle.Render("deleted $"+cmd.Name))

	case Save:
		s.save(cmd.Name)

	case Restore:
		s.restore(cmd.Name)

	case AssignRaw:
		name := s.mem.Store(cmd.Name, cmd.Text)
		fmt.Fprintln(s.out, formatResult(name, cmd.Text))

	case AssignEval:
		s.evaluate(ctx, cmd.Text, cmd.Name)

	case Evaluate:
		s.evaluate(ctx, cmd.Text, "")
	}
	return false
}

// evaluate runs the full expression path: substitute variables, evaluate,
// record the result under "_", store it, and print "$name = value". An
// empty name auto-assigns the next numbered variable.
func (s *Session) evaluate(ctx context.Context, expr, name string) {
	substituted, err := s.mem.Substitute(expr)
	if err != nil {
		s.reportError(err)
		return
	}

	val, err := s.eng.Evaluate(ctx, substituted)
	if err != nil {
		s.reportError(err)
		return
	}

	rendered := val.String()
	s.mem.UpdateLast(rendered)
	used := s.mem.Store(name, rendered)
	s.logger.Debug("stored result",
		zap.String("name", used),
		zap.String("value", rendered))
	fmt.Fprintln(s.out, formatResult(used, rendered))
}

func (s *Session) save(slot string) {
	bindings, next := s.mem.State()
	if err := s.snaps.Save(slot, snapshot.NewState(bindings, next)); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, dimStyle.Render("saved to "+displaySlot(slot)))
}

// restore swaps the loaded state into memory only after the whole file
// decoded; a failed restore leaves the session untouched.
func (s *Session) restore(slot string) {
	state, err := s.snaps.Load(slot)
	if err != nil {
		s.reportError(err)
		if slots, lerr := s.snaps.List(); lerr == nil && len(slots) > 0 {
			fmt.Fprintln(s.out, dimStyle.Render("available slots: "+strings.Join(slots, ", ")))
		}
		return
	}

	s.mem.Replace(state.Bindings, state.NextAuto)
	fmt.Fprintln(s.out, dimStyle.Render("restored from "+displaySlot(slot)))
}

// reportError prints a one-line diagnostic to the error stream: two-space
// indent, then a hint so a confused user knows how to get out.
func (s *Session) reportError(err error) {
	fmt.Fprintln(s.errOut, "  "+errorStyle.Render(err.Error())+dimStyle.Render(` (type "quit" if you're stuck)`))
}

func displaySlot(slot string) string {
	if slot == "" {
		return snapshot.DefaultSlot
	}
	return slot
}
