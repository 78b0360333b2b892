package repl

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/chzyer/readline"

	"github.com/leengari/tabledb/internal/config"
	"github.com/leengari/tabledb/internal/session"
)

// ErrQuit is returned by Execute when the user asks to leave
var ErrQuit = errors.New("quit")

// REPL executes text commands against a session and prints to out
type REPL struct {
	session      *session.Session
	cfg          *config.Config
	out          io.Writer
	logger       *slog.Logger
	autoDisplay  bool
	displayLimit int
}

// New creates a command interpreter
func New(sess *session.Session, cfg *config.Config, out io.Writer, logger *slog.Logger) *REPL {
	if logger == nil {
		logger = slog.Default()
	}
	return &REPL{
		session:      sess,
		cfg:          cfg,
		out:          out,
		logger:       logger,
		autoDisplay:  cfg.REPL.AutoDisplay,
		displayLimit: cfg.REPL.DisplayLimit,
	}
}

// Execute runs one command line. Errors are meant to be shown to the user
// and never leave the session in a partially modified state.
func (r *REPL) Execute(line string) error {
	tokens, err := tokenize(line)
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}

	name, args := strings.ToLower(tokens[0]), tokens[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q (type 'help')", tokens[0])
	}

	r.logger.Debug("command", slog.String("name", name), slog.Int("args", len(args)))
	return cmd.run(r, args)
}

// Start runs the interactive loop on the terminal until exit or EOF
func Start(r *REPL) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.cfg.REPL.Prompt,
		HistoryFile:     r.cfg.REPL.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          r.out,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	fmt.Fprintln(r.out, "Welcome to tabledb")
	fmt.Fprintln(r.out, "Type 'help' for commands, 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			// EOF
			fmt.Fprintln(r.out)
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.Execute(line); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintf(r.out, "Error: %v\n", err)
		}
	}
}
