// Package cli is the flowdeck console command tree. Every command loads a
// console session from the API, runs one operation through it, and prints
// the result.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pkordes/flowdeck/internal/client"
	"github.com/pkordes/flowdeck/internal/config"
	"github.com/pkordes/flowdeck/internal/console"
	"github.com/pkordes/flowdeck/internal/domain"
)

// Session is a loaded console plus the calls the console does not model.
type Session struct {
	Console *console.Console
	Export  func(ctx context.Context, format string, w io.Writer) error
}

// Close stops the session's background fetches.
func (s *Session) Close() { s.Console.Close() }

// Connector opens a Session.
type Connector func(ctx context.Context, cfg config.Console, log *slog.Logger) (*Session, error)

// Dial connects to the API at cfg.APIURL and loads the tag vocabulary and
// both entity collections.
func Dial(ctx context.Context, cfg config.Console, log *slog.Logger) (*Session, error) {
	c := client.New(cfg.APIURL, client.Options{Timeout: cfg.Timeout, Logger: log})
	if err := c.Health(ctx); err != nil {
		return nil, err
	}
	con := console.New(c, c.Workflows(), c.Assistants(), console.Options{
		Debounce:   cfg.SearchDebounce,
		RecentTags: cfg.RecentTags,
		Logger:     log,
		OnError: func(err error) {
			log.Warn("background fetch failed", "error", err)
		},
	})
	if err := con.Load(ctx); err != nil {
		con.Close()
		return nil, err
	}
	return &Session{Console: con, Export: c.Export}, nil
}

// App carries the state shared by every command: flags, settings and the
// logger built from them.
type App struct {
	connect    Connector
	configPath string
	verbose    bool
	noColor    bool

	cfg config.Console
	log *slog.Logger
}

// NewRootCmd builds the command tree. connect is usually Dial.
func NewRootCmd(connect Connector) *cobra.Command {
	a := &App{connect: connect}

	root := &cobra.Command{
		Use:   "flowdeck",
		Short: "FlowDeck - manage workflows, assistants and their tags.",
		Long: `FlowDeck is the terminal console for the FlowDeck API.

Examples:
  flowdeck workflows list --tag urgent     # Workflows tagged urgent
  flowdeck workflows list --grid           # One row per workflow family
  flowdeck tags rename urgent critical     # Rename everywhere
  flowdeck export --format csv -o out.csv  # Flat export`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				color.NoColor = true
			}
			level := slog.LevelWarn
			if a.verbose {
				level = slog.LevelDebug
			}
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			cfg, err := config.LoadConsole(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log.Debug("console settings loaded", "api_url", cfg.APIURL, "config", a.configPath)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "flowdeck.yaml", "path to the console settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log requests and state changes to stderr")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		entityCmd(a, "workflows", "Manage workflows", func(c *console.Console) *console.Desk[*domain.Workflow] { return c.Workflows }),
		entityCmd(a, "assistants", "Manage assistants", func(c *console.Console) *console.Desk[*domain.Assistant] { return c.Assistants }),
		tagsCmd(a),
		exportCmd(a),
	)
	return root
}

// session opens a Session behind a spinner.
func (a *App) session(cmd *cobra.Command) (*Session, error) {
	stop := a.spin(cmd, "Loading from "+a.cfg.APIURL+"...")
	sess, err := a.connect(cmd.Context(), a.cfg, a.log)
	stop()
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", a.cfg.APIURL, err)
	}
	return sess, nil
}
