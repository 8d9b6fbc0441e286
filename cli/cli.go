package cli

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"weatheros/clock"
	"weatheros/config"
	"weatheros/manager"
	"weatheros/view"
)

type app struct {
	config   *config.Config
	logger   *log.Logger
	registry *prometheus.Registry
	session  *manager.Session
}

// New builds the weatheros command tree. defaults is the embedded YAML
// configuration that files and environment variables are layered on.
func New(defaults []byte) (*cobra.Command, error) {
	var (
		a          = &app{}
		configPath string
		language   string
		debug      bool
	)

	cmd := &cobra.Command{
		Use:          "weatheros",
		Args:         cobra.NoArgs,
		Short:        "Retro terminal for current weather conditions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(defaults, configPath)
			if err != nil {
				return err
			}
			if language != "" {
				cfg.Language = language
			}
			if debug {
				cfg.Debug = true
			}

			a.config = cfg
			a.logger = newLogger(cfg.Debug)
			a.registry = prometheus.NewRegistry()
			a.session = newSession(cfg, a.logger, a.registry)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), a.session, cmd.InOrStdin(), terminalFor(cmd.OutOrStdout()))
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "YAML file layered over the built-in configuration")
	flags.StringVar(&language, "lang", "", "language for place names (overrides config)")
	flags.BoolVar(&debug, "debug", false, "log pipeline and upstream activity to stderr")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "search <place>",
			Args:  cobra.MinimumNArgs(1),
			Short: "Show current weather for a place and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.session.Submit(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				return printFinal(cmd.OutOrStdout(), st)
			},
		},
		&cobra.Command{
			Use:   "locate",
			Args:  cobra.NoArgs,
			Short: "Show current weather at this machine's position and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				st, err := a.session.Locate(cmd.Context())
				if err != nil {
					return err
				}
				return printFinal(cmd.OutOrStdout(), st)
			},
		},
		newServeCommand(a),
	)

	return cmd, nil
}

// printFinal draws the last frame of a one-shot lookup. A failed lookup
// is also returned as an error so the process exits non-zero.
func printFinal(out io.Writer, st manager.State) error {
	term := view.NewWriter(out)
	term.Clock(clock.Format(time.Now()))
	term.Update(st)

	if st.Status == manager.Error {
		return errors.New(st.Message)
	}
	return nil
}

func terminalFor(out io.Writer) *view.Terminal {
	if f, ok := out.(*os.File); ok {
		return view.NewTerminal(f)
	}
	return view.NewWriter(out)
}

func newLogger(debug bool) *log.Logger {
	if !debug {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "weatheros ", log.LstdFlags|log.Lmicroseconds)
}
