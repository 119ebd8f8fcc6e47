package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/buildcost/internal/app"
	"github.com/alexanderramin/buildcost/internal/config"
	"github.com/alexanderramin/buildcost/internal/importer"
	"github.com/spf13/cobra"
)

// Opener wires the application from the loaded configuration.
type Opener func(cfg *config.Config, logger *slog.Logger) (*app.App, error)

// Deps are the process-level collaborators of the command tree.
type Deps struct {
	Open Opener
	// IsInteractive reports whether stdin is a terminal. The wizard refuses
	// to run without one.
	IsInteractive func() bool
	Now           func() time.Time
}

var errInvalidProject = errors.New("project is invalid")

type state struct {
	deps       Deps
	configPath string

	// promptProject collects wizard answers; tests replace it.
	promptProject func(*wizardAnswers) error
	confirmSave   func(*saveAnswer) error
}

// NewRootCmd creates the top-level "buildcost" command.
func NewRootCmd(deps Deps) *cobra.Command {
	if deps.Open == nil {
		deps.Open = app.Open
	}
	if deps.IsInteractive == nil {
		deps.IsInteractive = func() bool { return false }
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return newRootCmd(&state{deps: deps, promptProject: askProject, confirmSave: askSave})
}

func newRootCmd(s *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "buildcost",
		Short:         "Construction cost estimator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&s.configPath, "config", "", "Config file (default ./"+config.DefaultConfigFile+" when present)")
	pf.String("db", "", "Saved-estimate database path")
	pf.String("catalog", "", "Catalog YAML file (default: built-in catalog)")
	pf.String("log-level", "warn", "Log level: debug, info, warn or error")
	pf.String("log-format", "text", "Log format: text or json")

	root.AddCommand(
		newEstimateCmd(s),
		newValidateCmd(s),
		newSaveCmd(s),
		newLoadCmd(s),
		newListCmd(s),
		newDeleteCmd(s),
		newReportCmd(s),
		newCatalogCmd(s),
		newServeCmd(s),
		newWizardCmd(s),
	)
	return root
}

// loadConfig reads the configuration with the command's flags layered on
// top. Persistent flags are merged into cmd.Flags() by the time RunE runs.
func (s *state) loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(s.configPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	return cfg, cfg.NewLogger(cmd.ErrOrStderr()), nil
}

// withApp opens the application for the duration of fn.
func (s *state) withApp(fn func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		cfg, logger, err := s.loadConfig(cmd)
		if err != nil {
			return err
		}
		a, err := s.deps.Open(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing database: %w", cerr)
			}
		}()
		return fn(cmd, args, a)
	}
}

// readProject reads a project document from path, or from stdin when path
// is "-".
func readProject(cmd *cobra.Command, path string) (*importer.ProjectDocument, error) {
	if path == "-" {
		return importer.DecodeProjectDocument(cmd.InOrStdin())
	}
	return importer.LoadProjectDocument(path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
