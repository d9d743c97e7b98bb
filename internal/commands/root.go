package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/inab-dev/inab/internal/buildinfo"
	"github.com/inab-dev/inab/internal/config"
	"github.com/inab-dev/inab/internal/logger"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	verbose    bool
	jsonLogs   bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "inab",
		Short:   "Project a bank balance forward from recurring and scheduled transactions",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadEnv(); err != nil {
				return err
			}
			log, err := g.logger(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context(), log))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&g.configPath, "config", "c", config.FileName, "path to inab.yaml (env "+config.EnvConfig+")")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&g.jsonLogs, "log-json", false, "emit logs as JSON lines")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newProjectCommand(g))
	rootCmd.AddCommand(newScrapeCommand())

	return rootCmd
}

func (g *globals) logger(cmd *cobra.Command) (zerolog.Logger, error) {
	level, err := logger.ParseLevel(os.Getenv(config.EnvLogLevel))
	if err != nil {
		return zerolog.Nop(), err
	}
	if g.verbose {
		level = zerolog.DebugLevel
	}
	log := logger.New(cmd.ErrOrStderr(), level)
	if g.jsonLogs {
		log = logger.NewJSON(cmd.ErrOrStderr(), level)
	}
	return logger.WithRunID(log), nil
}

// resolveConfig returns the config path to use and the loaded config.
// A missing default config file yields the built-in defaults; a missing
// file that was asked for explicitly is an error.
func (g *globals) resolveConfig(cmd *cobra.Command) (string, *config.Config, error) {
	path := g.configPath
	explicit := cmd.Flags().Changed("config")
	if !explicit {
		if env := config.PathFromEnv(""); env != "" {
			path = env
			explicit = true
		}
	}

	cfg, err := config.Load(path)
	if err == nil {
		return path, cfg, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return path, config.Default(), nil
	}
	return "", nil, err
}
