// Package cli implements the tempobj command line tool.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aigotowork/tempobj"
	"github.com/aigotowork/tempobj/internal/config"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configPath string
	namespace  string
	logLevel   string

	cfg    *config.Config
	source string
	logger *zap.Logger
	ns     *tempobj.Namespace
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tempobj",
		Short:         "Inspect, chunk and copy payloads through temp objects",
		Long:          "Command line front end for the tempobj library: every input becomes a temp object that is read as bytes or as a file only when needed.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "",
		"Path to config file (default $"+config.EnvConfigPath+" or ./tempobj.yaml)")
	rootCmd.PersistentFlags().StringVarP(&a.namespace, "namespace", "n", "",
		"Namespace whose defaults apply")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level override (debug, info, warn, error)")

	rootCmd.AddCommand(newInspectCmd(a))
	rootCmd.AddCommand(newChunksCmd(a))
	rootCmd.AddCommand(newCopyCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

func (a *app) setup() error {
	cfg, source, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	a.cfg = cfg
	a.source = source

	logger, err := cfg.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.logger = logger

	registry, err := cfg.Registry(tempobj.NewZapLogger(logger))
	if err != nil {
		return err
	}
	a.ns = registry.Namespace(a.namespace)

	logger.Debug("configuration loaded",
		zap.String("source", source),
		zap.String("namespace", a.namespace),
		zap.Int("block_size", a.ns.Config().BlockSize),
	)
	return nil
}

// open turns a command-line input into a temp object. "-" reads stdin into
// memory; anything else is a path.
func (a *app) open(input string, stdin io.Reader, opts ...tempobj.Option) (*tempobj.TempObject, error) {
	if input != "-" {
		return a.ns.New(tempobj.Path(input), opts...)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return a.ns.New(data, append([]tempobj.Option{tempobj.WithName("stdin")}, opts...)...)
}
