package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aigotowork/tempobj/internal/config"
)

// resolvedConfig is the YAML view of the settings one namespace ends up with.
type resolvedConfig struct {
	Namespace  string `yaml:"namespace"`
	BlockSize  int    `yaml:"block_size"`
	TempDir    string `yaml:"temp_dir"`
	TempPrefix string `yaml:"temp_prefix"`
	FileMode   string `yaml:"file_mode"`
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or check configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and the selected namespace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.ToYAML()
			if err != nil {
				return err
			}

			resolved, err := a.cfg.Resolve(a.namespace)
			if err != nil {
				return err
			}
			nsData, err := yaml.Marshal(resolvedConfig{
				Namespace:  a.namespace,
				BlockSize:  resolved.BlockSize,
				TempDir:    resolved.TempDir,
				TempPrefix: resolved.TempPrefix,
				FileMode:   fmt.Sprintf("%04o", uint32(resolved.FileMode)),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "# source: %s\n", a.source)
			fmt.Fprintf(out, "%s---\n%s", data, nsData)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <file>",
		Short: "Check a config file without applying environment overrides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			registry, err := cfg.Registry(nil)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d namespaces)\n", args[0], len(registry.Names()))
			return nil
		},
	})

	return cmd
}
