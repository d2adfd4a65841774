package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aigotowork/tempobj"
)

func newCopyCmd(a *app) *cobra.Command {
	var (
		mode     string
		noMkdirs bool
	)

	cmd := &cobra.Command{
		Use:   "copy <src|-> <dst>",
		Short: "Write an input to a destination file",
		Long:  "Write an input to a destination file, replacing it if it exists. The destination gets mode 0644 unless --mode or the config says otherwise.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []tempobj.WriteOption
			if mode != "" {
				m, err := strconv.ParseUint(mode, 8, 32)
				if err != nil || m&^uint64(os.ModePerm) != 0 {
					return fmt.Errorf("invalid mode %q: want octal permission bits like 0644", mode)
				}
				opts = append(opts, tempobj.WithMode(os.FileMode(m)))
			}
			if noMkdirs {
				opts = append(opts, tempobj.WithoutMkdirs())
			}

			obj, err := a.open(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			defer obj.Close()

			f, err := obj.WriteToFile(args[1], opts...)
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			a.logger.Info("copied",
				zap.String("src", args[0]),
				zap.String("dst", f.Name()),
				zap.Int64("size", info.Size()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s to %s (%s)\n",
				humanize.IBytes(uint64(info.Size())), f.Name(), info.Mode().Perm())
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "", "Destination permission bits in octal (default from config, 0644)")
	cmd.Flags().BoolVar(&noMkdirs, "no-mkdirs", false, "Fail instead of creating missing parent directories")

	return cmd
}
