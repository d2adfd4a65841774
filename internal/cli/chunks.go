package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/aigotowork/tempobj"
)

func newChunksCmd(a *app) *cobra.Command {
	var blockSize int

	cmd := &cobra.Command{
		Use:   "chunks <path|->",
		Short: "List the chunks an input is streamed in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []tempobj.Option
			if cmd.Flags().Changed("block-size") {
				opts = append(opts, tempobj.WithBlockSize(blockSize))
			}

			obj, err := a.open(args[0], cmd.InOrStdin(), opts...)
			if err != nil {
				return err
			}
			defer obj.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(tw, "INDEX\tOFFSET\tLENGTH\t")

			var index, offset int64
			err = obj.Each(func(chunk []byte) error {
				fmt.Fprintf(tw, "%d\t%d\t%d\t\n", index, offset, len(chunk))
				index++
				offset += int64(len(chunk))
				return nil
			})
			if err != nil {
				return err
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d chunks, %s (block size %d)\n",
				index, humanize.IBytes(uint64(offset)), obj.Config().BlockSize)
			return nil
		},
	}

	cmd.Flags().IntVarP(&blockSize, "block-size", "b", tempobj.DefaultBlockSize, "Bytes per chunk (default from config)")

	return cmd
}
