package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/opencontainers/go-digest"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aigotowork/tempobj/internal/blob"
	"github.com/aigotowork/tempobj/internal/fsutil"
)

// inspection is one row of inspect output.
type inspection struct {
	Input          string        `json:"input"`
	Name           string        `json:"name"`
	Ext            string        `json:"ext,omitempty"`
	Size           int64         `json:"size"`
	Digest         digest.Digest `json:"digest"`
	Representation string        `json:"representation"`
}

func newInspectCmd(a *app) *cobra.Command {
	var (
		jobs          int
		pattern       string
		includeHidden bool
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <path|->...",
		Short: "Show name, size and digest of each input",
		Long:  "Show name, size and sha256 digest of each input. Directories are expanded to the files they contain; - reads stdin.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := fsutil.ExpandInputs(args, pattern, includeHidden)
			if err != nil {
				return err
			}
			if countStdin(inputs) > 1 {
				return fmt.Errorf("stdin (-) can only be inspected once")
			}

			results, err := a.inspectAll(inputs, cmd.InOrStdin(), jobs)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSONLines(cmd.OutOrStdout(), results)
			}
			return writeInspectTable(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 4, "Number of inputs inspected in parallel")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Only inspect files in directories whose name matches this glob")
	cmd.Flags().BoolVar(&includeHidden, "hidden", false, "Include hidden files in directories")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per input")

	return cmd
}

// inspectAll inspects inputs concurrently. Each goroutine owns the temp
// object it creates; nothing is shared but the result slot.
func (a *app) inspectAll(inputs []string, stdin io.Reader, jobs int) ([]inspection, error) {
	if jobs < 1 {
		jobs = 1
	}

	results := make([]inspection, len(inputs))
	var g errgroup.Group
	g.SetLimit(jobs)

	for i, input := range inputs {
		g.Go(func() error {
			res, err := a.inspect(input, stdin)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (a *app) inspect(input string, stdin io.Reader) (inspection, error) {
	obj, err := a.open(input, stdin)
	if err != nil {
		return inspection{}, err
	}
	defer obj.Close()

	size, err := obj.Size()
	if err != nil {
		return inspection{}, err
	}
	d, err := obj.Digest()
	if err != nil {
		return inspection{}, err
	}

	a.logger.Debug("inspected",
		zap.String("input", input),
		zap.String("id", obj.ID()),
		zap.Int64("size", size),
	)

	return inspection{
		Input:          input,
		Name:           obj.Name(),
		Ext:            obj.Ext(),
		Size:           size,
		Digest:         d,
		Representation: obj.Materialized().String(),
	}, nil
}

func countStdin(inputs []string) int {
	n := 0
	for _, in := range inputs {
		if in == "-" {
			n++
		}
	}
	return n
}

func writeJSONLines(w io.Writer, results []inspection) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeInspectTable(w io.Writer, results []inspection) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tDIGEST\tREP")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			r.Name,
			humanize.IBytes(uint64(r.Size)),
			string(r.Digest.Algorithm())+":"+blob.ShortDigest(r.Digest, blob.DefaultShortDigestLength),
			r.Representation,
		)
	}
	return tw.Flush()
}
