package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/inodb/vibe-gff/internal/gff"
	"github.com/inodb/vibe-gff/internal/output"
	"github.com/inodb/vibe-gff/internal/schema"
)

func newRegionsCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "regions [flags] <input.gff3>",
		Short: "Print the sequence regions declared in a GFF3 header",
		Example: `  vibe-gff regions Homo_sapiens.GRCh38.gff3.gz
  vibe-gff regions --analysis human annotation.gff3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegions(cmd, name, args[0])
		},
	}
	cmd.Flags().StringVarP(&name, "analysis", "a", "", "Analysis name for the first column")

	return cmd
}

func runRegions(cmd *cobra.Command, name, input string) error {
	f, err := gff.Open(input)
	if err != nil {
		return errors.Wrapf(err, "open %s", input)
	}
	defer f.Close()

	regions, err := gff.ReadSequenceRegions(f)
	if err != nil {
		return errors.WithHint(errors.Wrapf(err, "read sequence regions from %s", input),
			"##sequence-region lines take the form: ##sequence-region <seqid> <start> <end>")
	}

	tw := output.NewTabWriter(cmd.OutOrStdout())
	tw.SetTitles(false)
	ctx := cmd.Context()
	if err := tw.CreateTable(ctx, schema.Sequences, false); err != nil {
		return err
	}
	if err := tw.Append(ctx, schema.Sequences, schema.SequenceRows(name, regions)); err != nil {
		return err
	}
	return tw.Flush()
}
