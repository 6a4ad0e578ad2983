package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/gff"
	"github.com/inodb/vibe-gff/internal/schema"
)

func newLoadCmd() *cobra.Command {
	var (
		name string
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "load [flags] <input.gff3>",
		Short: "Stream every GFF3 record into the gff_data table",
		Long: `Read a GFF3 file in batches and append each record, with ID, Parent and
Name extracted from its attributes, to the gff_data table. Memory use is
bounded by ingest.batch_size records.`,
		Example: `  vibe-gff load --analysis human -o records.duckdb Homo_sapiens.GRCh38.gff3.gz
  zcat mouse.gff3.gz | vibe-gff load --analysis mouse -o records.sqlite -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, name, args[0], out)
		},
	}

	cmd.Flags().StringVarP(&name, "analysis", "a", "", "Name for this analysis, e.g. the species")
	cmd.MarkFlagRequired("analysis")
	out.register(cmd)

	return cmd
}

func runLoad(cmd *cobra.Command, name, input string, out outputFlags) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	f, err := gff.Open(input)
	if err != nil {
		return errors.WithHint(errors.Wrapf(err, "open %s", input),
			"pass a GFF3 file, optionally gzip-compressed, or - for stdin")
	}
	defer f.Close()

	fingerprint, err := schema.StatInput(input)
	if err != nil {
		return errors.Wrapf(err, "stat %s", input)
	}

	dest, err := out.open(cmd)
	if err != nil {
		return err
	}

	p := analysis.New(analysisConfig(name))
	p.SetLogger(logger)
	pub := schema.NewPublisher(dest, schema.Options{Overwrite: out.overwrite})
	pub.SetLogger(logger)
	run := schema.NewRun(name, "load", fingerprint)

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Loading records from %s...", input))
	res, err := ingest(cmd, p, pub, f, run, dest.format, func(n int) {
		spinner.UpdateText(fmt.Sprintf("Loaded %d records...", n))
	})
	if cerr := dest.close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close output")
	}
	if err != nil {
		spinner.Fail("Loading failed")
		return err
	}

	spinner.Success(fmt.Sprintf("Loaded %d records in %d batches; %d sequences", res.Records, res.Batches, len(res.Sequences)))
	return nil
}

func ingest(cmd *cobra.Command, p *analysis.Pipeline, pub *schema.Publisher, f *gff.File, run *schema.Run, format string, progress func(int)) (analysis.IngestResult, error) {
	ctx := cmd.Context()

	sink, err := pub.RecordSink(ctx)
	if err != nil {
		return analysis.IngestResult{}, err
	}
	res, err := p.Ingest(ctx, f, sink, progress)
	if err != nil {
		return res, err
	}

	if _, err := pub.Write(ctx, schema.Sequences, schema.SequenceRows(p.Config().Analysis, res.Sequences)); err != nil {
		return res, err
	}
	if format == FormatTab {
		return res, nil
	}
	run.Records = res.Records
	return res, pub.RecordRun(ctx, run)
}
