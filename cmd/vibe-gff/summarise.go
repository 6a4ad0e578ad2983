package main

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/vibe-gff/internal/analysis"
	"github.com/inodb/vibe-gff/internal/schema"
)

type outputFlags struct {
	output           string
	format           string
	overwrite        bool
	storeTranscripts bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "-", "Output file: .duckdb, .sqlite or tab-delimited text (default: stdout)")
	cmd.Flags().StringVar(&f.format, "format", "", "Output format: duckdb, sqlite, tab (default: output.format, else from the output extension)")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Replace existing tables instead of appending rows")
}

// open opens the output, preferring --format over the output.format setting.
func (f *outputFlags) open(cmd *cobra.Command) (*target, error) {
	format := f.format
	if !cmd.Flags().Changed("format") {
		format = viper.GetString("output.format")
	}
	return openTarget(f.output, format, cmd.OutOrStdout())
}

func newSummariseCmd() *cobra.Command {
	var (
		name string
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:     "summarise [flags] <input.gff3>",
		Aliases: []string{"summarize"},
		Short:   "Summarise genes, transcripts and exons and their genome coverage",
		Long: `Load a GFF3 annotation, select protein-coding genes with their transcripts,
exons and coding sequences, and write the genes, sequences, per-gene summary,
gene statistics and coverage statistics tables.`,
		Example: `  vibe-gff summarise --analysis human -o results.sqlite Homo_sapiens.GRCh38.gff3.gz
  vibe-gff summarise --analysis mouse -o results.duckdb --store-transcripts mouse.gff3
  vibe-gff summarise --analysis test sample.gff3                # tab-delimited to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummarise(cmd, name, args[0], out)
		},
	}

	cmd.Flags().StringVarP(&name, "analysis", "a", "", "Name for this analysis, e.g. the species")
	cmd.MarkFlagRequired("analysis")
	out.register(cmd)
	cmd.Flags().BoolVar(&out.storeTranscripts, "store-transcripts", false, "Also write transcripts, exons and cds tables")

	return cmd
}

func runSummarise(cmd *cobra.Command, name, input string, out outputFlags) error {
	ctx := cmd.Context()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	p := analysis.New(analysisConfig(name))
	p.SetLogger(logger)

	spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Loading %s...", input))
	u, err := p.LoadFile(ctx, input)
	if err != nil {
		spinner.Fail("Loading failed")
		return err
	}
	spinner.Success(u.Summary())

	dest, err := out.open(cmd)
	if err != nil {
		return err
	}

	fingerprint, err := schema.StatInput(input)
	if err != nil {
		dest.close()
		return errors.Wrapf(err, "stat %s", input)
	}
	run := schema.NewRun(name, "summarise", fingerprint)

	pub := schema.NewPublisher(dest, schema.Options{
		Overwrite:        out.overwrite,
		StoreTranscripts: out.storeTranscripts,
	})
	pub.SetLogger(logger)

	written, err := pub.Publish(ctx, u)
	if err == nil && dest.format != FormatTab {
		for _, t := range written {
			run.Records += t.Rows
		}
		err = pub.RecordRun(ctx, run)
	}
	if cerr := dest.close(); err == nil && cerr != nil {
		err = errors.Wrap(cerr, "close output")
	}
	if err != nil {
		return err
	}

	printWritten(written, out.output)
	return nil
}

func printWritten(written []schema.Written, dest string) {
	data := pterm.TableData{{"Table", "Rows"}}
	for _, t := range written {
		data = append(data, []string{t.Table, strconv.Itoa(t.Rows)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Success.Printf("Wrote %d tables to %s\n", len(written), dest)
}
