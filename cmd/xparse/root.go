package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/xparse-go/pkg/xparse"
	"github.com/ukaji3/xparse-go/pkg/xparse/config"
	"github.com/ukaji3/xparse-go/pkg/xparse/dictionary"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/gsheets"
	"github.com/ukaji3/xparse-go/pkg/xparse/logging"
	"github.com/ukaji3/xparse-go/pkg/xparse/output"
	"github.com/ukaji3/xparse-go/pkg/xparse/store"
)

const (
	sourceXLSX   = "xlsx"
	sourceGSheet = "gsheet"
)

// cliContext carries settings shared by every command.
type cliContext struct {
	cfg   config.Config
	runID string
	// logCloser releases the log file after the command finishes.
	logCloser io.Closer

	sheet        string
	source       string
	dictionaries string
	logLevel     string
}

type rootOptions struct {
	columnRange string
	splitAt     int
	saveDir     string
	format      string
	database    string
	pretty      bool
}

func newRootCommand() *cobra.Command {
	cli := &cliContext{}
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "xparse [input.xlsx | spreadsheet-id]",
		Short: "Extract asset declarations from spreadsheets",
		Long: `xparse reads a declaration sheet (one person group per sequence number,
one person per name slot) and writes structured person documents as XML or JSON.`,
		Example:       "  xparse book.xlsx -c A2:A787 -s 20 -t out",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cli.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return cli.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, cli, opts, args[0])
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cli.sheet, "sheet", "", "Worksheet name (default: first sheet)")
	pf.StringVar(&cli.source, "source", sourceXLSX, "Input source: xlsx or gsheet")
	pf.StringVarP(&cli.dictionaries, "dictionaries", "d", "", "Dictionaries file (.toml, .json) or CSV directory (default $XPARSE_DICTIONARIES)")
	pf.StringVar(&cli.logLevel, "log-level", "", "Console log level (default $XPARSE_LOG_LEVEL)")

	f := rootCmd.Flags()
	f.StringVarP(&opts.columnRange, "column_range", "c", "", "Persons column range, e.g. A2:A787")
	f.IntVarP(&opts.splitAt, "split_at", "s", 0, "Split output into files of N blocks each (0: single file)")
	f.StringVarP(&opts.saveDir, "save_dir", "t", "out", "Directory to save files to")
	f.StringVar(&opts.format, "format", string(output.FormatXML), "Output format: xml or json")
	f.StringVar(&opts.database, "db", "", "SQLite database to record the run in (default $XPARSE_DB)")
	f.BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")
	_ = rootCmd.MarkFlagRequired("column_range")

	rootCmd.AddCommand(newInspectCommand(cli), newDictCommand(cli))
	return rootCmd
}

// setup loads configuration and configures logging for the run.
func (c *cliContext) setup(cmd *cobra.Command) error {
	cfg, dotenv, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel
	if c.logLevel != "" {
		level = c.logLevel
	}
	closer, err := logging.Setup(logging.Options{
		Level:   level,
		Format:  cfg.LogFormat,
		File:    cfg.LogFilePath(),
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	c.logCloser = closer

	c.runID = uuid.NewString()
	logging.WithRunID(c.runID)
	if dotenv {
		log.Debug().Msg("loaded environment variables from .env file")
	}

	switch c.source {
	case sourceXLSX, sourceGSheet:
	default:
		return fmt.Errorf("invalid source: %s (must be xlsx or gsheet)", c.source)
	}
	return nil
}

func (c *cliContext) close() error {
	if c.logCloser == nil {
		return nil
	}
	err := c.logCloser.Close()
	c.logCloser = nil
	return err
}

// loadDictionaries loads the configured dictionaries. A missing default file
// is tolerated and every label then passes through unresolved.
func (c *cliContext) loadDictionaries() (*dictionary.Store, error) {
	path, explicit := c.dictionaries, c.dictionaries != ""
	if !explicit {
		path = c.cfg.Dictionaries
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !explicit {
		log.Warn().Str("path", path).Msg("dictionaries not found, values pass through unresolved")
		return dictionary.New(nil), nil
	}
	dict, err := dictionary.Load(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Int("objectType", dict.Len(dictionary.ObjectType)).Msg("dictionaries loaded")
	return dict, nil
}

// extract runs the pipeline over the input named by arg.
func (c *cliContext) extract(cmd *cobra.Command, arg, columnRange string) (*xparse.Result, error) {
	dict, err := c.loadDictionaries()
	if err != nil {
		return nil, err
	}
	opts := xparse.Options{
		Sheet:       c.sheet,
		ColumnRange: columnRange,
		Dictionary:  dict,
		RunID:       c.runID,
	}

	if c.source == sourceXLSX {
		return xparse.Extract(arg, opts)
	}

	snap, err := c.fetchSheet(cmd.Context(), arg)
	if err != nil {
		return nil, xparse.NewExtractionError(c.sheet, xparse.ComponentSource, err)
	}
	res, err := xparse.ExtractGrid(snap.Grid, opts)
	if err != nil {
		return nil, xparse.NewExtractionError(c.sheet, xparse.ComponentRange, err)
	}
	res.Source = arg
	res.SheetName = c.sheet
	res.Checksum = snap.Checksum
	return res, nil
}

func (c *cliContext) fetchSheet(ctx context.Context, spreadsheetID string) (*gsheets.Snapshot, error) {
	client, err := gsheets.NewClient(ctx, c.cfg.GoogleCredentials)
	if err != nil {
		return nil, err
	}
	return client.Load(ctx, spreadsheetID, c.sheet)
}

func runExtract(cmd *cobra.Command, c *cliContext, opts *rootOptions, arg string) error {
	if !grid.ValidateDimensions(opts.columnRange) {
		return fmt.Errorf("wrong dimensions %q: %w", opts.columnRange, grid.ErrInvalidRange)
	}
	log.Info().Str("range", opts.columnRange).Msg("dimensions valid")

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	splitAt := max(opts.splitAt, 0)

	res, err := c.extract(cmd, arg, opts.columnRange)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	log.Info().Str("source", res.Source).Str("checksum", res.Checksum).Int("blocks", len(res.Blocks)).Msg("extracted")

	writer := &output.Writer{Dir: opts.saveDir, SplitAt: splitAt, Format: format, Pretty: opts.pretty}
	paths, err := writer.Write(res.Documents)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	database := opts.database
	if database == "" {
		database = c.cfg.Database
	}
	if database != "" {
		if err := recordRun(cmd.Context(), database, res); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	for _, p := range paths {
		fmt.Fprintln(out, p)
	}
	return nil
}

func recordRun(ctx context.Context, path string, res *xparse.Result) error {
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	earlier, err := s.RunsByChecksum(ctx, res.Checksum)
	if err != nil {
		return err
	}
	if len(earlier) > 0 {
		log.Info().Str("previous_run", earlier[0].ID).Time("at", earlier[0].CreatedAt).Msg("input already processed")
	}
	return s.SaveRun(ctx, store.Run{
		ID:          res.RunID,
		Source:      res.Source,
		Sheet:       res.SheetName,
		ColumnRange: res.Range.String(),
		Checksum:    res.Checksum,
	}, res.Documents)
}
