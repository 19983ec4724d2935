package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ukaji3/xparse-go/pkg/xparse"
	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
	"github.com/ukaji3/xparse-go/pkg/xparse/parser"
)

// sizedGrid is a grid that knows its last data row.
type sizedGrid interface {
	grid.Grid
	MaxRow() int
}

func newInspectCommand(c *cliContext) *cobra.Command {
	var columnRange, column string
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx | spreadsheet-id]",
		Short: "Parse a sheet without writing output and show the persons found",
		Long: `inspect runs the full pipeline and prints one table row per person.
Without --column_range the range is derived from the data in --column.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, c, args[0], columnRange, column)
		},
	}
	cmd.Flags().StringVarP(&columnRange, "column_range", "c", "", "Persons column range (default: detected)")
	cmd.Flags().StringVar(&column, "column", "A", "Sequence-number column used to detect the range")
	return cmd
}

// openGrid opens the input for inspection.
func (c *cliContext) openGrid(cmd *cobra.Command, arg string) (sizedGrid, string, func(), error) {
	if c.source == sourceGSheet {
		snap, err := c.fetchSheet(cmd.Context(), arg)
		if err != nil {
			return nil, "", nil, err
		}
		return snap.Grid, snap.Checksum, func() {}, nil
	}
	wb, err := xparse.OpenWorkbook(arg, c.sheet)
	if err != nil {
		return nil, "", nil, err
	}
	return wb.Sheet, wb.Checksum, func() { _ = wb.Close() }, nil
}

func runInspect(cmd *cobra.Command, c *cliContext, arg, columnRange, column string) error {
	g, checksum, release, err := c.openGrid(cmd, arg)
	if err != nil {
		return err
	}
	defer release()

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	if columnRange == "" {
		start, err := grid.ParseAddress(column + "1")
		if err != nil {
			return fmt.Errorf("invalid column %q: %w", column, err)
		}
		r, ok := parser.SuggestRange(g, start.Col, 1, g.MaxRow())
		if !ok {
			fmt.Fprintln(out, renderStatusLine("Range", statusWarn, "no data in column "+column, colorize))
			return nil
		}
		columnRange = r.String()
	}

	dict, err := c.loadDictionaries()
	if err != nil {
		return err
	}
	res, err := xparse.ExtractGrid(g, xparse.Options{
		Sheet:       c.sheet,
		ColumnRange: columnRange,
		Dictionary:  dict,
		RunID:       c.runID,
	})
	if err != nil {
		return err
	}
	res.Checksum = checksum

	writeInspection(out, res, colorize)
	return nil
}

func writeInspection(out io.Writer, res *xparse.Result, colorize bool) {
	headers := []string{"P", "P_RAW", "ID", "NUM", "NAME", "RELATION", "REALTIES", "TRANSPORTS", "INCOME"}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight}

	var rows [][]string
	for i, block := range res.Blocks {
		for j, rec := range block {
			doc := res.Documents[i][j]
			income := ""
			if doc.Income != nil {
				income = *doc.Income
			}
			rows = append(rows, []string{
				strconv.Itoa(rec.P),
				rec.PRaw.Raw,
				strconv.Itoa(rec.PersonID),
				strconv.Itoa(rec.PersonNum),
				rec.Name.String(),
				doc.RelationType.String(),
				strconv.Itoa(len(doc.Realties)),
				strconv.Itoa(len(doc.Transports)),
				income,
			})
		}
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}

	fmt.Fprintln(out, renderStatusLine("Range", statusInfo, res.Range.String(), colorize))
	if checksum := res.Checksum; checksum != "" {
		fmt.Fprintln(out, renderStatusLine("Checksum", statusInfo, checksum, colorize))
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, renderStatusLine("Persons", statusWarn, "none found", colorize))
		return
	}
	fmt.Fprintln(out, renderStatusLine("Persons", statusOK,
		fmt.Sprintf("%d blocks, %d persons", len(res.Blocks), res.PersonCount()), colorize))
	if m, ok := res.Mismatch(); ok {
		fmt.Fprintln(out, renderStatusLine("Numbering", statusWarn, "counted vs declared differ at "+m.String(), colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Numbering", statusOK, "consistent", colorize))
	}
}
