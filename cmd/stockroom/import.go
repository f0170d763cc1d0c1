package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/stockroom/internal/importer"
	"github.com/erazemk/stockroom/internal/model"
)

func newImportCmd(a *app) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Preview a spreadsheet import, optionally applying its valid rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			rows, err := importer.Parse(f, filepath.Base(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printPreview(out, rows)

			valid := model.ValidRows(rows)
			if !apply {
				return nil
			}
			if len(valid) == 0 {
				fmt.Fprintln(out, "Nothing to import.")
				return nil
			}

			database, err := openExisting(a.cfg.DB)
			if err != nil {
				return err
			}
			defer database.Close()

			written, err := importer.Reconcile(cmd.Context(), database, valid)
			if err != nil {
				return err
			}

			slog.Info("import applied", "file", args[0], "written", written, "skipped", len(rows)-len(valid))
			fmt.Fprintf(out, "Imported %d items.\n", written)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "write the valid rows to the catalog")
	return cmd
}

func printPreview(w io.Writer, rows []model.ImportRow) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tSKU\tNAME\tTYPE\tTOTAL\tAVAILABLE\tSTATUS")
	for i, r := range rows {
		status := "ok"
		if !r.IsValid {
			status = strings.Join(r.Errors, "; ")
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			i+1, r.SKU, r.Name, r.Type, r.QuantityTotal, r.QuantityAvailable, status)
	}
	tw.Flush()

	valid := len(model.ValidRows(rows))
	fmt.Fprintf(w, "\n%d rows, %d valid, %d invalid\n", len(rows), valid, len(rows)-valid)
}
