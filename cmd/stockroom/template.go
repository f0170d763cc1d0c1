package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/stockroom/internal/importer"
)

func newTemplateCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "template <out.xlsx|out.csv>",
		Short: "Write an import template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
			if format != importer.FormatXLSX && format != importer.FormatCSV {
				return fmt.Errorf("template must end in .xlsx or .csv, got %q", path)
			}

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := importer.WriteTemplate(f, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Template written: %s\n", path)
			return nil
		},
	}
}
