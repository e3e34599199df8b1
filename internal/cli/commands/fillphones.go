package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/cli/output"
	"github.com/leapstack-labs/fieldmap/internal/phonefill"
	"github.com/leapstack-labs/fieldmap/internal/reader"
)

// FillPhonesOptions holds options for the fill-phones command.
type FillPhonesOptions struct {
	Sheet  string // Sheet name for Excel inputs
	Prefix string // Number prefix for generated values
	Output string // Output file; defaults to <name>_filled<ext>
	Format string // Output format: text, markdown, json
}

// NewFillPhonesCommand creates the fill-phones command.
func NewFillPhonesCommand() *cobra.Command {
	opts := &FillPhonesOptions{}
	cmd := &cobra.Command{
		Use:   "fill-phones <file>",
		Short: "Fill empty phone cells with synthetic placeholder numbers",
		Long: `Detect phone-number columns by header and content, and fill their
empty cells with unique 11-digit placeholder numbers.

Generated numbers start with a non-dialable service prefix (100 by
default) so they can never collide with a real subscriber number.
Existing values are kept and counted toward uniqueness.`,
		Example: `  # Fill missing phone numbers
  fieldmap fill-phones contacts.xlsx

  # Choose the output file and prefix
  fieldmap fill-phones contacts.csv --output filled.csv --prefix 103`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFillPhones(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet name for Excel inputs")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "100", "Prefix for generated numbers")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Output file (default <name>_filled<ext>)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	_ = cmd.RegisterFlagCompletionFunc("sheet", sheetCompletion)

	return cmd
}

func runFillPhones(cmd *cobra.Command, opts *FillPhonesOptions, file string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	tbl, err := reader.ReadFile(file, opts.Sheet)
	if err != nil {
		return err
	}

	filler, reserved := phonefill.NewFiller(opts.Prefix, nil)
	if !reserved {
		r.Warnf("prefix %q is not a reserved service prefix; generated numbers may collide with real ones", opts.Prefix)
	}

	results := phonefill.FillTable(tbl, filler)
	if len(results) == 0 {
		r.Infof("No phone columns detected in %s", file)
		return nil
	}

	outPath := opts.Output
	if outPath == "" {
		ext := filepath.Ext(file)
		outExt := ext
		if strings.EqualFold(ext, ".xlsm") {
			// Filled workbooks are written without macros.
			outExt = ".xlsx"
		}
		outPath = strings.TrimSuffix(file, ext) + "_filled" + outExt
	}
	if err := reader.WriteFile(outPath, tbl); err != nil {
		return err
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(struct {
			File    string             `json:"file"`
			Output  string             `json:"output"`
			Columns []phonefill.Result `json:"columns"`
		}{File: file, Output: outPath, Columns: results})
	}

	for _, res := range results {
		r.Infof("%s: filled %d, kept %d", res.Column, res.Filled, res.Kept)
	}
	r.Successf("Wrote %s", outPath)
	return nil
}
