package commands

import (
	"fmt"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/cli/output"
	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// MappingsOptions holds options for the mappings command.
type MappingsOptions struct {
	Format string // Output format: text, markdown, json
	All    bool   // List every merged entry instead of the source overview
}

// NewMappingsCommand creates the mappings command.
func NewMappingsCommand() *cobra.Command {
	opts := &MappingsOptions{}
	cmd := &cobra.Command{
		Use:   "mappings [source-name]",
		Short: "Inspect loaded mapping tables",
		Long: `Show the mapping tables currently in effect.

Without arguments, lists every loaded source with its entry count.
With a source field name, shows the merged entry and which table it
came from.`,
		Example: `  # List loaded tables
  fieldmap mappings

  # Every merged entry
  fieldmap mappings --all

  # Look up one field
  fieldmap mappings 保单号`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return runMappings(cmd, opts, name)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.All, "all", false, "List every merged entry")

	return cmd
}

func runMappings(cmd *cobra.Command, opts *MappingsOptions, name string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	if name != "" {
		return renderMappingEntry(r, cmdCtx, name)
	}
	if opts.All {
		return renderAllEntries(r, cmdCtx)
	}
	return renderSources(r, cmdCtx)
}

func renderMappingEntry(r *output.Renderer, cmdCtx *CommandContext, name string) error {
	entry, ok := cmdCtx.Tables.Get(name)
	if !ok {
		return fmt.Errorf("no mapping for %q", name)
	}
	source, _ := cmdCtx.Tables.Provenance(name)

	if r.Mode() == output.ModeJSON {
		return r.JSON(struct {
			SourceName string            `json:"source_name"`
			Entry      core.MappingEntry `json:"entry"`
			Table      string            `json:"table"`
		}{SourceName: name, Entry: entry, Table: source})
	}

	r.Heading(name)
	r.Infof("en_name:     %s", entry.EnName)
	r.Infof("group:       %s", entry.Group)
	r.Infof("dtype:       %s", entry.DType)
	if entry.Description != "" {
		r.Infof("description: %s", entry.Description)
	}
	r.Infof("table:       %s", source)
	return nil
}

func renderAllEntries(r *output.Renderer, cmdCtx *CommandContext) error {
	entries := cmdCtx.Tables.Entries()
	names := make([]string, 0, len(entries))
	for n := range entries {
		names = append(names, n)
	}
	sort.Strings(names)

	if r.Mode() == output.ModeJSON {
		return r.JSON(entries)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"source name", "en name", "group", "dtype"})
	for _, n := range names {
		e := entries[n]
		t.AppendRow(table.Row{n, e.EnName, e.Group, e.DType})
	}
	t.Render()
	fmt.Fprintf(r.Out(), "(%d entries)\n", len(names))
	return nil
}

func renderSources(r *output.Renderer, cmdCtx *CommandContext) error {
	sources := cmdCtx.Tables.Sources()

	if r.Mode() == output.ModeJSON {
		type sourceInfo struct {
			Path     string `json:"path"`
			Domain   string `json:"domain"`
			Entries  int    `json:"entries"`
			Writable bool   `json:"writable"`
		}
		infos := make([]sourceInfo, 0, len(sources)+1)
		infos = append(infos, sourceInfo{
			Path:    "builtin",
			Domain:  "builtin",
			Entries: len(cmdCtx.Rules.ExactEntries()),
		})
		for _, s := range sources {
			infos = append(infos, sourceInfo{
				Path:     s.Path,
				Domain:   s.Domain,
				Entries:  len(s.Entries),
				Writable: s.Writable,
			})
		}
		return r.JSON(infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"table", "domain", "entries", "writable"})
	t.AppendRow(table.Row{"builtin", "builtin", len(cmdCtx.Rules.ExactEntries()), ""})
	for _, s := range sources {
		writable := ""
		if s.Writable {
			writable = "yes"
		}
		t.AppendRow(table.Row{s.Path, s.Domain, len(s.Entries), writable})
	}
	t.Render()
	fmt.Fprintf(r.Out(), "(%d fields merged)\n", cmdCtx.Tables.Len())
	return nil
}
