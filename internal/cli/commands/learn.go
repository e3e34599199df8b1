package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/internal/state"
	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

// LearnOptions holds options for the learn command.
type LearnOptions struct {
	Sheet string // Sheet name for Excel inputs
	All   bool   // Review every field, not just unresolved ones
}

// NewLearnCommand creates the learn command.
func NewLearnCommand() *cobra.Command {
	opts := &LearnOptions{}
	cmd := &cobra.Command{
		Use:   "learn <file>",
		Short: "Interactively teach mappings for unresolved fields",
		Long: `Walk through the fields of a file that no exact table or pattern
rule resolved, and record a canonical name, business group and data
type for each. Accepted mappings are written to custom.json in the
mappings directory and resolve exactly from then on.

At each prompt, press Enter to accept the suggestion, type a new
snake_case name, or type "skip" to leave the field alone. Ctrl-C skips
the current field, Ctrl-D ends the session.`,
		Example: `  # Teach mappings for unresolved columns
  fieldmap learn policies.xlsx

  # Review every column, including resolved ones
  fieldmap learn policies.xlsx --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLearn(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet name for Excel inputs")
	cmd.Flags().BoolVar(&opts.All, "all", false, "Review every field, not just unresolved ones")
	_ = cmd.RegisterFlagCompletionFunc("sheet", sheetCompletion)

	return cmd
}

func runLearn(cmd *cobra.Command, opts *LearnOptions, file string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	tbl, err := reader.ReadFile(file, opts.Sheet)
	if err != nil {
		return err
	}

	resolver := mapping.NewResolver(cmdCtx.Rules, cmdCtx.Tables)
	fields := make([]mapping.Field, len(tbl.Columns))
	for i, col := range tbl.Columns {
		fields[i] = mapping.Field{Name: col.Name, Samples: col.Values}
	}
	ms, resolveErrs := resolver.ResolveBatch(fields)
	for _, resolveErr := range resolveErrs {
		r.Warnf("%v", resolveErr)
	}

	var pending []core.FieldMapping
	for _, m := range ms {
		if opts.All || !m.Tier.Mapped() || m.Tier == core.TierKeyword {
			pending = append(pending, m)
		}
	}
	if len(pending) == 0 {
		r.Successf("All %d fields resolved by table or pattern rules", len(ms))
		return nil
	}

	st, err := openState(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	historyFile := filepath.Join(filepath.Dir(cmdCtx.Cfg.StatePath), "learn_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "done",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize prompt: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d of %d fields need review\n\n", len(pending), len(ms))

	learned := 0
	for i, m := range pending {
		fmt.Fprintf(out, "[%d/%d] %s\n", i+1, len(pending), m.SourceName)
		fmt.Fprintf(out, "  suggested: %s (%s, %s, tier %s)\n", m.CanonicalName, m.Group, m.DType, m.Tier)

		entry, ok, err := promptEntry(rl, out, m)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if err := cmdCtx.Tables.Learn(m.SourceName, entry); err != nil {
			return err
		}
		if err := st.RecordLearned("", state.LearnedMapping{
			SourceName:    m.SourceName,
			CanonicalName: entry.EnName,
			Group:         string(entry.Group),
			DType:         string(entry.DType),
		}); err != nil {
			return err
		}
		learned++
		r.Successf("%s → %s", m.SourceName, entry.EnName)
		fmt.Fprintln(out)
	}

	if learned > 0 {
		r.Successf("Learned %d mappings into %s", learned, filepath.Join(cmdCtx.Cfg.MappingsDir, "custom.json"))
	} else {
		r.Infof("No mappings learned")
	}
	return nil
}

// promptEntry asks for name, group and dtype of one field. The bool is
// false when the user skipped the field. io.EOF ends the session.
func promptEntry(rl *readline.Instance, out io.Writer, m core.FieldMapping) (core.MappingEntry, bool, error) {
	name, ok, err := promptValue(rl, fmt.Sprintf("name [%s]: ", m.CanonicalName), m.CanonicalName)
	if err != nil || !ok {
		return core.MappingEntry{}, false, err
	}
	name = mapping.Normalize(name)
	if name == "" {
		fmt.Fprintln(out, "  empty name, skipping")
		return core.MappingEntry{}, false, nil
	}

	group := m.Group
	for {
		raw, ok, err := promptValue(rl, fmt.Sprintf("group [%s]: ", group), string(group))
		if err != nil || !ok {
			return core.MappingEntry{}, false, err
		}
		g, err := core.ParseGroup(raw)
		if err != nil {
			fmt.Fprintf(out, "  unknown group %q (one of: %s)\n", raw, groupNames())
			continue
		}
		group = g
		break
	}

	dtype := m.DType
	for {
		raw, ok, err := promptValue(rl, fmt.Sprintf("dtype [%s]: ", dtype), string(dtype))
		if err != nil || !ok {
			return core.MappingEntry{}, false, err
		}
		d, err := core.ParseDType(raw)
		if err != nil {
			fmt.Fprintf(out, "  unknown dtype %q (number, string, datetime, boolean)\n", raw)
			continue
		}
		dtype = d
		break
	}

	return core.MappingEntry{
		EnName:      name,
		Group:       group,
		DType:       dtype,
		Description: m.SourceName + " (learned)",
	}, true, nil
}

// promptValue reads one line. Empty input accepts the default; "skip"
// returns ok=false; Ctrl-C also skips.
func promptValue(rl *readline.Instance, prompt, def string) (string, bool, error) {
	rl.SetPrompt(prompt)
	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, true, nil
	}
	if strings.EqualFold(line, "skip") {
		return "", false, nil
	}
	return line, true, nil
}

func groupNames() string {
	gs := core.Groups()
	names := make([]string, len(gs))
	for i, g := range gs {
		names[i] = string(g)
	}
	return strings.Join(names, ", ")
}
