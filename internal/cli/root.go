// Package cli implements the gridfmt command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/bjaus/gridfmt"
	"github.com/bjaus/gridfmt/internal/config"
	"github.com/bjaus/gridfmt/internal/expr"
	"github.com/bjaus/gridfmt/internal/loader"
	"github.com/bjaus/gridfmt/internal/logger"
)

type rootOptions struct {
	layout   string
	output   formatValue
	sort     []string
	desc     bool
	group    string
	border   borderValue
	numbered bool
	human    bool
	color    bool
	debug    bool

	syncLog func()
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// NewRootCmd builds the gridfmt command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{output: formatValue{f: gridfmt.Table}}

	cmd := &cobra.Command{
		Use:   "gridfmt [file]",
		Short: "Format, sort and group tabular rows",
		Long: `gridfmt reads rows from a JSON, YAML or NDJSON file (stdin when no file
is given) and renders them as a grid.

Columns, sorting and grouping come from a YAML layout (--layout). Without a
layout every field becomes a column, typed from its first non-empty value.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log, sync := logger.New(cmd.ErrOrStderr(), logger.Level(opts.debug))
			log = log.WithValues(logger.CommandKey, cmd.Root().Name())
			if cmd != cmd.Root() {
				log = log.WithValues(logger.SubCommandKey, cmd.Name())
			}
			opts.syncLog = sync
			cmd.SetContext(logger.WithLogger(cmd.Context(), log))
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.syncLog != nil {
				opts.syncLog()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "write debug logs to stderr")

	f := cmd.Flags()
	f.StringVarP(&opts.layout, "layout", "l", "", "YAML layout file")
	f.VarP(&opts.output, "output", "o", fmt.Sprintf("output format: one of %v or go-template=<tmpl>", gridfmt.Formats()))
	f.StringArrayVarP(&opts.sort, "sort", "s", nil, "sort by field, repeatable (overrides the layout)")
	f.BoolVar(&opts.desc, "desc", false, "sort descending")
	f.StringVarP(&opts.group, "group", "g", "", "group rows by field")
	f.Var(&opts.border, "border", "table border: rounded, none, ascii, heavy or double")
	f.BoolVar(&opts.numbered, "numbered", false, "number table rows")
	f.BoolVar(&opts.human, "human", false, "render time, date and timespan numbers in human form")
	f.BoolVar(&opts.color, "color", false, "style table cells by column type")

	cmd.AddCommand(newListCmd())
	return cmd
}

func runRoot(cmd *cobra.Command, opts *rootOptions, args []string) error {
	log := logger.FromContext(cmd.Context())

	rows, err := readRows(cmd, args, log)
	if err != nil {
		return err
	}

	file := config.Infer(rows)
	if opts.layout != "" {
		if file, err = config.LoadFile(opts.layout); err != nil {
			return err
		}
	}
	env, err := expr.NewEnv()
	if err != nil {
		return err
	}
	layout, err := file.Build(env, log)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("sort") {
		layout.Keys = gridfmt.Fields(opts.sort...)
	}
	if flags.Changed("desc") {
		layout.Ascending = !opts.desc
	}
	if flags.Changed("group") {
		layout.GroupBy = opts.group
	}
	if flags.Changed("border") {
		layout.Border = opts.border.b
	}
	if flags.Changed("numbered") {
		layout.Numbered = opts.numbered
	}

	grid := layout.Grid(layout.Sort(rows))
	if opts.color {
		grid.Styles = typeStyles(cmd.OutOrStdout())
	}

	var formatter *gridfmt.Formatter
	if opts.human {
		formatter = gridfmt.NewFormatter(gridfmt.HumanFormatters()...)
	} else {
		formatter = gridfmt.NewFormatter()
	}
	r := gridfmt.NewRenderer(gridfmt.WithFormatter(formatter), gridfmt.WithLogger(log))
	return r.Write(cmd.OutOrStdout(), opts.output.f, grid)
}

// readRows loads rows from the file named by args, or stdin.
func readRows(cmd *cobra.Command, args []string, log logr.Logger) ([]gridfmt.Row, error) {
	var (
		in     io.Reader = cmd.InOrStdin()
		source           = "stdin"
	)
	if len(args) == 1 && args[0] != "-" {
		fh, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer fh.Close()
		in, source = fh, args[0]
	}
	rows, err := loader.Load(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	if rows == nil {
		rows = []gridfmt.Row{}
	}
	log.V(1).Info("loaded rows", "source", source, "rows", len(rows))
	return rows, nil
}
