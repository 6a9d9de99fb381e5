package cli

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/gridfmt"
	"github.com/bjaus/gridfmt/internal/logger"
)

type listOptions struct {
	property  string
	selection int
	separator string
}

func newListCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List rows labelled by one property",
		Long: `list prints one label per row, taken from --property. Rows whose property
is missing or empty get an empty label.

With --select the row at that index (zero-based) is printed as YAML instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.property, "property", "p", "", "row property used as the label")
	f.IntVar(&opts.selection, "select", 0, "print the row at this index as YAML")
	f.StringVar(&opts.separator, "separator", "", "label separator (default newline)")
	_ = cmd.MarkFlagRequired("property")
	return cmd
}

func runList(cmd *cobra.Command, opts *listOptions, args []string) error {
	log := logger.FromContext(cmd.Context())

	rows, err := readRows(cmd, args, log)
	if err != nil {
		return err
	}
	e, err := gridfmt.Enumerate(rows, opts.property)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("select") {
		return e.Write(cmd.OutOrStdout(), opts.separator)
	}

	var selected gridfmt.Row
	e.OnSelect(func(r gridfmt.Row) {
		log.V(1).Info("row selected", "index", opts.selection, "property", opts.property)
		selected = r
	})
	if err := e.Select(opts.selection); err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any(selected)); err != nil {
		return err
	}
	return enc.Close()
}
