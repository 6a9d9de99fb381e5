package cli

import (
	"github.com/spf13/pflag"

	"github.com/bjaus/gridfmt"
)

var (
	_ pflag.Value = (*formatValue)(nil)
	_ pflag.Value = (*borderValue)(nil)
)

// formatValue is a pflag.Value for --output.
type formatValue struct {
	f gridfmt.Format
}

func (v *formatValue) String() string { return v.f.String() }

func (v *formatValue) Set(s string) error {
	f, err := gridfmt.ParseFormat(s)
	if err != nil {
		return err
	}
	v.f = f
	return nil
}

func (v *formatValue) Type() string { return "format" }

// borderValue is a pflag.Value for --border.
type borderValue struct {
	name string
	b    gridfmt.BorderStyle
}

func (v *borderValue) String() string {
	if v.name == "" {
		return "rounded"
	}
	return v.name
}

func (v *borderValue) Set(s string) error {
	b, err := gridfmt.ParseBorderStyle(s)
	if err != nil {
		return err
	}
	v.name, v.b = s, b
	return nil
}

func (v *borderValue) Type() string { return "border" }
