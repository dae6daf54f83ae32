// Package printers writes rendered grids and queued notifications for the
// CLI in table, JSON or YAML form.
package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"tableflip.dev/polines/pkg/dispatch"
	"tableflip.dev/polines/pkg/grid"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted -o values.
func Formats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat accepts table, json or yaml. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("printers: unknown output format %q (want one of %s)", s, strings.Join(Formats(), ", "))
}

// Printer writes to Out.
type Printer struct {
	Out    io.Writer
	Format Format
	Color  bool
}

// New returns a printer. Color is on when out is a terminal.
func New(out io.Writer, format Format) *Printer {
	p := &Printer{Out: out, Format: format}
	if f, ok := out.(*os.File); ok {
		p.Color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return p
}

func (p *Printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.Color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// View prints a rendered grid with its summary.
func (p *Printer) View(v grid.View) error {
	switch p.Format {
	case FormatJSON:
		return p.json(v)
	case FormatYAML:
		return p.yaml(v)
	}

	bold := p.style(color.Bold)
	faint := p.style(color.Faint)
	money := p.style(color.FgGreen)

	switch v.State {
	case grid.StateError:
		_, err := fmt.Fprintln(p.Out, p.style(color.FgRed).Sprint(v.Message))
		return err
	case grid.StateLoading:
		_, err := fmt.Fprintln(p.Out, faint.Sprint("no document loaded"))
		return err
	}

	title := strings.TrimSpace(fmt.Sprintf("%s %s", v.DocumentID, v.Variant))
	if _, err := fmt.Fprintln(p.Out, p.style(color.Bold, color.Underline).Sprint(title)); err != nil {
		return err
	}

	var cols []grid.Column
	for _, c := range v.Columns {
		if c.Data() {
			cols = append(cols, c)
		}
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	header := []interface{}{bold.Sprint("#")}
	for _, c := range cols {
		header = append(header, bold.Sprint(c.Title))
	}
	tbl.AddRow(header...)

	for _, r := range v.Rows {
		line := []interface{}{r.Order}
		for _, c := range cols {
			val := cellText(r, c)
			switch {
			case r.Received:
				val = faint.Sprint(val)
			case c.Kind == grid.KindAmount:
				val = money.Sprint(val)
			}
			line = append(line, val)
		}
		tbl.AddRow(line...)
	}
	tbl.RightAlign(0)

	if len(v.Rows) == 0 {
		if _, err := fmt.Fprintln(p.Out, p.style(color.Faint, color.Italic).Sprint(" none")); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(p.Out, tbl); err != nil {
		return err
	}
	return p.Summary(v)
}

// Summary prints the record count, total and active filters.
func (p *Printer) Summary(v grid.View) error {
	c := p.style(color.Faint)
	noun := "items"
	if v.Summary.Count == 1 {
		noun = "item"
	}
	line := fmt.Sprintf("%d %s · Total %s", v.Summary.Count, noun, v.Total)
	if v.Criteria.Search != "" {
		line += fmt.Sprintf(" · search %q", v.Criteria.Search)
	}
	if v.Criteria.Department != "" {
		line += " · dept " + v.Criteria.Department
	}
	_, err := fmt.Fprintln(p.Out, c.Sprint(line))
	return err
}

// Calls prints host notifications, oldest first.
func (p *Printer) Calls(calls []dispatch.Call) error {
	switch p.Format {
	case FormatJSON:
		return p.json(calls)
	case FormatYAML:
		return p.yaml(calls)
	}
	if len(calls) == 0 {
		_, err := fmt.Fprintln(p.Out, p.style(color.Faint, color.Italic).Sprint("outbox empty"))
		return err
	}
	bold := p.style(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 80
	tbl.AddRow(bold.Sprint("Script"), bold.Sprint("Parameter"))
	for _, c := range calls {
		tbl.AddRow(c.Script, c.Parameter)
	}
	_, err := fmt.Fprintln(p.Out, tbl)
	return err
}

func (p *Printer) json(v interface{}) error {
	enc := json.NewEncoder(p.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) yaml(v interface{}) error {
	enc := yaml.NewEncoder(p.Out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func cellText(r grid.Row, c grid.Column) string {
	switch c.Kind {
	case grid.KindStatus:
		var on []string
		for _, s := range r.Statuses {
			if s.Checked {
				on = append(on, s.Token)
			}
		}
		return strings.Join(on, ",")
	case grid.KindCheckbox:
		if r.Received {
			return "yes"
		}
		return ""
	}
	return r.Value(c.Field)
}

// Config prints a settings value. Tables have no natural layout for it, so
// table output falls back to YAML.
func (p *Printer) Config(v interface{}) error {
	if p.Format == FormatJSON {
		return p.json(v)
	}
	return p.yaml(v)
}
