// Package output renders command results as tables or as JSON/YAML documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	switch f {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// Printer writes results to Out in the configured format.
type Printer struct {
	Format Format
	Out    io.Writer
}

// NewPrinter returns a printer writing to stdout.
func NewPrinter(format Format) *Printer {
	return &Printer{Format: format, Out: os.Stdout}
}

// Structured reports whether results are emitted as documents instead of tables.
func (p *Printer) Structured() bool {
	return p.Format == FormatJSON || p.Format == FormatYAML
}

// Emit writes value as JSON or YAML when a structured format is selected.
// It returns (false, nil) in table mode so the caller renders text itself.
// Nil slices are written as empty lists.
func (p *Printer) Emit(value any) (bool, error) {
	value = normalizeNilSlice(value)
	switch p.Format {
	case FormatJSON:
		encoder := json.NewEncoder(p.Out)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(value)
	case FormatYAML:
		// Round-trip through JSON so field names follow the json tags.
		data, err := json.Marshal(value)
		if err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		encoder := yaml.NewEncoder(p.Out)
		encoder.SetIndent(2)
		if err := encoder.Encode(generic); err != nil {
			return true, fmt.Errorf("encode yaml: %w", err)
		}
		return true, encoder.Close()
	default:
		return false, nil
	}
}

// Table writes rows under an upper-case header using aligned columns.
func (p *Printer) Table(header []string, rows [][]string) error {
	w := tabwriter.NewWriter(p.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func normalizeNilSlice(value any) any {
	if value == nil {
		return value
	}
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return value
}

// When renders t as a local date-time followed by a relative hint.
func When(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", t.Local().Format("2006-01-02 15:04"), humanize.Time(t))
}

// Clock renders t as a local date-time.
func Clock(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Span renders a booking window compactly.
func Span(start, end time.Time) string {
	if start.IsZero() || end.IsZero() {
		return "-"
	}
	s, e := start.Local(), end.Local()
	if s.Format("2006-01-02") == e.Format("2006-01-02") {
		return fmt.Sprintf("%s %s-%s", s.Format("2006-01-02"), s.Format("15:04"), e.Format("15:04"))
	}
	return fmt.Sprintf("%s - %s", Clock(s), Clock(e))
}

// Dash returns value, or "-" when it is blank.
func Dash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

// Count pluralises a count with humanize's thousands separators.
func Count(n int, singular string) string {
	word := singular
	if n != 1 {
		if strings.HasSuffix(word, "y") {
			word = strings.TrimSuffix(word, "y") + "ie"
		}
		word += "s"
	}
	return humanize.Comma(int64(n)) + " " + word
}
