package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// textProvider renders a human-readable multi-line description.
type textProvider interface {
	Text() string
}

// tableProvider exposes tabular data for --output table.
type tableProvider interface {
	TableHeaders() []string
	TableRows() [][]string
}

// payloadProvider returns the value to serialise for json and yaml, letting
// view wrappers emit the underlying model instead of themselves.
type payloadProvider interface {
	Payload() interface{}
}

// PrintResult outputs data in the format specified by CLIContext.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := OutputText
	if cliCtx, err := GetCLIContext(cmd); err == nil {
		format = cliCtx.OutputFormat
	}
	return writeResult(cmd.OutOrStdout(), format, data)
}

func writeResult(w io.Writer, format string, data interface{}) error {
	switch strings.ToLower(format) {
	case OutputJSON:
		return printJSON(w, payload(data))
	case OutputYAML:
		return printYAML(w, payload(data))
	case OutputTable:
		return printTable(w, data)
	default:
		return printText(w, data)
	}
}

func payload(data interface{}) interface{} {
	if p, ok := data.(payloadProvider); ok {
		return p.Payload()
	}
	return data
}

// printJSON outputs data as indented JSON.
func printJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "json encoding failed")
	}
	return nil
}

// printYAML outputs data as a YAML document.
func printYAML(w io.Writer, data interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "yaml encoding failed")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "yaml encoding failed")
	}
	return nil
}

// printText outputs data as a simple string representation.
func printText(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case textProvider:
		fmt.Fprint(w, v.Text())
	case string:
		fmt.Fprintln(w, v)
	case fmt.Stringer:
		fmt.Fprintln(w, v.String())
	default:
		fmt.Fprintf(w, "%+v\n", v)
	}
	return nil
}

// printTable outputs data as a table if it implements tableProvider,
// otherwise falls back to text.
func printTable(w io.Writer, data interface{}) error {
	if tp, ok := data.(tableProvider); ok {
		fmt.Fprint(w, FormatTable(tp.TableHeaders(), tp.TableRows()))
		return nil
	}
	return printText(w, data)
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = displayWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if w := displayWidth(row[i]); w > colWidths[i] {
				colWidths[i] = w
			}
		}
	}

	var sb strings.Builder

	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)

	for i, w := range colWidths {
		if i > 0 {
			sb.WriteString("  ")
		}
		sb.WriteString(strings.Repeat("-", w))
	}
	sb.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// displayWidth counts runes so that "m²" and "α" align.
func displayWidth(s string) int {
	return len([]rune(s))
}

// padRight pads s with spaces to the given width.
func padRight(s string, width int) string {
	if n := displayWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

//Personal.AI order the ending
