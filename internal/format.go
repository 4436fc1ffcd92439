package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	mapset "github.com/deckarep/golang-set"
	"github.com/fatih/color"
)

// Formatter defines the interface used to deliver results to the end user.
type Formatter interface {
	PrintTables(names []string) error

	PrintSchema(tableName string, dtypes map[string]Dtype) error

	PrintData(tableName string, frame *DataFrame) error

	PrintValues(tableName string, values map[string]mapset.Set) error

	// Flush is called when the formatter should finish outputting any
	// data it may have buffered.
	Flush() error
}

type FormatterFactory func(io.Writer) Formatter

// Formatters holds available formatters
var Formatters = map[string]FormatterFactory{
	"text": NewTextFormatter,
	"json": NewJSONFormatter,
}

// FormatNames returns the supported format names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(Formatters))
	for name := range Formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TextFormatter prints results as human readable text.
type TextFormatter struct {
	io.Writer
}

func NewTextFormatter(out io.Writer) Formatter {
	return TextFormatter{
		Writer: out,
	}
}

var yellow = color.New(color.FgYellow).SprintFunc()

func (f TextFormatter) PrintTables(names []string) error {
	for _, name := range names {
		fmt.Fprintln(f.Writer, name)
	}
	return nil
}

func (f TextFormatter) PrintSchema(tableName string, dtypes map[string]Dtype) error {
	fmt.Fprintf(f.Writer, "%s\n", yellow(tableName+":"))
	for _, col := range sortedKeys(dtypes) {
		fmt.Fprintf(f.Writer, "    %s %s\n", col, dtypes[col])
	}
	return nil
}

func (f TextFormatter) PrintData(tableName string, frame *DataFrame) error {
	fmt.Fprintf(f.Writer, "%s %s\n", yellow(tableName+":"), pluralize(frame.Len(), "row"))
	for i, col := range frame.Columns {
		if i > 0 {
			fmt.Fprint(f.Writer, ",")
		}
		fmt.Fprint(f.Writer, col)
	}
	fmt.Fprintln(f.Writer, "")
	for _, row := range frame.Rows {
		for i, v := range row {
			if i > 0 {
				fmt.Fprint(f.Writer, ",")
			}
			fmt.Fprint(f.Writer, formatValue(v))
		}
		fmt.Fprintln(f.Writer, "")
	}
	return nil
}

func (f TextFormatter) PrintValues(tableName string, values map[string]mapset.Set) error {
	for _, col := range sortedValueKeys(values) {
		fmt.Fprintf(f.Writer, "%s\n", yellow(tableName+"."+col+":"))
		strs := []string{}
		for _, v := range values[col].ToSlice() {
			strs = append(strs, formatValue(v))
		}
		sort.Strings(strs)
		for _, v := range strs {
			fmt.Fprintln(f.Writer, "    "+v)
		}
	}
	return nil
}

func (f TextFormatter) Flush() error { return nil }

// JSONFormatter prints results as a JSON array.
type JSONFormatter struct {
	entries []interface{}
	encoder *json.Encoder
}

func NewJSONFormatter(out io.Writer) Formatter {
	return &JSONFormatter{
		entries: make([]interface{}, 0),
		encoder: json.NewEncoder(out),
	}
}

func (f *JSONFormatter) PrintTables(names []string) error {
	for _, name := range names {
		f.entries = append(f.entries, map[string]interface{}{"table": name})
	}
	return nil
}

func (f *JSONFormatter) PrintSchema(tableName string, dtypes map[string]Dtype) error {
	f.entries = append(f.entries, map[string]interface{}{"table": tableName, "dtypes": dtypes})
	return nil
}

func (f *JSONFormatter) PrintData(tableName string, frame *DataFrame) error {
	f.entries = append(f.entries, map[string]interface{}{
		"table":   tableName,
		"columns": frame.Columns,
		"rows":    frame.Rows,
	})
	return nil
}

func (f *JSONFormatter) PrintValues(tableName string, values map[string]mapset.Set) error {
	cols := map[string]interface{}{}
	for col, set := range values {
		cols[col] = set.ToSlice()
	}
	f.entries = append(f.entries, map[string]interface{}{"table": tableName, "values": cols})
	return nil
}

func (f *JSONFormatter) Flush() error {
	return f.encoder.Encode(&f.entries)
}

func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]Dtype) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedValueKeys(m map[string]mapset.Set) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
