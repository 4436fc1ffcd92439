package internal

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// DataFrame is a row-oriented in-memory table.
type DataFrame struct {
	Columns []string
	Rows    [][]interface{}
}

func (df *DataFrame) Len() int {
	return len(df.Rows)
}

// Column returns the values of a single column.
func (df *DataFrame) Column(name string) ([]interface{}, error) {
	index := -1
	for i, col := range df.Columns {
		if col == name {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, fmt.Errorf("unknown column: %s", name)
	}

	values := make([]interface{}, 0, len(df.Rows))
	for _, row := range df.Rows {
		if index < len(row) {
			values = append(values, row[index])
		}
	}
	return values, nil
}

func distinctValues(df *DataFrame, colNames []string) (map[string]mapset.Set, error) {
	output := map[string]mapset.Set{}
	for _, colName := range colNames {
		column, err := df.Column(colName)
		if err != nil {
			return nil, err
		}
		values := mapset.NewSet()
		for _, v := range column {
			values.Add(v)
		}
		output[colName] = values
	}
	return output, nil
}

// flattenColumnName rewrites a qualified field name (dot-separated) into a
// flat column header.
func flattenColumnName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
