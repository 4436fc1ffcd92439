package internal

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// NewSource builds the data source matching the connection URI scheme:
// http(s) for a warehouse web service, file or s3 for CSV trees, anything
// else is treated as a database URL.
func NewSource(urlStr string, token string) (Source, error) {
	if strings.HasPrefix(urlStr, "http://") || strings.HasPrefix(urlStr, "https://") {
		return NewMineSource(urlStr, token)
	} else if strings.HasPrefix(urlStr, "file://") || strings.HasPrefix(urlStr, "s3://") {
		return NewFileSource(urlStr)
	}
	return NewSQLSource(urlStr)
}

func Main(urlStr string, token string, tableName string, columns []string, showSchema bool, formatter Formatter) error {
	source, err := NewSource(urlStr, token)
	if err != nil {
		return err
	}

	if tableName == "" {
		names := source.TableNames()
		fmt.Fprintln(os.Stderr, "Found "+pluralize(len(names), "table")+"\n")

		if showSchema {
			// one remote round-trip per table, so fetch schemas concurrently
			schemas := make([]map[string]Dtype, len(names))
			var g errgroup.Group
			g.SetLimit(4)
			for i, name := range names {
				i, name := i, name
				g.Go(func() error {
					dtypes, err := source.GetDtypes(name)
					if err != nil {
						return err
					}
					schemas[i] = dtypes
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, name := range names {
				if err := formatter.PrintSchema(name, schemas[i]); err != nil {
					return err
				}
			}
		} else {
			if err := formatter.PrintTables(names); err != nil {
				return err
			}
		}
	} else if len(columns) > 0 {
		values, err := source.GetValues(columns, tableName)
		if err != nil {
			return err
		}
		if err := formatter.PrintValues(tableName, values); err != nil {
			return err
		}
	} else if showSchema {
		dtypes, err := source.GetDtypes(tableName)
		if err != nil {
			return err
		}
		if err := formatter.PrintSchema(tableName, dtypes); err != nil {
			return err
		}
	} else {
		frame, err := source.GetData(tableName)
		if err != nil {
			return err
		}
		if err := formatter.PrintData(tableName, frame); err != nil {
			return err
		}
	}

	return formatter.Flush()
}
