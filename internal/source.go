package internal

import (
	mapset "github.com/deckarep/golang-set"
)

// Source is the contract a multi-table data source must satisfy for the
// host framework to schedule queries against it.
type Source interface {
	// TableNames returns all table names in deterministic order.
	TableNames() []string

	// GetData materializes the named table. Returns nil with no error
	// when tableName is empty.
	GetData(tableName string) (*DataFrame, error)

	// GetColumn materializes the named table and returns a single column.
	GetColumn(colName string, tableName string) ([]interface{}, error)

	// GetValues returns the distinct values of the requested columns.
	// Returns an empty map when tableName is empty.
	GetValues(colNames []string, tableName string) (map[string]mapset.Set, error)

	// GetDtypes returns the column type schema of the named table.
	GetDtypes(tableName string) (map[string]Dtype, error)

	// Len returns the row count of the most recently materialized table.
	Len() int

	// MultiTable reports whether more than one table is available.
	MultiTable() bool
}
