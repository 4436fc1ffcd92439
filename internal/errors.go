package internal

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingTableName is returned by operations that require a table name
// when none is given.
var ErrMissingTableName = errors.New("no table name provided")

// DuplicateTableError indicates the remote catalog holds the same table name
// under more than one owner. This is a configuration error.
type DuplicateTableError struct {
	Name string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("duplicated table name %q found in service, table names must be unique", e.Name)
}

// EmptyServiceError indicates the catalog contains no tables at all.
type EmptyServiceError struct {
	Service string
}

func (e *EmptyServiceError) Error() string {
	if e.Service == "" {
		return "service did not return any tables"
	}
	return fmt.Sprintf("service %s did not return any tables", e.Service)
}

// UnknownTableError indicates the requested table is not in the catalog.
type UnknownTableError struct {
	Name      string
	Available []string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %s not found in service, available tables: %s", e.Name, strings.Join(e.Available, ", "))
}

// UnmappedTypeError indicates the service declared a value type with no
// entry in the dtype mapping table.
type UnmappedTypeError struct {
	TypeTag string
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("no dtype mapping for service type %q", e.TypeTag)
}
