package internal

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/xo/dburl"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

type sqlTable struct {
	Schema string `db:"table_schema"`
	Name   string `db:"table_name"`
}

// SQLSource exposes the tables of a relational database as a multi-table
// data source. The schema plays the owner role: bare table names must be
// unique across schemas so they can identify a table on their own.
type SQLSource struct {
	db         *sqlx.DB
	tables     []sqlTable
	tableIndex map[string]sqlTable
	cache      *resultCache
}

func NewSQLSource(urlStr string) (*SQLSource, error) {
	u, err := dburl.Parse(urlStr)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(u.Driver, u.DSN)
	if err != nil {
		return nil, err
	}

	tables, err := fetchTables(db)
	if err != nil {
		return nil, err
	}

	tableIndex := map[string]sqlTable{}
	for _, t := range tables {
		if _, ok := tableIndex[t.Name]; ok {
			return nil, &DuplicateTableError{Name: t.Name}
		}
		tableIndex[t.Name] = t
	}

	return &SQLSource{
		db:         db,
		tables:     tables,
		tableIndex: tableIndex,
		cache:      newResultCache(),
	}, nil
}

func (s *SQLSource) Close() error {
	return s.db.Close()
}

func fetchTables(db *sqlx.DB) ([]sqlTable, error) {
	tables := []sqlTable{}

	var query string

	switch db.DriverName() {
	case "sqlite3":
		query = `SELECT '' AS table_schema, name AS table_name FROM sqlite_master WHERE type = 'table' AND name != 'sqlite_sequence' ORDER BY name`
	case "mysql":
		query = `SELECT table_schema AS table_schema, table_name AS table_name FROM information_schema.tables WHERE table_schema = DATABASE() OR (DATABASE() IS NULL AND table_schema NOT IN ('information_schema', 'mysql', 'performance_schema', 'sys')) ORDER BY table_schema, table_name`
	case "sqlserver":
		query = `SELECT table_schema, table_name FROM information_schema.tables WHERE table_type = 'BASE TABLE' ORDER BY table_schema, table_name`
	default:
		query = `SELECT table_schema, table_name FROM information_schema.tables WHERE table_schema NOT IN ('information_schema', 'pg_catalog') ORDER BY table_schema, table_name`
	}

	err := db.Select(&tables, query)
	if err != nil {
		return nil, err
	}

	return tables, nil
}

func (s *SQLSource) quotedName(t sqlTable) string {
	if s.db.DriverName() == "postgres" {
		if t.Schema != "" {
			return pq.QuoteIdentifier(t.Schema) + "." + pq.QuoteIdentifier(t.Name)
		}
		return pq.QuoteIdentifier(t.Name)
	}
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

func (s *SQLSource) TableNames() []string {
	names := []string{}
	for _, t := range s.tables {
		names = append(names, t.Name)
	}
	return names
}

func (s *SQLSource) validateTableName(tableName string) error {
	if tableName == "" {
		return ErrMissingTableName
	} else if len(s.tables) == 0 {
		return &EmptyServiceError{Service: s.db.DriverName()}
	} else if _, ok := s.tableIndex[tableName]; !ok {
		return &UnknownTableError{Name: tableName, Available: s.TableNames()}
	}
	return nil
}

func (s *SQLSource) GetValues(colNames []string, tableName string) (map[string]mapset.Set, error) {
	output := map[string]mapset.Set{}
	if tableName == "" {
		return output, nil
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}
	frame, err := s.tableToFrame(tableName)
	if err != nil {
		return nil, err
	}
	return distinctValues(frame, colNames)
}

func (s *SQLSource) GetColumn(colName string, tableName string) ([]interface{}, error) {
	if tableName == "" {
		return nil, ErrMissingTableName
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}
	frame, err := s.tableToFrame(tableName)
	if err != nil {
		return nil, err
	}
	return frame.Column(colName)
}

func (s *SQLSource) tableToFrame(tableName string) (*DataFrame, error) {
	t := s.tableIndex[tableName]

	rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %s", s.quotedName(t)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(cols))
	for i, col := range cols {
		columns[i] = flattenColumnName(col)
	}

	frame := &DataFrame{Columns: columns}

	for rows.Next() {
		rawResult := make([][]byte, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range rawResult {
			dest[i] = &rawResult[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		row := make([]interface{}, len(cols))
		for i, raw := range rawResult {
			if raw == nil {
				row[i] = nil
			} else {
				row[i] = string(raw)
			}
		}
		frame.Rows = append(frame.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return frame, nil
}

func (s *SQLSource) GetData(tableName string) (*DataFrame, error) {
	if tableName == "" {
		return nil, nil
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}

	if frame, ok := s.cache.get(tableName); ok {
		return frame, nil
	}

	frame, err := s.tableToFrame(tableName)
	if err != nil {
		return nil, err
	}
	s.cache.put(tableName, frame)
	return frame, nil
}

func (s *SQLSource) GetDtypes(tableName string) (map[string]Dtype, error) {
	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}

	t := s.tableIndex[tableName]

	rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %s WHERE 1 = 0", s.quotedName(t)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	dtypes := make(map[string]Dtype, len(cols))
	for _, col := range cols {
		dtypes[flattenColumnName(col.Name())] = sqlDtype(col.DatabaseTypeName())
	}
	return dtypes, nil
}

// sqlDtype maps a driver-reported database type name to a Dtype. Vendor
// types without an entry become object rather than failing, since driver
// type vocabularies are open-ended.
func sqlDtype(databaseType string) Dtype {
	switch strings.ToUpper(databaseType) {
	case "TEXT", "VARCHAR", "CHAR", "NVARCHAR", "NCHAR", "CHARACTER VARYING", "CLOB", "LONGTEXT", "MEDIUMTEXT", "TINYTEXT":
		return DtypeText
	case "INT", "INTEGER", "BIGINT", "SMALLINT", "TINYINT", "MEDIUMINT", "INT2", "INT4", "INT8", "SERIAL", "BIGSERIAL":
		return DtypeInteger
	case "FLOAT", "DOUBLE", "REAL", "NUMERIC", "DECIMAL", "FLOAT4", "FLOAT8", "DOUBLE PRECISION":
		return DtypeFloating
	case "BOOL", "BOOLEAN", "BIT":
		return DtypeBoolean
	default:
		return DtypeObject
	}
}

func (s *SQLSource) Len() int {
	if frame, ok := s.cache.last(); ok {
		return frame.Len()
	}
	return 0
}

func (s *SQLSource) MultiTable() bool {
	return len(s.tables) > 1
}
