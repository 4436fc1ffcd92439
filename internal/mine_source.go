package internal

import (
	"fmt"
	"sort"

	mapset "github.com/deckarep/golang-set"
)

// MineSource exposes the query templates of a biological-data warehouse as a
// multi-table data source. Each template registered in the warehouse becomes
// one table; the owning user account is needed to resolve a template for
// execution, so the catalog is indexed by owner at construction time and
// never mutated afterwards.
type MineSource struct {
	service          TemplateService
	serviceName      string
	templatesByOwner map[string][]string
	owners           []string
	templateOwner    map[string]string
	cache            *resultCache
}

func NewMineSource(serviceURL string, token string) (*MineSource, error) {
	return NewMineSourceFromService(NewWarehouseClient(serviceURL, token))
}

// NewMineSourceFromService builds a source on top of any TemplateService,
// fetching the template catalog once and validating that no table name
// repeats across owners.
func NewMineSourceFromService(service TemplateService) (*MineSource, error) {
	templatesByOwner, err := service.TemplatesByOwner()
	if err != nil {
		return nil, err
	}

	// owner maps arrive unordered, so table order is pinned to sorted
	// owner names with per-owner template order preserved
	owners := make([]string, 0, len(templatesByOwner))
	for owner := range templatesByOwner {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	templateOwner := map[string]string{}
	for _, owner := range owners {
		for _, name := range templatesByOwner[owner] {
			if _, ok := templateOwner[name]; ok {
				return nil, &DuplicateTableError{Name: name}
			}
			templateOwner[name] = owner
		}
	}

	serviceName := ""
	if s, ok := service.(fmt.Stringer); ok {
		serviceName = s.String()
	}

	return &MineSource{
		service:          service,
		serviceName:      serviceName,
		templatesByOwner: templatesByOwner,
		owners:           owners,
		templateOwner:    templateOwner,
		cache:            newResultCache(),
	}, nil
}

func (s *MineSource) TableNames() []string {
	names := []string{}
	for _, owner := range s.owners {
		names = append(names, s.templatesByOwner[owner]...)
	}
	return names
}

func (s *MineSource) validateTableName(tableName string) error {
	names := s.TableNames()
	if tableName == "" {
		return ErrMissingTableName
	} else if len(names) == 0 {
		return &EmptyServiceError{Service: s.serviceName}
	} else if !stringInSlice(tableName, names) {
		return &UnknownTableError{Name: tableName, Available: names}
	}
	return nil
}

// GetValues returns the distinct values of the requested columns. An empty
// table name yields an empty map rather than an error, unlike GetColumn.
func (s *MineSource) GetValues(colNames []string, tableName string) (map[string]mapset.Set, error) {
	output := map[string]mapset.Set{}
	if tableName == "" {
		return output, nil
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}
	frame, err := s.templateToFrame(tableName)
	if err != nil {
		return nil, err
	}
	return distinctValues(frame, colNames)
}

func (s *MineSource) GetColumn(colName string, tableName string) ([]interface{}, error) {
	if tableName == "" {
		return nil, ErrMissingTableName
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}
	frame, err := s.templateToFrame(tableName)
	if err != nil {
		return nil, err
	}
	return frame.Column(colName)
}

// templateToFrame executes a template and reshapes its results into a
// DataFrame. Every call re-executes the remote query.
func (s *MineSource) templateToFrame(tableName string) (*DataFrame, error) {
	owner := s.templateOwner[tableName]
	template, err := s.service.Template(tableName, owner)
	if err != nil {
		return nil, err
	}

	rows, err := s.service.Execute(template)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(template.Views))
	for i, view := range template.Views {
		columns[i] = flattenColumnName(view)
	}

	return &DataFrame{Columns: columns, Rows: rows}, nil
}

// GetData materializes the named table, memoizing the most recent result.
// Requesting a different table evicts the previous slot.
func (s *MineSource) GetData(tableName string) (*DataFrame, error) {
	if tableName == "" {
		return nil, nil
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}

	if frame, ok := s.cache.get(tableName); ok {
		return frame, nil
	}

	frame, err := s.templateToFrame(tableName)
	if err != nil {
		return nil, err
	}
	s.cache.put(tableName, frame)
	return frame, nil
}

// GetDtypes returns the column type schema of a template, translating the
// service's declared view types through the fixed mapping table.
func (s *MineSource) GetDtypes(tableName string) (map[string]Dtype, error) {
	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}

	owner := s.templateOwner[tableName]
	template, err := s.service.Template(tableName, owner)
	if err != nil {
		return nil, err
	}

	n := len(template.Views)
	if len(template.ViewTypes) < n {
		n = len(template.ViewTypes)
	}

	dtypes := make(map[string]Dtype, n)
	for i := 0; i < n; i++ {
		dtype, err := mapWarehouseType(template.ViewTypes[i])
		if err != nil {
			return nil, err
		}
		dtypes[flattenColumnName(template.Views[i])] = dtype
	}
	return dtypes, nil
}

func (s *MineSource) Len() int {
	if frame, ok := s.cache.last(); ok {
		return frame.Len()
	}
	return 0
}

func (s *MineSource) MultiTable() bool {
	return len(s.TableNames()) > 1
}
