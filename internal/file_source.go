package internal

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	mapset "github.com/deckarep/golang-set"
	"github.com/h2non/filetype"
)

// FileSource exposes a directory or S3 prefix of CSV files as a multi-table
// data source. The file stem is the table name, so stems must be unique
// across the whole tree.
type FileSource struct {
	locations map[string]string
	order     []string
	s3Client  *s3.Client
	bucket    string
	cache     *resultCache
}

func NewFileSource(urlStr string) (*FileSource, error) {
	source := &FileSource{
		locations: map[string]string{},
		cache:     newResultCache(),
	}

	var files []string
	var err error

	if strings.HasPrefix(urlStr, "s3://") {
		files, err = source.initS3(urlStr)
	} else {
		files, err = findLocalCsvFiles(strings.TrimPrefix(urlStr, "file://"))
	}
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		if _, ok := source.locations[name]; ok {
			return nil, &DuplicateTableError{Name: name}
		}
		source.locations[name] = f
		source.order = append(source.order, name)
	}

	return source, nil
}

func (s *FileSource) initS3(urlStr string) ([]string, error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, err
	}
	s.bucket = u.Host
	prefix := strings.TrimPrefix(u.Path, "/")

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}
	s.s3Client = s3.NewFromConfig(cfg)

	resp, err := s.s3Client.ListObjectsV2(context.Background(), &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, err
	}

	var files []string
	for _, obj := range resp.Contents {
		if strings.HasSuffix(*obj.Key, ".csv") {
			files = append(files, *obj.Key)
		}
	}
	return files, nil
}

func findLocalCsvFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(path, ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (s *FileSource) readTable(tableName string) ([]byte, error) {
	location := s.locations[tableName]

	var data []byte
	if s.s3Client != nil {
		resp, err := s.s3Client.GetObject(context.Background(), &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(location),
		})
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		data, err = os.ReadFile(location)
		if err != nil {
			return nil, err
		}
	}

	// binary content with a .csv name is a broken input, not a table
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}
	if kind != filetype.Unknown {
		return nil, fmt.Errorf("file %s is not a text file (%s)", location, kind.MIME.Value)
	}

	return data, nil
}

func (s *FileSource) TableNames() []string {
	names := []string{}
	names = append(names, s.order...)
	return names
}

func (s *FileSource) validateTableName(tableName string) error {
	if tableName == "" {
		return ErrMissingTableName
	} else if len(s.order) == 0 {
		return &EmptyServiceError{}
	} else if _, ok := s.locations[tableName]; !ok {
		return &UnknownTableError{Name: tableName, Available: s.TableNames()}
	}
	return nil
}

func (s *FileSource) GetValues(colNames []string, tableName string) (map[string]mapset.Set, error) {
	output := map[string]mapset.Set{}
	if tableName == "" {
		return output, nil
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}
	frame, err := s.fileToFrame(tableName)
	if err != nil {
		return nil, err
	}
	return distinctValues(frame, colNames)
}

func (s *FileSource) GetColumn(colName string, tableName string) ([]interface{}, error) {
	if tableName == "" {
		return nil, ErrMissingTableName
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}
	frame, err := s.fileToFrame(tableName)
	if err != nil {
		return nil, err
	}
	return frame.Column(colName)
}

func (s *FileSource) fileToFrame(tableName string) (*DataFrame, error) {
	data, err := s.readTable(tableName)
	if err != nil {
		return nil, err
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &DataFrame{}, nil
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = flattenColumnName(col)
	}

	frame := &DataFrame{Columns: columns}
	for _, record := range records[1:] {
		row := make([]interface{}, len(record))
		for i, v := range record {
			row[i] = v
		}
		frame.Rows = append(frame.Rows, row)
	}

	return frame, nil
}

func (s *FileSource) GetData(tableName string) (*DataFrame, error) {
	if tableName == "" {
		return nil, nil
	}

	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}

	if frame, ok := s.cache.get(tableName); ok {
		return frame, nil
	}

	frame, err := s.fileToFrame(tableName)
	if err != nil {
		return nil, err
	}
	s.cache.put(tableName, frame)
	return frame, nil
}

func (s *FileSource) GetDtypes(tableName string) (map[string]Dtype, error) {
	if err := s.validateTableName(tableName); err != nil {
		return nil, err
	}

	frame, err := s.fileToFrame(tableName)
	if err != nil {
		return nil, err
	}

	dtypes := make(map[string]Dtype, len(frame.Columns))
	for _, col := range frame.Columns {
		dtypes[col] = DtypeText
	}
	return dtypes, nil
}

func (s *FileSource) Len() int {
	if frame, ok := s.cache.last(); ok {
		return frame.Len()
	}
	return 0
}

func (s *FileSource) MultiTable() bool {
	return len(s.order) > 1
}
