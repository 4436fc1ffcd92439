package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumn(t *testing.T) {
	frame := &DataFrame{
		Columns: []string{"name", "age"},
		Rows: [][]interface{}{
			{"alice", 34},
			{"bob", 49},
		},
	}

	column, err := frame.Column("age")
	assert.Nil(t, err)
	assert.Equal(t, []interface{}{34, 49}, column)
}

func TestColumnUnknown(t *testing.T) {
	frame := &DataFrame{Columns: []string{"name"}}

	_, err := frame.Column("missing")
	assert.Contains(t, err.Error(), "unknown column")
}

func TestDistinctValues(t *testing.T) {
	frame := &DataFrame{
		Columns: []string{"name"},
		Rows: [][]interface{}{
			{"alice"},
			{"bob"},
			{"alice"},
		},
	}

	values, err := distinctValues(frame, []string{"name"})
	assert.Nil(t, err)
	assert.Equal(t, 2, values["name"].Cardinality())
}

func TestFlattenColumnName(t *testing.T) {
	assert.Equal(t, "Gene_symbol", flattenColumnName("Gene.symbol"))
	assert.Equal(t, "Gene_organism_name", flattenColumnName("Gene.organism.name"))
	assert.Equal(t, "symbol", flattenColumnName("symbol"))
}
