package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBase struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type testEntity struct {
	testBase
	CategoryID int64  `db:"category_id"`
	Skipped    string `db:"-"`
	Untagged   string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testEntity]()
	assert.Equal(t, []string{"id", "name", "category_id"}, cols)

	ptrCols := ExtractDBColumns[*testEntity]()
	assert.Equal(t, cols, ptrCols)
}

func TestStructToMap(t *testing.T) {
	e := &testEntity{
		testBase:   testBase{ID: 7, Name: "Laptop"},
		CategoryID: 3,
		Skipped:    "ignored",
		Untagged:   "ignored",
	}

	m := StructToMap(e)
	require.Len(t, m, 3)
	assert.EqualValues(t, 7, m["id"])
	assert.Equal(t, "Laptop", m["name"])
	assert.EqualValues(t, 3, m["category_id"])
}

func TestStructToMapNonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
