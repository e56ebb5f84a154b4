package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"storechain/internal/core/entity"
	"storechain/internal/core/id"
)

type testAggregate struct {
	entity.Record

	Name     string `db:"name" json:"name"`
	Secret   string `db:"-" json:"-"`
	Internal string
	Parent   *id.ID `db:"parent_id" json:"parentId,omitempty"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[testAggregate]()

	assert.Equal(t, []string{"id", "version", "created_at", "updated_at", "name", "parent_id"}, cols)
}

func TestStructToMap(t *testing.T) {
	parent := id.New()
	agg := &testAggregate{
		Record:   entity.NewRecord(),
		Name:     "shelf item",
		Secret:   "never persisted",
		Internal: "no tag, skipped",
		Parent:   &parent,
	}

	m := StructToMap(agg)

	assert.Equal(t, agg.ID, m["id"])
	assert.Equal(t, 1, m["version"])
	assert.Equal(t, "shelf item", m["name"])
	assert.Equal(t, &parent, m["parent_id"])
	assert.NotContains(t, m, "Secret")
	assert.NotContains(t, m, "-")
	assert.Len(t, m, 6)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
