package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sanctorale/sanctorale/internal/platform/database/schema"
)

func TestCoreSaint_WritableColumnsAreSubset(t *testing.T) {
	all := schema.CoreSaint.Columns()
	writable := schema.CoreSaint.WritableColumns()

	assert.Len(t, all, 25)
	assert.Subset(t, all, writable)
	assert.NotContains(t, writable, schema.CoreSaint.ID)
	assert.NotContains(t, writable, schema.CoreSaint.CreatedAt)
	assert.NotContains(t, writable, schema.CoreSaint.UpdatedAt)
}

func TestColumns_Unique(t *testing.T) {
	for name, columns := range map[string][]string{
		"saint":     schema.CoreSaint.Columns(),
		"patronage": schema.CoreSaintPatronage.Columns(),
		"region":    schema.GeoRegion.Columns(),
		"place":     schema.GeoPlace.Columns(),
	} {
		seen := map[string]bool{}
		for _, column := range columns {
			assert.False(t, seen[column], "%s: duplicate column %s", name, column)
			seen[column] = true
		}
	}
}
