package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

func TestNameContains_EscapesInput(t *testing.T) {
	f := NameContains("a.b*(c)")
	require.Len(t, f, 1)
	assert.Equal(t, "name", f[0].Key)

	re, ok := f[0].Value.(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, `a\.b\*\(c\)`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestAnd(t *testing.T) {
	t.Run("no clauses matches everything", func(t *testing.T) {
		assert.Equal(t, bson.D{}, And())
		assert.Equal(t, bson.D{}, And(bson.D{}, nil))
	})

	t.Run("single clause is returned as is", func(t *testing.T) {
		assert.Equal(t, ByDepartment("IT"), And(bson.D{}, ByDepartment("IT")))
	})

	t.Run("several clauses", func(t *testing.T) {
		got := And(ByDepartment("IT"), ByActive(true))
		require.Len(t, got, 1)
		assert.Equal(t, "$and", got[0].Key)
		assert.Equal(t, bson.A{ByDepartment("IT"), ByActive(true)}, got[0].Value)
	})
}

func TestFilterFromQuery(t *testing.T) {
	name := "an"
	dept := "IT"
	active := false

	tests := []struct {
		name  string
		query entity.UserQuery
		want  bson.D
	}{
		{"empty", entity.UserQuery{}, bson.D{}},
		{"department only", entity.UserQuery{Department: &dept}, ByDepartment("IT")},
		{"active false is a real filter", entity.UserQuery{Active: &active}, ByActive(false)},
		{
			"all criteria",
			entity.UserQuery{Name: &name, Department: &dept, Active: &active},
			bson.D{{Key: "$and", Value: bson.A{NameContains("an"), ByDepartment("IT"), ByActive(false)}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterFromQuery(tt.query))
		})
	}
}

func TestFindOptionsFromQuery(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := FindOptionsFromQuery(entity.UserQuery{}.Normalize())
		assert.Equal(t, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}, opts.Sort)
		require.NotNil(t, opts.Skip)
		assert.Equal(t, int64(0), *opts.Skip)
		require.NotNil(t, opts.Limit)
		assert.Equal(t, int64(10), *opts.Limit)
	})

	t.Run("descending page two", func(t *testing.T) {
		q := entity.UserQuery{Page: 2, Size: 5, SortBy: "createdAt", SortDirection: "DESC"}.Normalize()
		opts := FindOptionsFromQuery(q)
		assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, opts.Sort)
		assert.Equal(t, int64(10), *opts.Skip)
		assert.Equal(t, int64(5), *opts.Limit)
	})
}
