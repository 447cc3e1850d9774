package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap/zaptest"
)

func TestDefaultFixtures(t *testing.T) {
	fixtures := DefaultFixtures()
	require.Len(t, fixtures, 8)

	perDepartment := map[string]int{}
	inactive := 0
	emails := map[string]bool{}
	for _, f := range fixtures {
		perDepartment[f.Department]++
		if f.Active != nil && !*f.Active {
			inactive++
		}
		assert.False(t, emails[f.Email], "duplicate email %s", f.Email)
		emails[f.Email] = true
	}

	assert.Equal(t, map[string]int{"IT": 3, "HR": 2, "Finance": 1, "Marketing": 1, "Sales": 1}, perDepartment)
	assert.Equal(t, 1, inactive)
}

func TestParseFixtures_Errors(t *testing.T) {
	_, err := ParseFixtures([]byte("users: [ {name: a"))
	assert.Error(t, err)

	_, err = ParseFixtures([]byte("users:\n  - name: Ana\n"))
	assert.ErrorContains(t, err, "fixture 0")
}

func TestUsers(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 123456789, time.UTC)
	inactive := false
	users := Users([]Fixture{
		{Name: "Ana", Email: "ana@example.com", Department: "IT", Role: "Developer"},
		{Name: "Bea", Email: "bea@example.com", Department: "HR", Role: "Recruiter", Active: &inactive},
	}, now)

	require.Len(t, users, 2)
	assert.True(t, users[0].Active)
	assert.False(t, users[1].Active)
	assert.Equal(t, now.Truncate(time.Millisecond), users[0].CreatedAt)
	assert.Equal(t, users[0].CreatedAt, users[0].UpdatedAt)
	assert.Empty(t, users[0].ID)
}

func TestInitializer(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	ns := func(mt *mtest.T) string { return mt.DB.Name() + "." + mt.Coll.Name() }

	mt.Run("ensure indexes", func(mt *mtest.T) {
		initializer := NewInitializer(mt.Coll, nil, zaptest.NewLogger(mt))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, initializer.EnsureIndexes(ctx))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "createIndexes", started.CommandName)

		indexes, err := started.Command.LookupErr("indexes")
		require.NoError(mt, err)
		first := indexes.Array().Index(0).Value().Document()
		assert.Equal(mt, "email_1", first.Lookup("name").StringValue())
		assert.True(mt, first.Lookup("unique").Boolean())
	})

	mt.Run("ensure indexes failure", func(mt *mtest.T) {
		initializer := NewInitializer(mt.Coll, nil, zaptest.NewLogger(mt))
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 85, Name: "IndexOptionsConflict", Message: "index exists with different options",
		}))

		assert.Error(mt, initializer.EnsureIndexes(ctx))
	})

	mt.Run("seed empty collection", func(mt *mtest.T) {
		initializer := NewInitializer(mt.Coll, nil, zaptest.NewLogger(mt))
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(8)}),
		)

		n, err := initializer.Seed(ctx)
		require.NoError(mt, err)
		assert.Equal(mt, 8, n)

		inserted := mt.GetAllStartedEvents()
		require.Len(mt, inserted, 2)
		assert.Equal(mt, "insert", inserted[1].CommandName)
	})

	mt.Run("seed skips populated collection", func(mt *mtest.T) {
		initializer := NewInitializer(mt.Coll, nil, zaptest.NewLogger(mt))
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}),
		)

		n, err := initializer.Seed(ctx)
		require.NoError(mt, err)
		assert.Zero(mt, n)
		assert.Len(mt, mt.GetAllStartedEvents(), 1)
	})

	mt.Run("run without seeding only creates indexes", func(mt *mtest.T) {
		initializer := NewInitializer(mt.Coll, nil, zaptest.NewLogger(mt))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, initializer.Run(ctx, false))
		events := mt.GetAllStartedEvents()
		require.Len(mt, events, 1)
		assert.Equal(mt, "createIndexes", events[0].CommandName)
	})
}
