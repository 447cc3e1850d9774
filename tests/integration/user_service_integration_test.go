//go:build integration

package integration

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	mongodao "github.com/jrjohn/docstore-users/internal/domain/dao/mongo"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
	repoimpl "github.com/jrjohn/docstore-users/internal/domain/repository/impl"
	"github.com/jrjohn/docstore-users/internal/domain/service"
	serviceimpl "github.com/jrjohn/docstore-users/internal/domain/service/impl"
	"github.com/jrjohn/docstore-users/internal/seed"
	"github.com/jrjohn/docstore-users/internal/testutil"
)

const usersCollection = "users"

// setupUsersDB returns a fresh database whose users collection carries its indexes.
func setupUsersDB(t *testing.T) *mongo.Database {
	testutil.SkipIfShort(t)
	testutil.SkipIfNoMongo(t)

	_, db := testutil.NewTestMongoDB(t, testutil.DefaultTestConfig())
	initializer := seed.NewInitializer(db.Collection(usersCollection), []seed.Fixture{}, testutil.NewTestLogger(t))
	require.NoError(t, initializer.EnsureIndexes(context.Background()))
	return db
}

func newNative(t *testing.T, db *mongo.Database) *serviceimpl.NativeUserService {
	return serviceimpl.NewNativeUserService(db, usersCollection, testutil.NewTestLogger(t), nil)
}

func newMapped(t *testing.T, db *mongo.Database) service.UserDataService {
	userDAO := mongodao.NewUserDAO(db, usersCollection, nil)
	return serviceimpl.NewMappedUserService(repoimpl.NewUserRepository(userDAO), testutil.NewTestLogger(t))
}

func TestIntegration_NativeUserService(t *testing.T) {
	db := setupUsersDB(t)
	runUserDataServiceTests(t, newNative(t, db))
}

func TestIntegration_MappedUserService(t *testing.T) {
	db := setupUsersDB(t)
	runUserDataServiceTests(t, newMapped(t, db))
}

// Both variants see the same documents: one writes, the other reads.
func TestIntegration_VariantsShareDocuments(t *testing.T) {
	db := setupUsersDB(t)
	native := newNative(t, db)
	mapped := newMapped(t, db)
	ctx := context.Background()

	created, err := native.CreateUser(ctx, "Shared", "shared@example.com", "IT", "Developer")
	require.NoError(t, err)

	found, err := mapped.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	active := false
	updated, err := mapped.UpdateUser(ctx, created.ID, entity.UserPatch{Active: &active})
	require.NoError(t, err)

	again, err := native.FindUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, again.Active)
	assert.True(t, updated.UpdatedAt.Equal(again.UpdatedAt))
}

func TestIntegration_DepartmentStats(t *testing.T) {
	db := setupUsersDB(t)
	native := newNative(t, db)
	ctx := context.Background()

	for i, u := range []struct {
		department string
		active     bool
	}{
		{"IT", true}, {"IT", true}, {"IT", false}, {"HR", true}, {"HR", true},
	} {
		user, err := native.CreateUser(ctx, fmt.Sprintf("User %d", i), fmt.Sprintf("u%d@example.com", i), u.department, "Staff")
		require.NoError(t, err)
		if !u.active {
			_, err = native.UpdateUser(ctx, user.ID, entity.UserPatch{Active: &u.active})
			require.NoError(t, err)
		}
	}

	stats, err := native.GetStatsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.DepartmentStats{
		{Department: "IT", TotalUsers: 3, ActiveUsers: 2, InactiveUsers: 1},
		{Department: "HR", TotalUsers: 2, ActiveUsers: 2, InactiveUsers: 0},
	}, stats)
}

// Null, missing and empty departments are counted in a single group.
func TestIntegration_DepartmentStats_UnknownDepartment(t *testing.T) {
	db := setupUsersDB(t)
	ctx := context.Background()

	_, err := db.Collection(usersCollection).InsertMany(ctx, []any{
		bson.M{"name": "Blank", "email": "blank@example.com", "department": "", "active": true},
		bson.M{"name": "Null", "email": "null@example.com", "department": nil, "active": false},
		bson.M{"name": "Missing", "email": "missing@example.com", "active": true},
		bson.M{"name": "Known", "email": "known@example.com", "department": "IT", "active": true},
	})
	require.NoError(t, err)

	stats, err := newNative(t, db).GetStatsByDepartment(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.DepartmentStats{
		{Department: entity.UnknownDepartment, TotalUsers: 3, ActiveUsers: 2, InactiveUsers: 1},
		{Department: "IT", TotalUsers: 1, ActiveUsers: 1, InactiveUsers: 0},
	}, stats)
}

func TestIntegration_DepartmentStats_Empty(t *testing.T) {
	db := setupUsersDB(t)

	stats, err := newNative(t, db).GetStatsByDepartment(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestIntegration_Seed(t *testing.T) {
	testutil.SkipIfShort(t)
	testutil.SkipIfNoMongo(t)

	_, db := testutil.NewTestMongoDB(t, testutil.DefaultTestConfig())
	ctx := context.Background()
	initializer := seed.NewInitializer(db.Collection(usersCollection), nil, testutil.NewTestLogger(t))

	require.NoError(t, initializer.EnsureIndexes(ctx))
	n, err := initializer.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = initializer.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "a populated collection is left alone")

	count, err := newMapped(t, db).CountByDepartment(ctx, "IT")
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	stats, err := newNative(t, db).GetStatsByDepartment(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, stats)
	assert.Equal(t, entity.DepartmentStats{Department: "IT", TotalUsers: 3, ActiveUsers: 2, InactiveUsers: 1}, stats[0])
}

// ========================================
// Shared Test Functions
// ========================================

func runUserDataServiceTests(t *testing.T, svc service.UserDataService) {
	ctx := context.Background()

	t.Run("TestConnection", func(t *testing.T) {
		msg, err := svc.TestConnection(ctx)
		require.NoError(t, err)
		assert.Contains(t, msg, "connection OK")
	})

	t.Run("Create and FindUserByID", func(t *testing.T) {
		created, err := svc.CreateUser(ctx, "Ana Lima", "ana.lima@example.com", "Engineering", "Developer")
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.True(t, created.Active)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)

		found, err := svc.FindUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "Ana Lima", found.Name)
		assert.Equal(t, "Engineering", found.Department)
		assert.True(t, created.CreatedAt.Equal(found.CreatedAt))
		assert.True(t, created.UpdatedAt.Equal(found.UpdatedAt))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, "First", "dup@example.com", "Ops", "Engineer")
		require.NoError(t, err)

		_, err = svc.CreateUser(ctx, "Second", "dup@example.com", "Ops", "Engineer")
		assert.ErrorIs(t, err, service.ErrDuplicateEmail)
	})

	t.Run("absent and malformed ids", func(t *testing.T) {
		_, err := svc.FindUserByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, service.ErrUserNotFound)

		_, err = svc.FindUserByID(ctx, "not-an-id")
		assert.ErrorIs(t, err, service.ErrInvalidUserID)
	})

	t.Run("UpdateUser changes only supplied fields", func(t *testing.T) {
		created, err := svc.CreateUser(ctx, "Bruno", "bruno@example.com", "Ops", "Engineer")
		require.NoError(t, err)

		role := "Lead"
		updated, err := svc.UpdateUser(ctx, created.ID, entity.UserPatch{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, "Lead", updated.Role)
		assert.Equal(t, "Bruno", updated.Name)
		assert.Equal(t, "bruno@example.com", updated.Email)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		again, err := svc.UpdateUser(ctx, created.ID, entity.UserPatch{})
		require.NoError(t, err)
		assert.True(t, again.UpdatedAt.After(updated.UpdatedAt), "updatedAt strictly increases")
	})

	t.Run("UpdateUser errors", func(t *testing.T) {
		name := "x"
		_, err := svc.UpdateUser(ctx, primitive.NewObjectID().Hex(), entity.UserPatch{Name: &name})
		assert.ErrorIs(t, err, service.ErrUserNotFound)

		_, err = svc.UpdateUser(ctx, "zzz", entity.UserPatch{Name: &name})
		assert.ErrorIs(t, err, service.ErrInvalidUserID)

		other, err := svc.CreateUser(ctx, "Carla", "carla@example.com", "Ops", "Engineer")
		require.NoError(t, err)
		taken := "bruno@example.com"
		_, err = svc.UpdateUser(ctx, other.ID, entity.UserPatch{Email: &taken})
		assert.ErrorIs(t, err, service.ErrDuplicateEmail)
	})

	t.Run("DeleteUser", func(t *testing.T) {
		created, err := svc.CreateUser(ctx, "Temp", "temp@example.com", "Ops", "Intern")
		require.NoError(t, err)

		deleted, err := svc.DeleteUser(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = svc.DeleteUser(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = svc.FindUserByID(ctx, created.ID)
		assert.ErrorIs(t, err, service.ErrUserNotFound)

		_, err = svc.DeleteUser(ctx, "bad")
		assert.ErrorIs(t, err, service.ErrInvalidUserID)
	})

	t.Run("department queries", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			_, err := svc.CreateUser(ctx, fmt.Sprintf("QA %d", i), fmt.Sprintf("qa%d@example.com", i), "QA", "Tester")
			require.NoError(t, err)
		}

		users, err := svc.FindUsersByDepartment(ctx, "QA")
		require.NoError(t, err)
		assert.Len(t, users, 3)

		users, err = svc.FindUsersByDepartment(ctx, "qa")
		require.NoError(t, err)
		assert.Empty(t, users)

		n, err := svc.CountByDepartment(ctx, "QA")
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		all, err := svc.FindAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 3)
	})

	t.Run("SearchUsers paging", func(t *testing.T) {
		qa := "QA"
		page0, err := svc.SearchUsers(ctx, entity.UserQuery{Department: &qa, Size: 10})
		require.NoError(t, err)
		assert.Len(t, page0, 3)

		page1, err := svc.SearchUsers(ctx, entity.UserQuery{Department: &qa, Page: 1, Size: 10})
		require.NoError(t, err)
		assert.NotNil(t, page1)
		assert.Empty(t, page1)

		desc, err := svc.SearchUsers(ctx, entity.UserQuery{Department: &qa, SortBy: "email", SortDirection: "DESC", Size: 2})
		require.NoError(t, err)
		require.Len(t, desc, 2)
		assert.Equal(t, "qa2@example.com", desc[0].Email)
		assert.Equal(t, "qa1@example.com", desc[1].Email)
	})

	t.Run("SearchUsers quotes the name", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, "Dot.Name", "dot@example.com", "Regex", "Tester")
		require.NoError(t, err)
		_, err = svc.CreateUser(ctx, "DotXName", "dotx@example.com", "Regex", "Tester")
		require.NoError(t, err)

		name := "t.n"
		users, err := svc.SearchUsers(ctx, entity.UserQuery{Name: &name})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "Dot.Name", users[0].Name)
	})
}
