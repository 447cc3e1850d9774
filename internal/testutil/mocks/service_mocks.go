package mocks

import (
	"context"
	"time"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
	"github.com/jrjohn/docstore-users/internal/domain/service"
)

// FixedTime is the timestamp stamped on users returned by the default mock behaviour.
var FixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// MockUserDataService is a mock implementation of UserDataService
type MockUserDataService struct {
	TestConnectionFunc        func(ctx context.Context) (string, error)
	CreateUserFunc            func(ctx context.Context, name, email, department, role string) (*entity.User, error)
	FindUserByIDFunc          func(ctx context.Context, id string) (*entity.User, error)
	UpdateUserFunc            func(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	DeleteUserFunc            func(ctx context.Context, id string) (bool, error)
	FindAllFunc               func(ctx context.Context) ([]*entity.User, error)
	FindUsersByDepartmentFunc func(ctx context.Context, department string) ([]*entity.User, error)
	SearchUsersFunc           func(ctx context.Context, query entity.UserQuery) ([]*entity.User, error)
	CountByDepartmentFunc     func(ctx context.Context, department string) (int64, error)
}

var _ service.UserDataService = (*MockUserDataService)(nil)

func NewMockUserDataService() *MockUserDataService {
	return &MockUserDataService{}
}

// SampleUser returns a fully populated user with the given id.
func SampleUser(id string) *entity.User {
	return &entity.User{
		ID:         id,
		Name:       "Test User",
		Email:      "test@example.com",
		Department: "IT",
		Role:       "Developer",
		Active:     true,
		CreatedAt:  FixedTime,
		UpdatedAt:  FixedTime,
	}
}

func (m *MockUserDataService) TestConnection(ctx context.Context) (string, error) {
	if m.TestConnectionFunc != nil {
		return m.TestConnectionFunc(ctx)
	}
	return "Connected", nil
}

func (m *MockUserDataService) CreateUser(ctx context.Context, name, email, department, role string) (*entity.User, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, name, email, department, role)
	}
	return entity.NewUser(name, email, department, role, FixedTime), nil
}

func (m *MockUserDataService) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	if m.FindUserByIDFunc != nil {
		return m.FindUserByIDFunc(ctx, id)
	}
	return SampleUser(id), nil
}

func (m *MockUserDataService) UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, patch)
	}
	user := SampleUser(id)
	patch.ApplyTo(user)
	return user, nil
}

func (m *MockUserDataService) DeleteUser(ctx context.Context, id string) (bool, error) {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, id)
	}
	return true, nil
}

func (m *MockUserDataService) FindAll(ctx context.Context) ([]*entity.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []*entity.User{}, nil
}

func (m *MockUserDataService) FindUsersByDepartment(ctx context.Context, department string) ([]*entity.User, error) {
	if m.FindUsersByDepartmentFunc != nil {
		return m.FindUsersByDepartmentFunc(ctx, department)
	}
	return []*entity.User{}, nil
}

func (m *MockUserDataService) SearchUsers(ctx context.Context, query entity.UserQuery) ([]*entity.User, error) {
	if m.SearchUsersFunc != nil {
		return m.SearchUsersFunc(ctx, query)
	}
	return []*entity.User{}, nil
}

func (m *MockUserDataService) CountByDepartment(ctx context.Context, department string) (int64, error) {
	if m.CountByDepartmentFunc != nil {
		return m.CountByDepartmentFunc(ctx, department)
	}
	return 0, nil
}

// MockDepartmentStatsService is a mock implementation of DepartmentStatsService
type MockDepartmentStatsService struct {
	GetStatsByDepartmentFunc func(ctx context.Context) ([]entity.DepartmentStats, error)
}

var _ service.DepartmentStatsService = (*MockDepartmentStatsService)(nil)

func (m *MockDepartmentStatsService) GetStatsByDepartment(ctx context.Context) ([]entity.DepartmentStats, error) {
	if m.GetStatsByDepartmentFunc != nil {
		return m.GetStatsByDepartmentFunc(ctx)
	}
	return []entity.DepartmentStats{}, nil
}
