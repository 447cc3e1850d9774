package service

import (
	"context"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
)

// exerciseStub hides the four query operations behind ErrNotImplemented so a
// classroom build can hand them out as exercises. Everything else is delegated.
type exerciseStub struct {
	UserDataService
}

// NewExerciseStub wraps inner, stubbing FindAll, FindUsersByDepartment,
// SearchUsers and CountByDepartment.
func NewExerciseStub(inner UserDataService) UserDataService {
	return &exerciseStub{UserDataService: inner}
}

func (s *exerciseStub) FindAll(context.Context) ([]*entity.User, error) {
	return nil, ErrNotImplemented.WithDetail("findAll")
}

func (s *exerciseStub) FindUsersByDepartment(context.Context, string) ([]*entity.User, error) {
	return nil, ErrNotImplemented.WithDetail("findUsersByDepartment")
}

func (s *exerciseStub) SearchUsers(context.Context, entity.UserQuery) ([]*entity.User, error) {
	return nil, ErrNotImplemented.WithDetail("searchUsers")
}

func (s *exerciseStub) CountByDepartment(context.Context, string) (int64, error) {
	return 0, ErrNotImplemented.WithDetail("countByDepartment")
}
