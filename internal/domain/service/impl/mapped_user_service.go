package impl

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/domain/entity"
	"github.com/jrjohn/docstore-users/internal/domain/repository"
	"github.com/jrjohn/docstore-users/internal/domain/service"
)

// mappedUserService implements service.UserDataService on top of the
// repository, which works with typed documents and never sees raw bson.
type mappedUserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewMappedUserService creates the object-mapping variant of the service.
func NewMappedUserService(userRepo repository.UserRepository, logger *zap.Logger) service.UserDataService {
	return &mappedUserService{
		userRepo: userRepo,
		logger:   logger.With(zap.String("variant", service.VariantMapped)),
		now:      time.Now,
	}
}

func (s *mappedUserService) TestConnection(ctx context.Context) (string, error) {
	exists, err := s.userRepo.CollectionExists(ctx)
	if err != nil {
		return "", translate(s.logger, "testConnection", s.userRepo.CollectionName(), err)
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return "", translate(s.logger, "testConnection", s.userRepo.CollectionName(), err)
	}

	msg := fmt.Sprintf("Mapped connection OK | Collection: %s | Exists: %t | Users: %d",
		s.userRepo.CollectionName(), exists, count)
	s.logger.Info(msg)
	return msg, nil
}

func (s *mappedUserService) CreateUser(ctx context.Context, name, email, department, role string) (*entity.User, error) {
	user := entity.NewUser(name, email, department, role, s.now())
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, translate(s.logger, "createUser", email, err)
	}
	s.logger.Info("User created", zap.String("id", user.ID))
	return user, nil
}

func (s *mappedUserService) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(s.logger, "findUserById", id, err)
	}
	if user == nil {
		return nil, notFound(s.logger, "findUserById", id)
	}
	return user, nil
}

// UpdateUser loads the entity, applies the patch and saves the whole document.
func (s *mappedUserService) UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	user, err := s.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.ApplyTo(user)
	user.Touch(s.now())

	found, err := s.userRepo.Update(ctx, user)
	if err != nil {
		detail := id
		if patch.Email != nil {
			detail = emailOf(patch.Email)
		}
		return nil, translate(s.logger, "updateUser", detail, err)
	}
	// Deleted between the read and the write.
	if !found {
		return nil, notFound(s.logger, "updateUser", id)
	}
	s.logger.Info("User updated", zap.String("id", id))
	return user, nil
}

func (s *mappedUserService) DeleteUser(ctx context.Context, id string) (bool, error) {
	deleted, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return false, translate(s.logger, "deleteUser", id, err)
	}
	if !deleted {
		s.logger.Warn("No user to delete", zap.String("id", id))
		return false, nil
	}
	s.logger.Info("User deleted", zap.String("id", id))
	return true, nil
}

func (s *mappedUserService) FindAll(ctx context.Context) ([]*entity.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, translate(s.logger, "findAll", "", err)
	}
	return users, nil
}

func (s *mappedUserService) FindUsersByDepartment(ctx context.Context, department string) ([]*entity.User, error) {
	users, err := s.userRepo.ListByDepartment(ctx, department)
	if err != nil {
		return nil, translate(s.logger, "findUsersByDepartment", department, err)
	}
	return users, nil
}

func (s *mappedUserService) SearchUsers(ctx context.Context, query entity.UserQuery) ([]*entity.User, error) {
	users, err := s.userRepo.Search(ctx, query.Normalize())
	if err != nil {
		return nil, translate(s.logger, "searchUsers", "", err)
	}
	return users, nil
}

func (s *mappedUserService) CountByDepartment(ctx context.Context, department string) (int64, error) {
	n, err := s.userRepo.CountByDepartment(ctx, department)
	if err != nil {
		return 0, translate(s.logger, "countByDepartment", department, err)
	}
	return n, nil
}
