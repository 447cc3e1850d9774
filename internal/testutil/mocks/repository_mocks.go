package mocks

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jrjohn/docstore-users/internal/domain/dao"
	"github.com/jrjohn/docstore-users/internal/domain/entity"
	"github.com/jrjohn/docstore-users/internal/domain/repository"
)

// MockUserRepository is an in-memory UserRepository that mimics the store:
// generated ObjectID ids, a unique email index and malformed-id rejection.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entity.User
	order []string

	// Error injection
	CreateErr           error
	GetByIDErr          error
	UpdateErr           error
	DeleteErr           error
	ListErr             error
	CountErr            error
	SearchErr           error
	CollectionExistsErr error
	CollectionMissing   bool
	Collection          string
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:      make(map[string]*entity.User),
		Collection: "users",
	}
}

// AddUser stores a copy of user, assigning an id when it has none.
func (r *MockUserRepository) AddUser(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	r.put(user)
}

func (r *MockUserRepository) put(user *entity.User) {
	if _, ok := r.users[user.ID]; !ok {
		r.order = append(r.order, user.ID)
	}
	u := *user
	r.users[user.ID] = &u
}

func (r *MockUserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func checkID(id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return fmt.Errorf("%w: %q", dao.ErrInvalidID, id)
	}
	return nil
}

func (r *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(user.Email, "") {
		return fmt.Errorf("%w: email_1", dao.ErrDuplicateKey)
	}
	user.ID = primitive.NewObjectID().Hex()
	r.put(user)
	return nil
}

func (r *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, nil
}

func (r *MockUserRepository) Update(ctx context.Context, user *entity.User) (bool, error) {
	if err := checkID(user.ID); err != nil {
		return false, err
	}
	if r.UpdateErr != nil {
		return false, r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return false, nil
	}
	if r.emailTaken(user.Email, user.ID) {
		return false, fmt.Errorf("%w: email_1", dao.ErrDuplicateKey)
	}
	r.put(user)
	return true, nil
}

func (r *MockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := checkID(id); err != nil {
		return false, err
	}
	if r.DeleteErr != nil {
		return false, r.DeleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// snapshot returns copies in insertion order, filtered by keep.
func (r *MockUserRepository) snapshot(keep func(*entity.User) bool) []*entity.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]*entity.User, 0, len(r.order))
	for _, id := range r.order {
		if u := r.users[id]; keep(u) {
			c := *u
			users = append(users, &c)
		}
	}
	return users
}

func (r *MockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return r.snapshot(func(*entity.User) bool { return true }), nil
}

func (r *MockUserRepository) ListByDepartment(ctx context.Context, department string) ([]*entity.User, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	return r.snapshot(func(u *entity.User) bool { return u.Department == department }), nil
}

func (r *MockUserRepository) CountByDepartment(ctx context.Context, department string) (int64, error) {
	if r.CountErr != nil {
		return 0, r.CountErr
	}
	users := r.snapshot(func(u *entity.User) bool { return u.Department == department })
	return int64(len(users)), nil
}

// Search supports the name, department and active criteria and sorts by name only.
func (r *MockUserRepository) Search(ctx context.Context, query entity.UserQuery) ([]*entity.User, error) {
	if r.SearchErr != nil {
		return nil, r.SearchErr
	}
	q := query.Normalize()
	users := r.snapshot(func(u *entity.User) bool {
		if q.Name != nil && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(*q.Name)) {
			return false
		}
		if q.Department != nil && u.Department != *q.Department {
			return false
		}
		if q.Active != nil && u.Active != *q.Active {
			return false
		}
		return true
	})
	sort.SliceStable(users, func(i, j int) bool {
		if q.SortDirection == entity.SortDesc {
			return users[i].Name > users[j].Name
		}
		return users[i].Name < users[j].Name
	})

	start := int(q.Skip())
	if start >= len(users) {
		return []*entity.User{}, nil
	}
	end := start + q.Size
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], nil
}

func (r *MockUserRepository) Count(ctx context.Context) (int64, error) {
	if r.CountErr != nil {
		return 0, r.CountErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

func (r *MockUserRepository) CollectionExists(ctx context.Context) (bool, error) {
	if r.CollectionExistsErr != nil {
		return false, r.CollectionExistsErr
	}
	return !r.CollectionMissing, nil
}

func (r *MockUserRepository) CollectionName() string {
	return r.Collection
}
