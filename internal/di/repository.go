package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/docstore-users/internal/domain/dao"
	"github.com/jrjohn/docstore-users/internal/domain/repository"
	"github.com/jrjohn/docstore-users/internal/domain/repository/impl"
)

// RepositoryModule provides repository dependencies.
// Repositories delegate to the DAO layer for database operations.
var RepositoryModule = fx.Module("repository",
	fx.Provide(provideUserRepository),
)

// provideUserRepository creates a UserRepository that delegates to UserDAO.
func provideUserRepository(userDAO dao.UserDAO) repository.UserRepository {
	return impl.NewUserRepository(userDAO)
}
