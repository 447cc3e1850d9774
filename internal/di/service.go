package di

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/config"
	"github.com/jrjohn/docstore-users/internal/domain/repository"
	"github.com/jrjohn/docstore-users/internal/domain/service"
	serviceimpl "github.com/jrjohn/docstore-users/internal/domain/service/impl"
	"github.com/jrjohn/docstore-users/internal/observability"
)

// ServiceModule provides both data-access variants.
var ServiceModule = fx.Module("service",
	fx.Provide(
		provideNativeUserService,
		provideUserServices,
	),
)

// UserServices holds the per-variant services handed to the controllers.
type UserServices struct {
	fx.Out

	Native service.UserDataService        `name:"native"`
	Mapped service.UserDataService        `name:"mapped"`
	Stats  service.DepartmentStatsService `name:"native"`
}

func provideNativeUserService(
	mongoDB *MongoDatabase,
	cfg *config.DatabaseConfig,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) *serviceimpl.NativeUserService {
	return serviceimpl.NewNativeUserService(mongoDB.DB, cfg.Collection, logger, metrics)
}

func provideUserServices(
	native *serviceimpl.NativeUserService,
	userRepo repository.UserRepository,
	cfg *config.Config,
	logger *zap.Logger,
) UserServices {
	mapped := serviceimpl.NewMappedUserService(userRepo, logger)
	return buildUserServices(native, native, mapped, cfg.Exercises, logger)
}

// buildUserServices wraps both variants in the exercise placeholders when configured.
// Stats are never stubbed.
func buildUserServices(
	native service.UserDataService,
	stats service.DepartmentStatsService,
	mapped service.UserDataService,
	exercises config.ExercisesConfig,
	logger *zap.Logger,
) UserServices {
	out := UserServices{Native: native, Mapped: mapped, Stats: stats}
	if exercises.Stubbed {
		logger.Warn("Exercise operations are stubbed and will answer 501")
		out.Native = service.NewExerciseStub(out.Native)
		out.Mapped = service.NewExerciseStub(out.Mapped)
	}
	return out
}
