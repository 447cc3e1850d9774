package di

import (
	"go.uber.org/fx"

	"github.com/jrjohn/docstore-users/internal/config"
	"github.com/jrjohn/docstore-users/internal/domain/dao"
	mongodao "github.com/jrjohn/docstore-users/internal/domain/dao/mongo"
	"github.com/jrjohn/docstore-users/internal/domain/service"
	"github.com/jrjohn/docstore-users/internal/observability"
)

// DAOModule provides the typed MongoDB DAO behind the mapped variant.
var DAOModule = fx.Module("dao",
	fx.Provide(provideUserDAO),
)

// provideUserDAO creates an instrumented UserDAO over the configured collection.
func provideUserDAO(
	cfg *config.DatabaseConfig,
	mongoDB *MongoDatabase,
	metrics *observability.MetricsProvider,
) dao.UserDAO {
	inst := mongodao.NewInstrumenter(service.VariantMapped, cfg.Collection, metrics)
	return mongodao.NewUserDAO(mongoDB.DB, cfg.Collection, inst)
}
