package di

import (
	"go.uber.org/fx"

	httpctrl "github.com/jrjohn/docstore-users/internal/controller/http"
	"github.com/jrjohn/docstore-users/internal/domain/service"
)

// ControllerModule provides one HTTP controller per data-access variant.
var ControllerModule = fx.Module("controller",
	fx.Provide(
		fx.Annotate(
			provideNativeController,
			fx.ParamTags(`name:"native"`, `name:"native"`),
			fx.ResultTags(`group:"user_controllers"`),
		),
		fx.Annotate(
			provideMappedController,
			fx.ParamTags(`name:"mapped"`),
			fx.ResultTags(`group:"user_controllers"`),
		),
	),
)

func provideNativeController(
	userService service.UserDataService,
	statsService service.DepartmentStatsService,
) *httpctrl.UserController {
	return httpctrl.NewUserController(service.VariantNative, userService, statsService)
}

func provideMappedController(userService service.UserDataService) *httpctrl.UserController {
	return httpctrl.NewUserController(service.VariantMapped, userService, nil)
}
