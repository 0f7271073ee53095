package components

import (
	"go.uber.org/fx"

	"lendhub/internal/handler"
	"lendhub/internal/handler/api"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/pkg/jwt"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewRentalHandler,
		api.NewCoordinationHandler,
		api.NewChatHandler,
		api.NewNotificationHandler,
		func(svc *jwt.Service) middleware.TokenValidator { return svc },
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
