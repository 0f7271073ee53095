package bootstrap

import (
	"go.uber.org/fx"

	"lendhub/internal/pkg/config"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
)
