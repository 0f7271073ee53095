package components

import (
	"go.uber.org/fx"

	"lendhub/internal/infra/uow"
	"lendhub/internal/usecase/shared"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		// Repositories are bound lazily inside the unit of work, so the
		// pool is the only persistence dependency the graph carries.
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
	),
)
