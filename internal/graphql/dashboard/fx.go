package dashboard

import "go.uber.org/fx"

var Module = fx.Module("graphql.dashboard",
	fx.Provide(NewSchema),
)
