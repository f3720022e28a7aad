package storefront

import "go.uber.org/fx"

var Module = fx.Module("graphql.storefront",
	fx.Provide(NewSchema),
)
