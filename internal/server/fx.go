package server

import "go.uber.org/fx"

var Module = fx.Module("http.server",
	fx.Provide(NewRouter),
	fx.Invoke(Run),
)
