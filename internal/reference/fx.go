package reference

import (
	"github.com/smallbiznis/mall/internal/reference/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("reference",
	fx.Provide(repository.Provide),
)
