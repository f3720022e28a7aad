package optionvalue

import (
	"github.com/smallbiznis/mall/internal/optionvalue/repository"
	"github.com/smallbiznis/mall/internal/optionvalue/service"
	"go.uber.org/fx"
)

var Module = fx.Module("optionvalue.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
