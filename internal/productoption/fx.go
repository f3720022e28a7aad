package productoption

import (
	"github.com/smallbiznis/mall/internal/productoption/repository"
	"github.com/smallbiznis/mall/internal/productoption/service"
	"go.uber.org/fx"
)

var Module = fx.Module("productoption.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
