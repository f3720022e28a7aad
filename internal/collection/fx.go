package collection

import (
	"github.com/smallbiznis/mall/internal/collection/repository"
	"github.com/smallbiznis/mall/internal/collection/service"
	"go.uber.org/fx"
)

var Module = fx.Module("collection.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
