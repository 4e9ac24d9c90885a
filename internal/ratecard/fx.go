package ratecard

import (
	"github.com/smallbiznis/sowforge/internal/ratecard/repository"
	"github.com/smallbiznis/sowforge/internal/ratecard/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratecard.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
