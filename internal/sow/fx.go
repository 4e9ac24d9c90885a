package sow

import (
	"github.com/smallbiznis/sowforge/internal/sow/repository"
	"github.com/smallbiznis/sowforge/internal/sow/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sow.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
