//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/betterrest/internal/bootstrap"
	"github.com/yanqian/betterrest/internal/domain/bedtime"
	"github.com/yanqian/betterrest/internal/domain/form"
	"github.com/yanqian/betterrest/internal/infra/config"
	"github.com/yanqian/betterrest/internal/infra/oracle"
	httpiface "github.com/yanqian/betterrest/internal/interface/http"
	"github.com/yanqian/betterrest/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideBedtimeConfig,
		provideFormConfig,
		provideFormStore,
		bootstrap.NewOracleLoader,
		wire.Bind(new(bedtime.OracleSource), new(*oracle.Loader)),
		bedtime.NewService,
		form.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
