//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/exchanger/internal/bootstrap"
	"github.com/yanqian/exchanger/internal/domain/currency"
	"github.com/yanqian/exchanger/internal/domain/unitconv"
	"github.com/yanqian/exchanger/internal/infra/config"
	"github.com/yanqian/exchanger/internal/infra/exchangerate"
	httpiface "github.com/yanqian/exchanger/internal/interface/http"
	"github.com/yanqian/exchanger/pkg/logger"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideCurrencyConfig,
		provideRateClient,
		provideRateStore,
		provideHistoryRepository,
		unitconv.NewService,
		currency.NewService,
		wire.Bind(new(currency.RateClient), new(*exchangerate.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
