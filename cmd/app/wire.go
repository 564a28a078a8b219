//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/fitcheck/internal/bootstrap"
	"github.com/yanqian/fitcheck/internal/domain/auth"
	"github.com/yanqian/fitcheck/internal/domain/stylist"
	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
	"github.com/yanqian/fitcheck/internal/infra/config"
	httpiface "github.com/yanqian/fitcheck/internal/interface/http"
	"github.com/yanqian/fitcheck/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideWardrobeConfig,
		provideStylistConfig,
		provideLLMConfig,
		provideChatGPTClient,
		provideTokenCounter,
		provideEngine,
		providePostgresPool,
		provideUserRepository,
		provideWardrobeRepository,
		provideImageStore,
		provideAttributeExtractor,
		provideOracle,
		provideWeatherProvider,
		auth.NewService,
		wardrobe.NewService,
		stylist.NewService,
		provideHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
