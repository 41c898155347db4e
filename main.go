package main

import (
	"context"
	"time"

	"github.com/catchdave/go-synologydsm/biz/service"
	"github.com/catchdave/go-synologydsm/internal/app"
	"github.com/catchdave/go-synologydsm/internal/cache"
	"github.com/catchdave/go-synologydsm/internal/configs"
	"github.com/catchdave/go-synologydsm/internal/logger"

	"go.uber.org/zap"
)

func main() {
	app.Run(
		time.Second*10,
		func(configs *configs.Configs, zl *zap.Logger) []app.Optioner {
			cache.Init()
			service.Init()
			return []app.Optioner{
				app.WithService(service.GetWatcherService()),
				app.WithShutdownHook(func(ctx context.Context) {
					logger.Close()
				}),
			}
		},
	)
}
