package service

import (
	"sync"

	"github.com/catchdave/go-synologydsm/internal/configs"
	"github.com/catchdave/go-synologydsm/internal/dsm"
	"github.com/catchdave/go-synologydsm/internal/logger"
	"github.com/catchdave/go-synologydsm/internal/surveillance"

	"go.uber.org/zap"
)

var once sync.Once

var watcherService *WatcherService

func Init() {
	once.Do(func() {
		globalConfigs := configs.Get()
		gateway, err := dsm.NewClient(
			dsm.WithGlobalConfigs(&globalConfigs.Dsm),
		)
		if err != nil {
			logger.SFatal("service.Init: dsm.NewClient", zap.Error(err))
			return
		}
		watcherService = NewWatcherService(
			gateway,
			surveillance.NewClient(gateway),
			&globalConfigs.Watcher,
		)
	})
}

func GetWatcherService() *WatcherService {
	return watcherService
}
