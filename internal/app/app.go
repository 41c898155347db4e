package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/catchdave/go-synologydsm/internal/configs"
	"github.com/catchdave/go-synologydsm/internal/logger"

	"go.uber.org/zap"
)

// Service is a long-running background worker owned by the daemon.
type Service interface {
	Name() string
	Start() error
	Shutdown(ctx context.Context)
}

func Run(shutdownTimeout time.Duration, registration RegistrationFunc) {
	ctx := context.Background()
	configs.Init(ctx)

	globalConfigs := configs.Get()

	loggerConfigs := globalConfigs.Logger
	logger.Init(ctx, logger.WithGlobalConfigs(&loggerConfigs))

	options := registration(globalConfigs, logger.Logger())

	opts := Options{}
	for _, optioner := range options {
		optioner(&opts)
	}

	sugared := zap.L().Sugar()

	sugared.Infof("Run: configs = %s", globalConfigs.String())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)

	if opts.factoryHook != nil {
		if err := opts.factoryHook(); err != nil {
			sugared.Fatalf("Run: factoryHook err = %s", err)
			return
		}
	}

	for _, s := range opts.services {
		s := s
		go func() {
			sugared.Infof("Run: start service name = %s", s.Name())
			if err := s.Start(); err != nil {
				sugared.Fatalf("Run: start service name = %s err = %s", s.Name(), err)
			}
		}()
	}

	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, s := range opts.services {
		sugared.Infof("Run: stop service name = %s", s.Name())
		s.Shutdown(ctx)
	}

	if opts.shutdownHook != nil {
		opts.shutdownHook(ctx)
	}

	zap.L().Sync()
	log.Print("Run: shutdown complete")
}

type RegistrationFunc func(configs *configs.Configs, logger *zap.Logger) []Optioner
type FactoryHook func() error
type ShutdownHook func(ctx context.Context)

type Options struct {
	services []Service

	factoryHook  FactoryHook
	shutdownHook ShutdownHook
}

type Optioner func(opts *Options)

func WithService(service Service) Optioner {
	return func(opts *Options) {
		if service != nil {
			opts.services = append(opts.services, service)
		}
	}
}

func WithFactoryHook(cb FactoryHook) Optioner {
	return func(opts *Options) {
		opts.factoryHook = cb
	}
}

func WithShutdownHook(cb ShutdownHook) Optioner {
	return func(opts *Options) {
		opts.shutdownHook = cb
	}
}
