package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/catchdave/go-synologydsm/internal/cache"
	custcon "github.com/catchdave/go-synologydsm/internal/concurrent"
	"github.com/catchdave/go-synologydsm/internal/configs"
	"github.com/catchdave/go-synologydsm/internal/dsm"
	"github.com/catchdave/go-synologydsm/internal/logger"
	"github.com/catchdave/go-synologydsm/internal/surveillance"

	"github.com/dgraph-io/ristretto"
	"github.com/go-co-op/gocron"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const defaultWatchInterval = 30

// WatcherService polls the Surveillance Station on a schedule: refresh the
// camera registry, report state, and keep the most recent image of every
// enabled camera in the snapshot cache.
type WatcherService struct {
	gateway      dsm.Client
	station      *surveillance.Client
	scheduler    *gocron.Scheduler
	snapshotPool *ants.Pool
	snapshots    *ristretto.Cache
	configs      *configs.WatcherConfigs

	refreshing atomic.Bool
}

func NewWatcherService(gateway dsm.Client, station *surveillance.Client, watcherConfigs *configs.WatcherConfigs) *WatcherService {
	poolSize := watcherConfigs.PoolSize
	if poolSize == 0 {
		poolSize = 4
	}
	return &WatcherService{
		gateway:      gateway,
		station:      station,
		scheduler:    gocron.NewScheduler(time.UTC),
		snapshotPool: custcon.New(poolSize),
		snapshots:    cache.Cache(),
		configs:      watcherConfigs,
	}
}

func (s *WatcherService) Name() string {
	return "surveillance-watcher"
}

func (s *WatcherService) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.gateway.Login(ctx); err != nil {
		return err
	}

	interval := s.configs.IntervalSeconds
	if interval == 0 {
		interval = defaultWatchInterval
	}

	if _, err := s.scheduler.Every(interval).Seconds().SingletonMode().Do(s.refresh); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *WatcherService) refresh() {
	// Update rebuilds the registry in place; an overlapping run would race it.
	if !s.refreshing.CompareAndSwap(false, true) {
		logger.SDebug("WatcherService.refresh: previous run still in flight, skipping")
		return
	}
	defer s.refreshing.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.station.Update(ctx); err != nil {
		logger.SError("WatcherService.refresh: update failed", zap.Error(err))
		return
	}

	homeMode, err := s.station.GetHomeModeStatus(ctx)
	if err != nil {
		logger.SError("WatcherService.refresh: home mode status", zap.Error(err))
		return
	}

	cameras := s.station.GetAllCameras()
	logger.SInfo("WatcherService.refresh: station polled",
		zap.Int("cameras", len(cameras)),
		zap.Bool("homeMode", homeMode))

	for _, camera := range cameras {
		logger.SDebug("WatcherService.refresh: camera state",
			zap.Int("cameraId", camera.Id),
			zap.String("name", camera.Name),
			zap.Bool("enabled", camera.Enabled),
			zap.Bool("recording", camera.IsRecording()),
			zap.Bool("motionDetection", camera.IsMotionDetectionEnabled()))

		if !s.configs.CaptureSnapshot || !camera.Enabled {
			continue
		}
		cameraId := camera.Id
		s.snapshotPool.Submit(func() {
			s.captureSnapshot(cameraId)
		})
	}
}

func (s *WatcherService) captureSnapshot(cameraId int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	imageBytes, err := s.station.GetCameraImage(ctx, cameraId, surveillance.SnapshotProfileBalanced)
	if err != nil {
		logger.SError("WatcherService.captureSnapshot: fetch failed",
			zap.Int("cameraId", cameraId),
			zap.Error(err))
		return
	}

	s.snapshots.Set(snapshotCacheKey(cameraId), imageBytes, int64(len(imageBytes)))
	logger.SDebug("WatcherService.captureSnapshot: cached",
		zap.Int("cameraId", cameraId),
		zap.Int("size", len(imageBytes)))
}

// Snapshot returns the most recently captured image for a camera, if any.
func (s *WatcherService) Snapshot(cameraId int) ([]byte, bool) {
	value, ok := s.snapshots.Get(snapshotCacheKey(cameraId))
	if !ok {
		return nil, false
	}
	imageBytes, ok := value.([]byte)
	return imageBytes, ok
}

func (s *WatcherService) Shutdown(ctx context.Context) {
	logger.SInfo("WatcherService.Shutdown: shutdown received")
	s.scheduler.Stop()
	s.snapshotPool.Release()

	if err := s.gateway.Logout(ctx); err != nil {
		logger.SDebug("WatcherService.Shutdown: logout", zap.Error(err))
	}
}

func snapshotCacheKey(cameraId int) string {
	return fmt.Sprintf("snapshot/%d", cameraId)
}
