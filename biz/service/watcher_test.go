package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/catchdave/go-synologydsm/internal/cache"
	"github.com/catchdave/go-synologydsm/internal/configs"
	"github.com/catchdave/go-synologydsm/internal/dsm"
	custerror "github.com/catchdave/go-synologydsm/internal/error"
	"github.com/catchdave/go-synologydsm/internal/surveillance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	responses map[string]string
	binaries  map[string][]byte
	logouts   int

	// When set, camera list calls block on this channel until it is closed.
	listGate  chan struct{}
	listCalls atomic.Int32
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		responses: map[string]string{},
		binaries:  map[string][]byte{},
	}
}

func (f *fakeGateway) Login(ctx context.Context) error {
	return nil
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	f.logouts++
	return nil
}

func (f *fakeGateway) Get(ctx context.Context, apiKey string, method string, version int, params map[string]string) (*dsm.ApiResponse, error) {
	if apiKey == surveillance.CameraApiKey && method == "List" {
		f.listCalls.Add(1)
		if f.listGate != nil {
			<-f.listGate
		}
	}
	data, ok := f.responses[apiKey+"/"+method]
	if !ok {
		return nil, custerror.FormatNotFound("no response scripted for %s %s", apiKey, method)
	}
	return &dsm.ApiResponse{
		Data:    json.RawMessage(data),
		Success: true,
	}, nil
}

func (f *fakeGateway) GetBytes(ctx context.Context, apiKey string, method string, version int, params map[string]string) ([]byte, error) {
	return f.binaries[apiKey+"/"+method], nil
}

func newTestWatcher(gateway *fakeGateway, watcherConfigs *configs.WatcherConfigs) *WatcherService {
	cache.Init()
	return NewWatcherService(gateway, surveillance.NewClient(gateway), watcherConfigs)
}

func TestRefresh_CachesSnapshotsForEnabledCameras(t *testing.T) {
	gateway := newFakeGateway()
	gateway.responses[surveillance.CameraApiKey+"/List"] = `{
		"cameras": [
			{"id": 1, "name": "front-door", "enabled": true},
			{"id": 2, "name": "garage", "enabled": false}
		]
	}`
	gateway.responses[surveillance.CameraEventApiKey+"/MotionEnum"] = `{"MDParam": {"source": 1}}`
	gateway.responses[surveillance.CameraApiKey+"/GetLiveViewPath"] = `[
		{"id": 1, "rtspPath": "rtsp://ds/1"},
		{"id": 2, "rtspPath": "rtsp://ds/2"}
	]`
	gateway.responses[surveillance.HomeModeApiKey+"/GetInfo"] = `{"on": false}`
	gateway.binaries[surveillance.CameraApiKey+"/GetSnapshot"] = []byte("image-bytes")

	watcher := newTestWatcher(gateway, &configs.WatcherConfigs{
		CaptureSnapshot: true,
		PoolSize:        1,
	})

	watcher.refresh()

	require.Eventually(t, func() bool {
		watcher.snapshots.Wait()
		_, ok := watcher.Snapshot(1)
		return ok
	}, time.Second, 10*time.Millisecond)

	imageBytes, ok := watcher.Snapshot(1)
	require.True(t, ok)
	assert.Equal(t, []byte("image-bytes"), imageBytes)

	_, ok = watcher.Snapshot(2)
	assert.False(t, ok, "disabled camera must not be captured")
}

func TestRefresh_SkipsWhilePreviousRunInFlight(t *testing.T) {
	gateway := newFakeGateway()
	gateway.responses[surveillance.CameraApiKey+"/List"] = `{"cameras": []}`
	gateway.responses[surveillance.HomeModeApiKey+"/GetInfo"] = `{"on": false}`
	gateway.listGate = make(chan struct{})

	watcher := newTestWatcher(gateway, &configs.WatcherConfigs{})

	done := make(chan struct{})
	go func() {
		watcher.refresh()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return gateway.listCalls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// The first run is still blocked inside the list call; this one must
	// return without touching the registry.
	watcher.refresh()
	assert.Equal(t, int32(1), gateway.listCalls.Load())

	close(gateway.listGate)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first refresh did not finish")
	}

	watcher.refresh()
	assert.Equal(t, int32(2), gateway.listCalls.Load(), "guard must be released after the run")
}

func TestShutdown_LogsOut(t *testing.T) {
	gateway := newFakeGateway()
	watcher := newTestWatcher(gateway, &configs.WatcherConfigs{})

	watcher.Shutdown(context.Background())
	assert.Equal(t, 1, gateway.logouts)
}
