package surveillance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraUpdate_MergesPartialPayload(t *testing.T) {
	camera, err := NewCamera(map[string]interface{}{
		"id":      float64(1),
		"name":    "front-door",
		"vendor":  "Synology",
		"model":   "BC500",
		"host":    "192.168.1.10",
		"port":    float64(554),
		"enabled": true,
	})
	require.NoError(t, err)

	err = camera.Update(map[string]interface{}{
		"id":      float64(1),
		"name":    "front-door-renamed",
		"enabled": false,
	})
	require.NoError(t, err)

	assert.Equal(t, "front-door-renamed", camera.Name)
	assert.False(t, camera.Enabled)
	assert.Equal(t, "BC500", camera.Model)
	assert.Equal(t, "192.168.1.10", camera.Host)
	assert.Equal(t, 554, camera.Port)
}

func TestCameraUpdate_DoesNotTouchLiveView(t *testing.T) {
	camera, err := NewCamera(map[string]interface{}{"id": float64(1)})
	require.NoError(t, err)

	require.NoError(t, camera.LiveView.Update(map[string]interface{}{
		"rtspPath": "rtsp://ds/1",
	}))
	require.NoError(t, camera.Update(map[string]interface{}{
		"id":   float64(1),
		"name": "front-door",
	}))

	assert.Equal(t, "rtsp://ds/1", camera.LiveView.Rtsp)
}

func TestCameraMotionDetection(t *testing.T) {
	camera, err := NewCamera(map[string]interface{}{"id": float64(1)})
	require.NoError(t, err)
	assert.False(t, camera.IsMotionDetectionEnabled())

	camera.UpdateMotionDetection(&MotionEnumData{
		MDParam: MotionDetectionParams{Source: MotionDetectionBySurveillance},
	})
	assert.True(t, camera.IsMotionDetectionEnabled())

	camera.UpdateMotionDetection(&MotionEnumData{
		MDParam: MotionDetectionParams{Source: MotionDetectionDisabled},
	})
	assert.False(t, camera.IsMotionDetectionEnabled())

	// Source 0 means detection runs on the camera itself, still enabled.
	camera.UpdateMotionDetection(&MotionEnumData{
		MDParam: MotionDetectionParams{Source: 0},
	})
	assert.True(t, camera.IsMotionDetectionEnabled())
}

func TestLiveViewPath(t *testing.T) {
	liveView := CameraLiveView{
		MjpegHttp: "http://ds/1/mjpeg",
		Multicast: "multicast://ds/1",
		MxpegHttp: "http://ds/1/mxpeg",
		RtspHttp:  "http://ds/1/rtsp",
		Rtsp:      "rtsp://ds/1",
	}

	for format, want := range map[VideoFormat]string{
		VideoFormatMjpegHttp: "http://ds/1/mjpeg",
		VideoFormatMulticast: "multicast://ds/1",
		VideoFormatMxpegHttp: "http://ds/1/mxpeg",
		VideoFormatRtspHttp:  "http://ds/1/rtsp",
		VideoFormatRtsp:      "rtsp://ds/1",
	} {
		got, err := liveView.Path(format)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := liveView.Path(VideoFormat("webrtc"))
	assert.Error(t, err)
}
