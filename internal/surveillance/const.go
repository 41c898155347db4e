package surveillance

const (
	InfoApiKey        = "SYNO.SurveillanceStation.Info"
	CameraApiKey      = "SYNO.SurveillanceStation.Camera"
	CameraEventApiKey = "SYNO.SurveillanceStation.Camera.Event"
	HomeModeApiKey    = "SYNO.SurveillanceStation.HomeMode"
	SnapshotApiKey    = "SYNO.SurveillanceStation.SnapShot"
)

// Camera List payloads changed shape after version 7.
const cameraListMaxVersion = 7

// Motion detection source values accepted by MDParamSave. A camera reporting
// any source other than disabled has motion detection on.
const (
	MotionDetectionBySurveillance = 1
	MotionDetectionDisabled       = -1
)

type SnapshotSize int

const (
	SnapshotSizeIcon SnapshotSize = 1
	SnapshotSizeFull SnapshotSize = 2
)

type SnapshotProfile int

const (
	SnapshotProfileHighQuality  SnapshotProfile = 0
	SnapshotProfileBalanced     SnapshotProfile = 1
	SnapshotProfileLowBandwidth SnapshotProfile = 2
)

type VideoFormat string

const (
	VideoFormatMjpegHttp VideoFormat = "mjpeg_http"
	VideoFormatMulticast VideoFormat = "multicast"
	VideoFormatMxpegHttp VideoFormat = "mxpeg_http"
	VideoFormatRtspHttp  VideoFormat = "rtsp_http"
	VideoFormatRtsp      VideoFormat = "rtsp"
)
