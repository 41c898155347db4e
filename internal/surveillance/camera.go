package surveillance

import (
	custerror "github.com/catchdave/go-synologydsm/internal/error"

	"github.com/mitchellh/mapstructure"
)

// Camera is one cached registry entry. List payloads are merged into it
// field-by-field, so a record carrying only a subset of the fields leaves the
// rest of the entry untouched.
type Camera struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Vendor    string `json:"vendor"`
	Model     string `json:"model"`
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Enabled   bool   `json:"enabled"`
	Status    int    `json:"status"`
	RecStatus int    `json:"recStatus"`

	LiveView CameraLiveView `json:"-"`

	motionDetectionEnabled bool
}

func NewCamera(data map[string]interface{}) (*Camera, error) {
	camera := &Camera{}
	if err := camera.Update(data); err != nil {
		return nil, err
	}
	return camera, nil
}

func (c *Camera) Update(data map[string]interface{}) error {
	return decodePartial(data, c)
}

func (c *Camera) IsRecording() bool {
	return c.RecStatus > 0
}

type MotionDetectionParams struct {
	Source int `json:"source"`
}

type MotionEnumData struct {
	MDParam MotionDetectionParams `json:"MDParam"`
}

func (c *Camera) UpdateMotionDetection(data *MotionEnumData) {
	c.motionDetectionEnabled = data.MDParam.Source != MotionDetectionDisabled
}

func (c *Camera) IsMotionDetectionEnabled() bool {
	return c.motionDetectionEnabled
}

// CameraLiveView holds the transport-specific streaming URLs reported by
// GetLiveViewPath. The module hands them to callers as-is.
type CameraLiveView struct {
	MjpegHttp string `json:"mjpegHttpPath"`
	Multicast string `json:"multicastPath"`
	MxpegHttp string `json:"mxpegHttpPath"`
	RtspHttp  string `json:"rtspOverHttpPath"`
	Rtsp      string `json:"rtspPath"`
}

func (v *CameraLiveView) Update(data map[string]interface{}) error {
	return decodePartial(data, v)
}

func (v *CameraLiveView) Path(format VideoFormat) (string, error) {
	switch format {
	case VideoFormatMjpegHttp:
		return v.MjpegHttp, nil
	case VideoFormatMulticast:
		return v.Multicast, nil
	case VideoFormatMxpegHttp:
		return v.MxpegHttp, nil
	case VideoFormatRtspHttp:
		return v.RtspHttp, nil
	case VideoFormatRtsp:
		return v.Rtsp, nil
	}
	return "", custerror.FormatInvalidArgument("unknown video format %q", format)
}

func decodePartial(data map[string]interface{}, dest interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return custerror.FormatInternalError("decodePartial: err = %s", err)
	}
	if err := decoder.Decode(data); err != nil {
		return custerror.FormatInvalidArgument("decodePartial: err = %s", err)
	}
	return nil
}
