package surveillance

import (
	"context"
	"strconv"
	"strings"

	"github.com/catchdave/go-synologydsm/internal/dsm"
	custerror "github.com/catchdave/go-synologydsm/internal/error"
	"github.com/catchdave/go-synologydsm/internal/logger"

	"go.uber.org/zap"
)

// Client is the Surveillance Station facade. It owns the camera registry:
// a mapping from camera ID to the latest known entry, refreshed wholesale by
// Update. The registry is not safe for use concurrently with Update.
type Client struct {
	gateway dsm.Client
	cameras map[int]*Camera
	order   []int
}

func NewClient(gateway dsm.Client) *Client {
	return &Client{
		gateway: gateway,
		cameras: map[int]*Camera{},
	}
}

type cameraListData struct {
	Cameras []map[string]interface{} `json:"cameras"`
}

// Update refreshes the registry from three sequential endpoint calls: the
// camera list, one MotionEnum per camera, and a single batched
// GetLiveViewPath. Failures propagate unchanged and leave whatever state the
// cycle reached so far; there is no rollback.
func (c *Client) Update(ctx context.Context) error {
	c.cameras = map[int]*Camera{}
	c.order = nil

	resp, err := c.gateway.Get(ctx, CameraApiKey, "List", cameraListMaxVersion, nil)
	if err != nil {
		return err
	}
	var listData cameraListData
	if err := resp.DecodeData(&listData); err != nil {
		return err
	}

	for _, cameraData := range listData.Cameras {
		camera, err := NewCamera(cameraData)
		if err != nil {
			return err
		}
		if existing, ok := c.cameras[camera.Id]; ok {
			if err := existing.Update(cameraData); err != nil {
				return err
			}
			continue
		}
		c.cameras[camera.Id] = camera
		c.order = append(c.order, camera.Id)
	}

	for _, id := range c.order {
		resp, err := c.gateway.Get(ctx, CameraEventApiKey, "MotionEnum", 0, map[string]string{
			"camId": strconv.Itoa(id),
		})
		if err != nil {
			return err
		}
		var motionData MotionEnumData
		if err := resp.DecodeData(&motionData); err != nil {
			return err
		}
		c.cameras[id].UpdateMotionDetection(&motionData)
	}

	if len(c.order) == 0 {
		return nil
	}

	ids := make([]string, 0, len(c.order))
	for _, id := range c.order {
		ids = append(ids, strconv.Itoa(id))
	}
	resp, err = c.gateway.Get(ctx, CameraApiKey, "GetLiveViewPath", 0, map[string]string{
		"idList": strings.Join(ids, ","),
	})
	if err != nil {
		return err
	}
	var liveViewData []map[string]interface{}
	if err := resp.DecodeData(&liveViewData); err != nil {
		return err
	}
	for _, record := range liveViewData {
		var key struct {
			Id int `json:"id"`
		}
		if err := decodePartial(record, &key); err != nil {
			return err
		}
		camera, ok := c.cameras[key.Id]
		if !ok {
			logger.SDebug("surveillance.Update: live view for unknown camera",
				zap.Int("cameraId", key.Id))
			continue
		}
		if err := camera.LiveView.Update(record); err != nil {
			return err
		}
	}

	logger.SDebug("surveillance.Update: registry refreshed",
		zap.Int("cameras", len(c.order)))
	return nil
}

// Info describes the Surveillance Station instance itself.
type Info struct {
	CameraNumber       int    `json:"cameraNumber"`
	CustomizedPortHttp int    `json:"customizedPortHttp"`
	Hostname           string `json:"hostname"`
	LicenseNumber      int    `json:"liscenseNumber"`
	MaxCameraSupport   int    `json:"maxCameraSupport"`
	Path               string `json:"path"`
	ProductName        string `json:"productName"`
	Serial             string `json:"serial"`
	Timezone           string `json:"timezone"`
}

func (c *Client) GetInfo(ctx context.Context) (*Info, error) {
	resp, err := c.gateway.Get(ctx, InfoApiKey, "GetInfo", 0, nil)
	if err != nil {
		return nil, err
	}
	var info Info
	if err := resp.DecodeData(&info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetAllCameras returns the cached entries in list-response order.
func (c *Client) GetAllCameras() []*Camera {
	cameras := make([]*Camera, 0, len(c.order))
	for _, id := range c.order {
		cameras = append(cameras, c.cameras[id])
	}
	return cameras
}

func (c *Client) GetCamera(cameraId int) (*Camera, error) {
	camera, ok := c.cameras[cameraId]
	if !ok {
		return nil, custerror.FormatNotFound("camera %d not found", cameraId)
	}
	return camera, nil
}

func (c *Client) GetCameraLiveView(cameraId int) (*CameraLiveView, error) {
	camera, err := c.GetCamera(cameraId)
	if err != nil {
		return nil, err
	}
	return &camera.LiveView, nil
}

func (c *Client) GetCameraLiveViewPath(cameraId int, format VideoFormat) (string, error) {
	camera, err := c.GetCamera(cameraId)
	if err != nil {
		return "", err
	}
	return camera.LiveView.Path(format)
}

func (c *Client) IsMotionDetectionEnabled(cameraId int) (bool, error) {
	camera, err := c.GetCamera(cameraId)
	if err != nil {
		return false, err
	}
	return camera.IsMotionDetectionEnabled(), nil
}

// EnableCamera enables one camera or several, idList being either a single ID
// or a comma-joined list ("1" or "1,2,3"), forwarded verbatim.
func (c *Client) EnableCamera(ctx context.Context, idList string) (bool, error) {
	resp, err := c.gateway.Get(ctx, CameraApiKey, "Enable", 0, map[string]string{
		"idList": idList,
	})
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// DisableCamera is the counterpart of EnableCamera.
func (c *Client) DisableCamera(ctx context.Context, idList string) (bool, error) {
	resp, err := c.gateway.Get(ctx, CameraApiKey, "Disable", 0, map[string]string{
		"idList": idList,
	})
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}

// GetCameraImage returns the current camera image bytes at the given
// snapshot profile.
func (c *Client) GetCameraImage(ctx context.Context, cameraId int, profile SnapshotProfile) ([]byte, error) {
	return c.gateway.GetBytes(ctx, CameraApiKey, "GetSnapshot", 0, map[string]string{
		"id":          strconv.Itoa(cameraId),
		"cameraId":    strconv.Itoa(cameraId),
		"profileType": strconv.Itoa(int(profile)),
	})
}

func (c *Client) EnableMotionDetection(ctx context.Context, cameraId int) error {
	_, err := c.gateway.Get(ctx, CameraEventApiKey, "MDParamSave", 0, map[string]string{
		"camId":  strconv.Itoa(cameraId),
		"source": strconv.Itoa(MotionDetectionBySurveillance),
	})
	return err
}

func (c *Client) DisableMotionDetection(ctx context.Context, cameraId int) error {
	_, err := c.gateway.Get(ctx, CameraEventApiKey, "MDParamSave", 0, map[string]string{
		"camId":  strconv.Itoa(cameraId),
		"source": strconv.Itoa(MotionDetectionDisabled),
	})
	return err
}

func (c *Client) GetHomeModeStatus(ctx context.Context) (bool, error) {
	resp, err := c.gateway.Get(ctx, HomeModeApiKey, "GetInfo", 0, nil)
	if err != nil {
		return false, err
	}
	var homeModeData struct {
		On bool `json:"on"`
	}
	if err := resp.DecodeData(&homeModeData); err != nil {
		return false, err
	}
	return homeModeData.On, nil
}

// SetHomeMode switches Home Mode on or off. The endpoint wants the state as
// the lowercase strings "true" and "false".
func (c *Client) SetHomeMode(ctx context.Context, state bool) (bool, error) {
	resp, err := c.gateway.Get(ctx, HomeModeApiKey, "Switch", 0, map[string]string{
		"on": strconv.FormatBool(state),
	})
	if err != nil {
		return false, err
	}
	return resp.Success, nil
}
