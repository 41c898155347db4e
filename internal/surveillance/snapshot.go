package surveillance

import (
	"context"
	"strconv"
)

type SnapshotData struct {
	Id int `json:"id"`
}

// CaptureCameraSnapshot asks the station to take a snapshot now. With save
// set the station keeps it and the returned ID can be fed to
// DownloadSnapshot; the save flag goes over the wire as 0/1.
func (c *Client) CaptureCameraSnapshot(ctx context.Context, cameraId int, save bool) (*SnapshotData, error) {
	blSave := 0
	if save {
		blSave = 1
	}
	resp, err := c.gateway.Get(ctx, SnapshotApiKey, "TakeSnapshot", 0, map[string]string{
		"camId":  strconv.Itoa(cameraId),
		"blSave": strconv.Itoa(blSave),
	})
	if err != nil {
		return nil, err
	}
	var snapshotData SnapshotData
	if err := resp.DecodeData(&snapshotData); err != nil {
		return nil, err
	}
	return &snapshotData, nil
}

// DownloadSnapshot returns the stored snapshot image bytes in the requested
// size class.
func (c *Client) DownloadSnapshot(ctx context.Context, snapshotId int, size SnapshotSize) ([]byte, error) {
	return c.gateway.GetBytes(ctx, SnapshotApiKey, "LoadSnapshot", 0, map[string]string{
		"id":      strconv.Itoa(snapshotId),
		"imgSize": strconv.Itoa(int(size)),
	})
}
