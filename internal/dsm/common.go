package dsm

import (
	"encoding/json"

	custerror "github.com/catchdave/go-synologydsm/internal/error"

	"github.com/bytedance/sonic"
	fastshot "github.com/opus-domini/fast-shot"
)

// DSM web API error codes shared by every endpoint. Codes above 400 are
// endpoint-specific and reported as-is.
const (
	ApiErrorUnknown            = 100
	ApiErrorInvalidParameter   = 101
	ApiErrorUnknownApi         = 102
	ApiErrorUnknownMethod      = 103
	ApiErrorVersionUnsupported = 104
	ApiErrorInsufficientPriv   = 105
	ApiErrorSessionTimeout     = 106
	ApiErrorSessionInterrupted = 107
	ApiErrorSidNotFound        = 119
	ApiErrorRequestLimit       = 120
)

type ApiError struct {
	Code int `json:"code"`
}

type ApiResponse struct {
	Data    json.RawMessage `json:"data,omitempty"`
	Success bool            `json:"success"`
	Error   *ApiError       `json:"error,omitempty"`
}

func (r *ApiResponse) DecodeData(dest interface{}) error {
	if r.Data == nil {
		return custerror.FormatInternalError("api response carries no data field")
	}
	return sonic.Unmarshal(r.Data, dest)
}

func sessionExpired(code int) bool {
	switch code {
	case ApiErrorInsufficientPriv, ApiErrorSessionTimeout, ApiErrorSessionInterrupted, ApiErrorSidNotFound:
		return true
	}
	return false
}

func mapApiError(code int) error {
	switch code {
	case ApiErrorInvalidParameter, ApiErrorRequestLimit:
		return custerror.FormatInvalidArgument("api error code = %d", code)
	case ApiErrorUnknownApi, ApiErrorUnknownMethod, ApiErrorVersionUnsupported:
		return custerror.FormatNotFound("api error code = %d", code)
	case ApiErrorInsufficientPriv, ApiErrorSessionTimeout, ApiErrorSessionInterrupted, ApiErrorSidNotFound:
		return custerror.ErrorPermissionDenied
	}
	return custerror.FormatInternalError("api error code = %d", code)
}

func handleError(resp *fastshot.Response) error {
	switch resp.StatusCode() {
	case 400:
		return custerror.ErrorInvalidArgument
	case 401, 403:
		return custerror.ErrorPermissionDenied
	case 404:
		return custerror.ErrorNotFound
	case 500, 502:
		return custerror.ErrorInternal
	}

	return nil
}
