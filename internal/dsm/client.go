package dsm

import (
	"context"
	"strconv"
	"time"

	custerror "github.com/catchdave/go-synologydsm/internal/error"
	custhttp "github.com/catchdave/go-synologydsm/internal/http"
	"github.com/catchdave/go-synologydsm/internal/logger"

	"github.com/avast/retry-go"
	"github.com/bytedance/sonic"
	fastshot "github.com/opus-domini/fast-shot"
	"go.uber.org/zap"
)

const (
	InfoApiKey = "SYNO.API.Info"
	AuthApiKey = "SYNO.API.Auth"

	sessionName = "SurveillanceStation"
)

// Client is the session gateway to a DSM host. All endpoint calls go through
// Get or GetBytes; callers never see the sid or the per-API paths.
type Client interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Get(ctx context.Context, apiKey string, method string, version int, params map[string]string) (*ApiResponse, error)
	GetBytes(ctx context.Context, apiKey string, method string, version int, params map[string]string) ([]byte, error)
}

type ApiInfoEntry struct {
	Path       string `json:"path"`
	MinVersion int    `json:"minVersion"`
	MaxVersion int    `json:"maxVersion"`
}

type client struct {
	options    *dsmOptions
	restClient fastshot.ClientHttpMethods
	apiInfo    map[string]ApiInfoEntry
	sid        string
}

func NewClient(options ...DsmClientOptioner) (Client, error) {
	opts := dsmOptions{
		Timeout: 10 * time.Second,
	}
	for _, o := range options {
		o(&opts)
	}
	if opts.BaseUrl == "" {
		return nil, custerror.FormatInvalidArgument("dsm.NewClient: missing base URL")
	}

	clientOptions := []custhttp.ClientOptioner{
		custhttp.WithTimeout(opts.Timeout),
		custhttp.WithLogging(),
	}
	if opts.InsecureTls {
		clientOptions = append(clientOptions, custhttp.WithInsecureTls())
	}

	return &client{
		options:    &opts,
		restClient: custhttp.NewClient(opts.BaseUrl, clientOptions...),
		apiInfo:    map[string]ApiInfoEntry{},
	}, nil
}

func (c *client) apiPath(apiKey string) string {
	if entry, ok := c.apiInfo[apiKey]; ok && entry.Path != "" {
		return entry.Path
	}
	switch apiKey {
	case InfoApiKey:
		return "query.cgi"
	case AuthApiKey:
		return "auth.cgi"
	}
	return "entry.cgi"
}

func (c *client) resolveVersion(apiKey string, requested int) int {
	entry, ok := c.apiInfo[apiKey]
	if !ok {
		if requested > 0 {
			return requested
		}
		return 1
	}
	if requested == 0 || requested > entry.MaxVersion {
		return entry.MaxVersion
	}
	if requested < entry.MinVersion {
		return entry.MinVersion
	}
	return requested
}

func (c *client) send(ctx context.Context, apiKey string, method string, version int, params map[string]string) (*fastshot.Response, error) {
	request := c.restClient.GET("/webapi/" + c.apiPath(apiKey)).
		Context().Set(ctx).
		Query().AddParam("api", apiKey).
		Query().AddParam("method", method).
		Query().AddParam("version", strconv.Itoa(c.resolveVersion(apiKey, version)))
	if c.sid != "" && apiKey != AuthApiKey {
		request = request.Query().AddParam("_sid", c.sid)
	}
	for key, value := range params {
		request = request.Query().AddParam(key, value)
	}

	resp, err := request.Send()
	if err != nil {
		return nil, err
	}
	if err := handleError(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *client) discoverApis(ctx context.Context) error {
	resp, err := c.send(ctx, InfoApiKey, "query", 1, map[string]string{
		"query": "ALL",
	})
	if err != nil {
		return err
	}

	var parsedResp ApiResponse
	if err := custhttp.JSONResponse(resp, &parsedResp); err != nil {
		return err
	}
	if !parsedResp.Success {
		return mapApiError(parsedResp.errorCode())
	}

	apiInfo := map[string]ApiInfoEntry{}
	if err := parsedResp.DecodeData(&apiInfo); err != nil {
		return err
	}
	c.apiInfo = apiInfo

	logger.SDebug("dsm.discoverApis: endpoint discovery completed",
		zap.Int("apis", len(apiInfo)))
	return nil
}

func (c *client) Login(ctx context.Context) error {
	if len(c.apiInfo) == 0 {
		if err := c.discoverApis(ctx); err != nil {
			return err
		}
	}

	return retry.Do(func() error {
		resp, err := c.send(ctx, AuthApiKey, "login", 3, map[string]string{
			"account": c.options.Username,
			"passwd":  c.options.Password,
			"session": sessionName,
			"format":  "sid",
		})
		if err != nil {
			return err
		}

		var parsedResp ApiResponse
		if err := custhttp.JSONResponse(resp, &parsedResp); err != nil {
			return err
		}
		if !parsedResp.Success {
			return mapApiError(parsedResp.errorCode())
		}

		var loginData struct {
			Sid string `json:"sid"`
		}
		if err := parsedResp.DecodeData(&loginData); err != nil {
			return err
		}

		c.sid = loginData.Sid
		logger.SInfo("dsm.Login: session established",
			zap.String("host", c.options.BaseUrl))
		return nil
	},
		retry.Attempts(3),
		retry.Delay(time.Second),
	)
}

func (c *client) Logout(ctx context.Context) error {
	if c.sid == "" {
		return nil
	}
	resp, err := c.send(ctx, AuthApiKey, "logout", 1, map[string]string{
		"session": sessionName,
	})
	if err != nil {
		return err
	}

	var parsedResp ApiResponse
	if err := custhttp.JSONResponse(resp, &parsedResp); err != nil {
		return err
	}
	if !parsedResp.Success {
		return mapApiError(parsedResp.errorCode())
	}

	c.sid = ""
	return nil
}

func (c *client) Get(ctx context.Context, apiKey string, method string, version int, params map[string]string) (*ApiResponse, error) {
	parsedResp, err := c.getOnce(ctx, apiKey, method, version, params)
	if err != nil {
		return nil, err
	}
	if parsedResp.Success {
		return parsedResp, nil
	}

	code := parsedResp.errorCode()
	if !sessionExpired(code) {
		return nil, mapApiError(code)
	}

	// Session lapsed, re-login once and reissue. Any second failure
	// propagates to the caller unchanged.
	logger.SDebug("dsm.Get: session expired, attempting re-login",
		zap.Int("code", code))
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	parsedResp, err = c.getOnce(ctx, apiKey, method, version, params)
	if err != nil {
		return nil, err
	}
	if !parsedResp.Success {
		return nil, mapApiError(parsedResp.errorCode())
	}
	return parsedResp, nil
}

func (c *client) getOnce(ctx context.Context, apiKey string, method string, version int, params map[string]string) (*ApiResponse, error) {
	resp, err := c.send(ctx, apiKey, method, version, params)
	if err != nil {
		return nil, err
	}

	var parsedResp ApiResponse
	if err := custhttp.JSONResponse(resp, &parsedResp); err != nil {
		return nil, err
	}
	return &parsedResp, nil
}

func (c *client) GetBytes(ctx context.Context, apiKey string, method string, version int, params map[string]string) ([]byte, error) {
	bodyBytes, code, err := c.getBytesOnce(ctx, apiKey, method, version, params)
	if err != nil {
		return nil, err
	}
	if code == 0 {
		return bodyBytes, nil
	}
	if !sessionExpired(code) {
		return nil, mapApiError(code)
	}

	// Session lapsed, re-login once and reissue. Any second failure
	// propagates to the caller unchanged.
	logger.SDebug("dsm.GetBytes: session expired, attempting re-login",
		zap.Int("code", code))
	if err := c.Login(ctx); err != nil {
		return nil, err
	}
	bodyBytes, code, err = c.getBytesOnce(ctx, apiKey, method, version, params)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, mapApiError(code)
	}
	return bodyBytes, nil
}

// getBytesOnce issues the request once. A non-zero code means the station
// answered with a JSON error envelope instead of the payload bytes.
func (c *client) getBytesOnce(ctx context.Context, apiKey string, method string, version int, params map[string]string) ([]byte, int, error) {
	resp, err := c.send(ctx, apiKey, method, version, params)
	if err != nil {
		return nil, 0, err
	}

	bodyBytes, err := custhttp.RawResponse(resp)
	if err != nil {
		return nil, 0, err
	}

	// Binary endpoints report failures as a JSON envelope instead of bytes.
	if len(bodyBytes) > 0 && bodyBytes[0] == '{' {
		var parsedResp ApiResponse
		if err := sonic.Unmarshal(bodyBytes, &parsedResp); err == nil && !parsedResp.Success {
			return nil, parsedResp.errorCode(), nil
		}
	}

	return bodyBytes, 0, nil
}

func (r *ApiResponse) errorCode() int {
	if r.Error == nil {
		return ApiErrorUnknown
	}
	return r.Error.Code
}
