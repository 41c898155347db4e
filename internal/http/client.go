package custhttp

import (
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/catchdave/go-synologydsm/internal/logger"

	"github.com/bytedance/sonic"
	"github.com/motemen/go-loghttp"
	fastshot "github.com/opus-domini/fast-shot"
	"go.uber.org/zap"
)

type Options struct {
	timeout     time.Duration
	insecureTls bool
	logging     bool
}

type ClientOptioner func(o *Options)

func WithTimeout(dur time.Duration) ClientOptioner {
	return func(o *Options) {
		o.timeout = dur
	}
}

func WithInsecureTls() ClientOptioner {
	return func(o *Options) {
		o.insecureTls = true
	}
}

func WithLogging() ClientOptioner {
	return func(o *Options) {
		o.logging = true
	}
}

func NewClient(baseUrl string, opts ...ClientOptioner) fastshot.ClientHttpMethods {
	options := &Options{
		timeout: 10 * time.Second,
	}
	for _, o := range opts {
		o(options)
	}

	builder := fastshot.NewClient(baseUrl)
	clientConfigs := builder.Config()
	clientConfigs.SetTimeout(options.timeout)
	clientConfigs.SetFollowRedirects(true)

	transport := &http.Transport{}
	if options.insecureTls {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}
	if options.logging {
		clientConfigs.SetCustomTransport(&loghttp.Transport{
			Transport: transport,
			LogRequest: func(req *http.Request) {
				logger.SDebug("http request",
					zap.String("method", req.Method),
					zap.String("url", req.URL.Redacted()))
			},
			LogResponse: func(resp *http.Response) {
				logger.SDebug("http response",
					zap.Int("status", resp.StatusCode),
					zap.String("url", resp.Request.URL.Redacted()))
			},
		})
	} else {
		clientConfigs.SetCustomTransport(transport)
	}

	return builder.Build()
}

func JSONResponse(resp *fastshot.Response, dest interface{}) error {
	body := resp.RawBody()
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		logger.SDebug("failed to read HTTP response body",
			zap.Error(err))
		return err
	}

	if err := sonic.Unmarshal(bodyBytes, dest); err != nil {
		logger.SDebug("failed to unmarshal JSON response",
			zap.Error(err))
		return err
	}

	return nil
}

func RawResponse(resp *fastshot.Response) ([]byte, error) {
	body := resp.RawBody()
	defer body.Close()

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		logger.SDebug("failed to read HTTP response body",
			zap.Error(err))
		return nil, err
	}

	return bodyBytes, nil
}
