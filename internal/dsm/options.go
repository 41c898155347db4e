package dsm

import (
	"time"

	"github.com/catchdave/go-synologydsm/internal/configs"
)

type dsmOptions struct {
	BaseUrl     string `json:"baseUrl"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	InsecureTls bool   `json:"insecureTls"`
	Timeout     time.Duration
}

type DsmClientOptioner func(o *dsmOptions)

func WithGlobalConfigs(configs *configs.DsmConfigs) DsmClientOptioner {
	return func(o *dsmOptions) {
		o.BaseUrl = configs.BaseUrl()
		o.Username = configs.Username
		o.Password = configs.Password
		o.InsecureTls = configs.Insecure
	}
}

func WithBaseUrl(baseUrl string) DsmClientOptioner {
	return func(o *dsmOptions) {
		o.BaseUrl = baseUrl
	}
}

func WithCredentials(username string, password string) DsmClientOptioner {
	return func(o *dsmOptions) {
		o.Username = username
		o.Password = password
	}
}

func WithTimeout(dur time.Duration) DsmClientOptioner {
	return func(o *dsmOptions) {
		o.Timeout = dur
	}
}
