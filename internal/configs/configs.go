package configs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	custerror "github.com/catchdave/go-synologydsm/internal/error"

	"gopkg.in/yaml.v3"
)

const ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

var globalConfigs *Configs

type Configs struct {
	Dsm     DsmConfigs     `json:"dsm,omitempty" yaml:"dsm,omitempty"`
	Logger  LoggerConfigs  `json:"logger,omitempty" yaml:"logger,omitempty"`
	Watcher WatcherConfigs `json:"watcher,omitempty" yaml:"watcher,omitempty"`
}

func (c Configs) String() string {
	configBytes, _ := json.Marshal(c)
	return string(configBytes)
}

func Init(ctx context.Context) {
	configs, err := readConfig()
	if err != nil {
		log.Fatal(err)
		return
	}
	globalConfigs = configs
}

func Get() *Configs {
	return globalConfigs
}

type DsmConfigs struct {
	Host     string `json:"host,omitempty" yaml:"host,omitempty"`
	Port     int    `json:"port,omitempty" yaml:"port,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Https    bool   `json:"https,omitempty" yaml:"https,omitempty"`
	Insecure bool   `json:"insecure,omitempty" yaml:"insecure,omitempty"`
}

func (c *DsmConfigs) BaseUrl() string {
	scheme := "http"
	if c.Https {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

type LoggerConfigs struct {
	Level    string `json:"level,omitempty" yaml:"level,omitempty"`
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

type WatcherConfigs struct {
	IntervalSeconds int  `json:"intervalSeconds,omitempty" yaml:"intervalSeconds,omitempty"`
	CaptureSnapshot bool `json:"captureSnapshot,omitempty" yaml:"captureSnapshot,omitempty"`
	PoolSize        int  `json:"poolSize,omitempty" yaml:"poolSize,omitempty"`
}

func readConfig() (*Configs, error) {
	path, err := getConfigFilePath()
	if err != nil {
		return nil, err
	}
	configFile, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	configs, err := parseConfig(configFile)
	if err != nil {
		return nil, err
	}

	return configs, nil
}

func getConfigFilePath() (string, error) {
	path := os.Getenv(ENV_CONFIG_FILE_PATH)
	if len(path) == 0 {
		return "", custerror.FormatNotFound("CONFIG_FILE_PATH not found, unable to read configurations")
	}
	return path, nil
}

func readConfigFile(path string) ([]byte, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, custerror.FormatNotFound("readConfigFile: file not found")
		}
		return nil, custerror.FormatInternalError("readConfigFile: err = %s", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, custerror.FormatInternalError("readConfigFile: err = %s", err)
	}

	return contents, nil
}

func parseConfig(contents []byte) (*Configs, error) {
	configs := &Configs{}
	if jsonErr := json.Unmarshal(contents, configs); jsonErr != nil {
		if yamlErr := yaml.Unmarshal(contents, configs); yamlErr != nil {
			return nil, custerror.FormatInvalidArgument("parseConfig: config parse JSON err = %s YAML err = %s", jsonErr, yamlErr)
		}
	}
	return configs, nil
}
