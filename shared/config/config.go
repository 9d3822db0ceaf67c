package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Api    Api    `yaml:"api"`
	Log    Log    `yaml:"log"`
	Bridge Bridge `yaml:"bridge"`
}

// Api describes the remote forum backend.
type Api struct {
	BaseURL        string        `yaml:"base_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"required"`
	RateLimit      float64       `yaml:"rate_limit" validate:"gte=0"` // requests per second, 0 disables limiting
	RateBurst      int           `yaml:"rate_burst" validate:"gte=0"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format" validate:"omitempty,oneof=text json auto"`
}

// Bridge is the local HTTP surface a UI collaborator talks to.
type Bridge struct {
	Addr         string        `yaml:"addr" validate:"required"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// per client IP, applied to intent endpoints only
	IntentRateLimit float64 `yaml:"intent_rate_limit" validate:"gte=0"`
	IntentRateBurst int     `yaml:"intent_rate_burst" validate:"gte=0"`
}

type Private struct {
	AccessToken string `yaml:"access_token"`
}

// AccessToken is the token restored on startup, empty when not configured.
func (s *Config) AccessToken() string {
	return s.private.AccessToken
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and, when present, private.yaml from configFolder.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		mustLoadPath(privatePath, &private)
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(public); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}

	return &Config{public, private}
}

func (p *Public) applyDefaults() {
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "auto"
	}
	if p.Bridge.ReadTimeout == 0 {
		p.Bridge.ReadTimeout = 5 * time.Second
	}
	if p.Bridge.WriteTimeout == 0 {
		p.Bridge.WriteTimeout = 10 * time.Second
	}
	if p.Bridge.IntentRateLimit == 0 {
		p.Bridge.IntentRateLimit = 10
	}
	if p.Bridge.IntentRateBurst == 0 {
		p.Bridge.IntentRateBurst = 20
	}
}
