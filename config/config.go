package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// A4Ratio is height over width of an A4 sheet (297/210 mm).
const A4Ratio = 297.0 / 210.0

// AppConfig holds the application-level configuration
type AppConfig struct {
	Render   RenderConfig      `mapstructure:"render"`
	Document DocumentConfig    `mapstructure:"document"`
	Sync     SyncConfig        `mapstructure:"sync"`
	Window   WindowConfig      `mapstructure:"window"`
	Session  SessionConfig     `mapstructure:"session"`
	Log      LogConfig         `mapstructure:"log"`
	Keys     map[string]string `mapstructure:"keys"`
}

type RenderConfig struct {
	FallbackHeight int    `mapstructure:"fallback_height"`
	MinHeight      int    `mapstructure:"min_height"`
	Filter         string `mapstructure:"filter"`
}

type DocumentConfig struct {
	DPI    float64 `mapstructure:"dpi"`
	MaxDPI float64 `mapstructure:"max_dpi"`
	Hinted bool    `mapstructure:"hinted"`
	Probe  bool    `mapstructure:"probe"`
}

type SyncConfig struct {
	Linked bool `mapstructure:"linked"`
}

type WindowConfig struct {
	MinWidth int `mapstructure:"min_width"`
}

// MinHeight fits two A4 pages side by side plus the top bar.
func (w WindowConfig) MinHeight() int {
	return int(float64(w.MinWidth)/2*A4Ratio) + 35
}

type SessionConfig struct {
	Path    string `mapstructure:"path"`
	Restore bool   `mapstructure:"restore"`
}

type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

var Config *AppConfig

func setDefaults(v *viper.Viper) {
	v.SetDefault("render.fallback_height", 600)
	v.SetDefault("render.min_height", 10)
	v.SetDefault("render.filter", "catmullrom")
	v.SetDefault("document.dpi", 72)
	v.SetDefault("document.max_dpi", 288)
	v.SetDefault("document.hinted", false)
	v.SetDefault("document.probe", false)
	v.SetDefault("sync.linked", true)
	v.SetDefault("window.min_width", 1000)
	v.SetDefault("session.path", "./data/session")
	v.SetDefault("session.restore", false)
	v.SetDefault("log.debug", false)
}

// LoadConfig reads config.yaml from path, falling back to defaults when the
// file is absent. DUOVIEW_* environment variables override both.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.SetEnvPrefix("duoview")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		logrus.Debugf("no config file in %s, using defaults", path)
	}

	var appConfig AppConfig
	if err := v.Unmarshal(&appConfig); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return nil, err
	}

	Config = &appConfig
	return &appConfig, nil
}

// Validate rejects values the renderer and rasterizer cannot work with.
func (c *AppConfig) Validate() error {
	if c.Render.FallbackHeight < 1 {
		return fmt.Errorf("render.fallback_height must be positive, got %d", c.Render.FallbackHeight)
	}
	if c.Document.DPI <= 0 {
		return fmt.Errorf("document.dpi must be positive, got %v", c.Document.DPI)
	}
	if c.Window.MinWidth < 1 {
		return fmt.Errorf("window.min_width must be positive, got %d", c.Window.MinWidth)
	}
	return nil
}
