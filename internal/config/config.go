// Package config loads mapview settings from flags, MAPVIEW_* environment variables and an
// optional mapview.yaml.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soar/mapview/internal/controller"
	"github.com/soar/mapview/internal/diagram"
	"github.com/soar/mapview/internal/rasterdraw"
	"github.com/soar/mapview/internal/session"
)

// Config is the resolved configuration.
type Config struct {
	Listen  string `mapstructure:"listen"`
	FPS     int    `mapstructure:"fps"`
	Preset  int    `mapstructure:"preset"`
	View    string `mapstructure:"view"`
	Detail  string `mapstructure:"detail"`
	Page    int    `mapstructure:"page"`
	Tray    bool   `mapstructure:"tray"`
	Gamepad bool   `mapstructure:"gamepad"`

	Diagram struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"diagram"`

	Log struct {
		Debug bool `mapstructure:"debug"`
	} `mapstructure:"log"`

	Skin struct {
		Front string `mapstructure:"front"`
		Back  string `mapstructure:"back"`
	} `mapstructure:"skin"`

	CustomMaps []CustomMap `mapstructure:"custom_maps"`

	// Layout is the default ratio table with the layout.* keys applied.
	Layout *diagram.Layout `mapstructure:"-"`
}

// CustomMap defines one custom preset slot (1-based).
type CustomMap struct {
	Slot     int               `mapstructure:"slot"`
	Bindings map[string]string `mapstructure:"bindings"`
	L2       string            `mapstructure:"l2"`
	R2       string            `mapstructure:"r2"`
}

// flagKeys binds flags whose names differ from their config key.
var flagKeys = map[string]string{
	"width":      "diagram.width",
	"height":     "diagram.height",
	"debug":      "log.debug",
	"skin-front": "skin.front",
	"skin-back":  "skin.back",
}

// RegisterFlags adds the shared settings to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: ./mapview.yaml or the user config dir)")
	fs.String("listen", ":8080", "HTTP listen address")
	fs.Int("fps", 30, "frame rate of the websocket stream")
	fs.Int("preset", 0, "initial preset id")
	fs.String("view", "front", "initial view: front, back or both")
	fs.String("detail", "summary", "initial overlay: summary, front or back")
	fs.Int("page", 0, "initial callout page")
	fs.Int("width", 720, "frame width in pixels")
	fs.Int("height", 330, "frame height in pixels")
	fs.Bool("tray", runtime.GOOS == "windows", "show the system tray icon")
	fs.Bool("gamepad", false, "navigate with an attached gamepad")
	fs.Bool("debug", false, "log debug messages")
	fs.String("skin-front", "", "texture for the front face")
	fs.String("skin-back", "", "texture for the back face")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", ":8080")
	v.SetDefault("fps", 30)
	v.SetDefault("preset", 0)
	v.SetDefault("view", "front")
	v.SetDefault("detail", "summary")
	v.SetDefault("page", 0)
	v.SetDefault("diagram.width", 720)
	v.SetDefault("diagram.height", 330)
	v.SetDefault("tray", runtime.GOOS == "windows")
	v.SetDefault("gamepad", false)
	v.SetDefault("log.debug", false)
}

// Load resolves the configuration. fs may be nil; only flags registered by RegisterFlags
// are bound.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("MAPVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var path string
	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
		path, _ = fs.GetString("config")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mapview")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "mapview"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Layout = diagram.DefaultLayout()
	if sub := v.Sub("layout"); sub != nil {
		if err := sub.Unmarshal(cfg.Layout); err != nil {
			return nil, fmt.Errorf("config: decode layout: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	SetDebug(cfg.Log.Debug)
	if used := v.ConfigFileUsed(); used != "" {
		Debugf("Config loaded from %s", used)
	}
	return cfg, nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		key, ok := flagKeys[f.Name]
		if !ok {
			key = f.Name
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("config: bind flag %s: %w", f.Name, bindErr)
		}
	})
	return err
}

func (c *Config) validate() error {
	if c.Diagram.Width <= 0 || c.Diagram.Height <= 0 {
		return fmt.Errorf("config: diagram size %dx%d must be positive", c.Diagram.Width, c.Diagram.Height)
	}
	if c.FPS <= 0 || c.FPS > 120 {
		return fmt.Errorf("config: fps %d out of range 1-120", c.FPS)
	}
	if !controller.IsPreset(controller.MapID(c.Preset)) {
		return fmt.Errorf("config: unknown preset %d", c.Preset)
	}
	if _, err := diagram.ParseViewMode(c.View); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := diagram.ParseDetailMode(c.Detail); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Slots parses the custom preset definitions.
func (c *Config) Slots() (*controller.CustomSlots, error) {
	var slots controller.CustomSlots
	for _, cm := range c.CustomMaps {
		if cm.Slot < 1 || cm.Slot > controller.CustomSlotCount {
			return nil, fmt.Errorf("config: custom map slot %d out of range 1-%d", cm.Slot, controller.CustomSlotCount)
		}
		s, err := controller.ParseStorage(cm.Bindings, cm.L2, cm.R2)
		if err != nil {
			return nil, fmt.Errorf("config: slot %d: %w", cm.Slot, err)
		}
		slots[cm.Slot-1] = s
	}
	return &slots, nil
}

// SessionOptions builds the options of the diagram session, loading skins when set.
func (c *Config) SessionOptions() (session.Options, error) {
	view, err := diagram.ParseViewMode(c.View)
	if err != nil {
		return session.Options{}, err
	}
	detail, err := diagram.ParseDetailMode(c.Detail)
	if err != nil {
		return session.Options{}, err
	}
	slots, err := c.Slots()
	if err != nil {
		return session.Options{}, err
	}
	opts := session.Options{
		Width:  c.Diagram.Width,
		Height: c.Diagram.Height,
		Preset: controller.MapID(c.Preset),
		View:   view,
		Detail: detail,
		Page:   c.Page,
		Slots:  slots,
		Layout: c.Layout,
	}
	if c.Skin.Front != "" || c.Skin.Back != "" {
		skins, err := rasterdraw.LoadSkins(c.Skin.Front, c.Skin.Back)
		if err != nil {
			return session.Options{}, fmt.Errorf("config: %w", err)
		}
		opts.Textures = skins
	}
	return opts, nil
}

var debug atomic.Bool

// SetDebug turns Debugf output on or off.
func SetDebug(on bool) {
	debug.Store(on)
}

// Debug reports whether debug logging is on.
func Debug() bool {
	return debug.Load()
}

// Debugf logs a [DEBUG] line when debug logging is on.
func Debugf(format string, args ...any) {
	if debug.Load() {
		log.Printf("[DEBUG] "+format, args...)
	}
}
