package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/milk9111/gunplay/weapon"
	"github.com/spf13/viper"
)

// Config is the demo's runtime configuration.
type Config struct {
	LogLevel string `mapstructure:"logLevel"`
	LogFile  string `mapstructure:"logFile"`

	Window  WindowConfig  `mapstructure:"window"`
	Weapon  WeaponConfig  `mapstructure:"weapon"`
	Reload  ReloadConfig  `mapstructure:"reload"`
	Prefabs PrefabsConfig `mapstructure:"prefabs"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type WeaponConfig struct {
	// Prefab is attached at startup.
	Prefab string `mapstructure:"prefab"`
	// Loadout lists the prefabs bound to the number keys, in order.
	Loadout []string `mapstructure:"loadout"`
}

type ReloadConfig struct {
	PollPeriod time.Duration `mapstructure:"pollPeriod"`
	ResumeFire bool          `mapstructure:"resumeFire"`
	// Completion is "poll" or "notify".
	Completion string `mapstructure:"completion"`
}

type PrefabsConfig struct {
	Dir      string        `mapstructure:"dir"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "gunplay")

	v.SetDefault("weapon.prefab", "rifle")
	v.SetDefault("weapon.loadout", []string{"rifle", "pistol", "shotgun", "flashlight"})

	v.SetDefault("reload.pollPeriod", weapon.DefaultReloadPollPeriod)
	v.SetDefault("reload.resumeFire", false)
	v.SetDefault("reload.completion", "poll")

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.watch", true)
	v.SetDefault("prefabs.debounce", 100*time.Millisecond)
}

// Load reads path (any format viper understands) over the defaults.
// Environment variables prefixed GUNPLAY_ override both, e.g.
// GUNPLAY_RELOAD_COMPLETION=notify. An empty path loads defaults only.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("gunplay")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Reload.Completion {
	case "poll", "notify":
	default:
		return fmt.Errorf("reload.completion must be poll or notify, got %q", c.Reload.Completion)
	}
	if c.Reload.PollPeriod <= 0 {
		return fmt.Errorf("reload.pollPeriod must be positive, got %s", c.Reload.PollPeriod)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}

// Holder returns the weapon holder settings.
func (c Config) Holder() weapon.Config {
	return weapon.Config{
		ReloadPollPeriod:       c.Reload.PollPeriod,
		ResumeFireAfterReload:  c.Reload.ResumeFire,
		NotifyReloadCompletion: c.Reload.Completion == "notify",
	}
}
