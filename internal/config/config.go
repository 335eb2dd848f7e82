package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Match        MatchConfig        `mapstructure:"match"`
	Pacing       PacingConfig       `mapstructure:"pacing"`
	Presentation PresentationConfig `mapstructure:"presentation"`
	Sim          SimConfig          `mapstructure:"sim"`
	Server       ServerConfig       `mapstructure:"server"`
}

// MatchConfig holds board and level settings
type MatchConfig struct {
	GridSize     int           `mapstructure:"grid_size"`
	TurnDuration time.Duration `mapstructure:"turn_duration"`
	Seed         int64         `mapstructure:"seed"`
	LevelFile    string        `mapstructure:"level_file"`
	RosterFile   string        `mapstructure:"roster_file"`
	StartLevel   int           `mapstructure:"start_level"`
}

// PacingConfig holds the waits the AI turn inserts between its steps
type PacingConfig struct {
	AIThink            time.Duration `mapstructure:"ai_think"`
	PreAttack          time.Duration `mapstructure:"pre_attack"`
	PostAttack         time.Duration `mapstructure:"post_attack"`
	PostMove           time.Duration `mapstructure:"post_move"`
	FollowupPostAttack time.Duration `mapstructure:"followup_post_attack"`
	AISettle           time.Duration `mapstructure:"ai_settle"`
}

// PresentationConfig holds the headless animation timings
type PresentationConfig struct {
	MoveSpeed  float64       `mapstructure:"move_speed"`
	RotateTime time.Duration `mapstructure:"rotate_time"`
	AttackTime time.Duration `mapstructure:"attack_time"`
}

// SimConfig holds settings for the command-line simulator
type SimConfig struct {
	TickRate        time.Duration `mapstructure:"tick_rate"`
	MaxTicks        int           `mapstructure:"max_ticks"`
	RenderEveryTurn bool          `mapstructure:"render_every_turn"`
}

// ServerConfig holds process-level settings
type ServerConfig struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	// Match defaults
	v.SetDefault("match.grid_size", 8)
	v.SetDefault("match.turn_duration", 90*time.Second)
	v.SetDefault("match.seed", 0)
	v.SetDefault("match.level_file", "")
	v.SetDefault("match.roster_file", "")
	v.SetDefault("match.start_level", 0)

	// AI pacing defaults
	v.SetDefault("pacing.ai_think", 2*time.Second)
	v.SetDefault("pacing.pre_attack", 250*time.Millisecond)
	v.SetDefault("pacing.post_attack", time.Second)
	v.SetDefault("pacing.post_move", 750*time.Millisecond)
	v.SetDefault("pacing.followup_post_attack", 750*time.Millisecond)
	v.SetDefault("pacing.ai_settle", 2*time.Second)

	// Presentation defaults
	v.SetDefault("presentation.move_speed", 2.5)
	v.SetDefault("presentation.rotate_time", 150*time.Millisecond)
	v.SetDefault("presentation.attack_time", 333*time.Millisecond)

	// Simulator defaults
	v.SetDefault("sim.tick_rate", 50*time.Millisecond)
	v.SetDefault("sim.max_ticks", 20000)
	v.SetDefault("sim.render_every_turn", false)

	// Server defaults
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "console")
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/grid-tactics")
	}

	v.SetEnvPrefix("GT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Only a missing file falls back to defaults; parse errors are reported
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded values
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

// GetString gets a string value from config
func GetString(key string) string {
	return v.GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return v.GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return v.GetBool(key)
}

// GetDuration gets a duration value from config
func GetDuration(key string) time.Duration {
	return v.GetDuration(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Pacing and
// presentation values are re-read by the match on every turn, so a change
// takes effect at the next turn boundary. Reloads that fail validation are
// reported through onChange and leave the previous values in place.
func WatchConfig(onChange func(*Config, error)) {
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			if onChange != nil {
				onChange(cfg, fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if err := Validate(next); err != nil {
			if onChange != nil {
				onChange(cfg, fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg, nil)
		}
	})
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Match.GridSize < 4 {
		return fmt.Errorf("match.grid_size must be at least 4")
	}
	if c.Match.TurnDuration < 0 {
		return fmt.Errorf("match.turn_duration must be non-negative")
	}
	if c.Match.StartLevel < 0 {
		return fmt.Errorf("match.start_level must be non-negative")
	}

	pacing := map[string]time.Duration{
		"pacing.ai_think":             c.Pacing.AIThink,
		"pacing.pre_attack":           c.Pacing.PreAttack,
		"pacing.post_attack":          c.Pacing.PostAttack,
		"pacing.post_move":            c.Pacing.PostMove,
		"pacing.followup_post_attack": c.Pacing.FollowupPostAttack,
		"pacing.ai_settle":            c.Pacing.AISettle,
	}
	for key, d := range pacing {
		if d < 0 {
			return fmt.Errorf("%s must be non-negative", key)
		}
	}

	if c.Presentation.MoveSpeed <= 0 {
		return fmt.Errorf("presentation.move_speed must be positive")
	}
	if c.Presentation.RotateTime < 0 || c.Presentation.AttackTime < 0 {
		return fmt.Errorf("presentation timings must be non-negative")
	}

	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive")
	}
	if c.Sim.MaxTicks <= 0 {
		return fmt.Errorf("sim.max_ticks must be positive")
	}

	switch c.Server.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("server.log_format must be console or json")
	}

	return nil
}
