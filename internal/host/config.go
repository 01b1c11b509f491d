package host

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. DASHWIDGETS_ADDR.
const EnvPrefix = "DASHWIDGETS"

// Config holds the host settings.
type Config struct {
	Addr      string `mapstructure:"addr"`
	DBPath    string `mapstructure:"db_path"`
	TableFile string `mapstructure:"table_file"`
	FormFile  string `mapstructure:"form_file"`
	ThemeFile string `mapstructure:"theme_file"`
	Version   string `mapstructure:"version"`
	LogLevel  string `mapstructure:"log_level"`

	// ThemeManifest is a go-theme manifest whose selected variant supplies
	// the ambient style tokens and the renderer CSS variables.
	ThemeManifest string `mapstructure:"theme_manifest"`
	ThemeVariant  string `mapstructure:"theme_variant"`
}

// LoadConfig reads configuration from defaults, an optional config file and
// the environment. Env files are loaded first so their values reach the
// DASHWIDGETS_ overrides; missing env files are skipped. Values already set
// in the process environment win over env files.
func LoadConfig(configFile string, envFiles ...string) (Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("host: load env file %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("db_path", "dashwidgets.db")
	v.SetDefault("table_file", "")
	v.SetDefault("form_file", "")
	v.SetDefault("theme_file", "")
	v.SetDefault("theme_manifest", "")
	v.SetDefault("theme_variant", "")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("log_level", "info")

	if configFile == "" {
		configFile = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("host: read config %s: %w", configFile, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("host: unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate reports settings the host cannot start without.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Addr) == "" {
		missing = append(missing, "addr")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		missing = append(missing, "db_path")
	}
	if c.TableFile == "" && c.FormFile == "" {
		missing = append(missing, "table_file or form_file")
	}
	if len(missing) > 0 {
		return fmt.Errorf("host: missing configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Level maps LogLevel onto a slog level. Unknown names mean info.
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// NewLogger builds the text logger the host and its middleware write to.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
