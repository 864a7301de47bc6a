package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"schemaforge/internal/generator"
)

const EnvPrefix = "SCHEMAFORGE"

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LoggerConfig struct {
	Level  string `mapstructure:"level"`  // debug|info|warn|error
	Format string `mapstructure:"format"` // json|console
}

// GenerateConfig: значения по умолчанию для фасада генерации
type GenerateConfig struct {
	Family        string `mapstructure:"family"`
	SmartDefaults bool   `mapstructure:"smart_defaults"`
	Pluralize     bool   `mapstructure:"pluralize"`
}

type GatewayConfig struct {
	CORSAllowedOrigins string `mapstructure:"cors_allowed_origins"`
	RateLimitRPS       int    `mapstructure:"rate_limit_rps"`
	RateLimitBurst     int    `mapstructure:"rate_limit_burst"`
}

type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Generate GenerateConfig `mapstructure:"generate"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
	Watch    WatchConfig    `mapstructure:"watch"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("generate.family", string(generator.FamilyDocument))
	v.SetDefault("generate.smart_defaults", true)
	v.SetDefault("generate.pluralize", false)

	v.SetDefault("gateway.cors_allowed_origins", "*")
	v.SetDefault("gateway.rate_limit_rps", 100)
	v.SetDefault("gateway.rate_limit_burst", 10)

	v.SetDefault("watch.debounce", 300*time.Millisecond)
}

// флаг -> ключ конфига
var flagKeys = map[string]string{
	"port":             "server.port",
	"log-level":        "logger.level",
	"log-format":       "logger.format",
	"family":           "generate.family",
	"smart-defaults":   "generate.smart_defaults",
	"pluralize":        "generate.pluralize",
	"cors-origins":     "gateway.cors_allowed_origins",
	"rate-limit-rps":   "gateway.rate_limit_rps",
	"rate-limit-burst": "gateway.rate_limit_burst",
	"debounce":         "watch.debounce",
}

// RegisterFlags добавляет общие флаги генерации и логирования.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to config file (yaml/json)")
	fs.String("log-level", "info", "Log level (debug/info/warn/error)")
	fs.String("log-format", "json", "Log format (json/console)")
	fs.String("family", string(generator.FamilyDocument), "Persistence family (document/relational)")
	fs.Bool("smart-defaults", true, "Synthesize bounds for required strings")
	fs.Bool("pluralize", false, "Pluralize table names with an inflector")
}

// RegisterServerFlags: флаги HTTP-сервера.
func RegisterServerFlags(fs *pflag.FlagSet) {
	fs.Int("port", 8080, "HTTP port")
	fs.String("cors-origins", "*", "Comma-separated CORS origins")
	fs.Int("rate-limit-rps", 100, "Requests per second")
	fs.Int("rate-limit-burst", 10, "Rate limit burst")
}

// RegisterWatchFlags: флаги режима наблюдения.
func RegisterWatchFlags(fs *pflag.FlagSet) {
	fs.Duration("debounce", 300*time.Millisecond, "Coalesce changes within this window")
}

// Load: defaults -> файл (если есть) -> ENV (SCHEMAFORGE_*) -> флаги.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if flags != nil && path == "" {
		if f := flags.Lookup("config"); f != nil {
			path = strings.TrimSpace(f.Value.String())
		}
	}
	if path != "" {
		if err := readFile(v, path); err != nil {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("v.Unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readFile читает файл конфига; отсутствующий файл не ошибка.
func readFile(v *viper.Viper, path string) error {
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	ext := strings.TrimLeft(filepath.Ext(path), ".")
	if ext == "yml" {
		ext = "yaml"
	}
	v.SetConfigType(ext)
	if err := v.ReadConfig(bytes.NewReader([]byte(expandEnvWithDefaults(string(raw))))); err != nil {
		return fmt.Errorf("v.ReadConfig: %w", err)
	}
	return nil
}

var envRefRe = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvWithDefaults подставляет ${VAR:-default}
func expandEnvWithDefaults(s string) string {
	return envRefRe.ReplaceAllStringFunc(s, func(match string) string {
		m := envRefRe.FindStringSubmatch(match)
		if len(m) < 2 {
			return match
		}
		if value := os.Getenv(m[1]); value != "" {
			return value
		}
		if len(m) > 2 {
			return m[2]
		}
		return ""
	})
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if _, err := generator.ParseFamily(c.Generate.Family); err != nil {
		return fmt.Errorf("generate.family: %w", err)
	}
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logger.level must be one of debug|info|warn|error, got %q", c.Logger.Level)
	}
	if c.Gateway.RateLimitRPS < 0 || c.Gateway.RateLimitBurst < 0 {
		return fmt.Errorf("gateway rate limits must not be negative")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// GenerateOptions переводит секцию generate в опции фасада.
func (c *Config) GenerateOptions() generator.Options {
	family, _ := generator.ParseFamily(c.Generate.Family)
	return generator.Options{
		Family:        family,
		SmartDefaults: c.Generate.SmartDefaults,
		Pluralize:     c.Generate.Pluralize,
	}
}

// CORSOrigins: список origin'ов из строки через запятую.
func (c *Config) CORSOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Gateway.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
