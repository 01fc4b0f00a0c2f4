package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const EnvPrefix = "CHATCORD"

var validate = validator.New()

type Config struct {
	Mode       string        `mapstructure:"mode" validate:"oneof=debug release test"`
	Port       int           `mapstructure:"port" validate:"gte=1,lte=65535"`
	StaticPath string        `mapstructure:"static_path" validate:"required"`
	ReadLimit  int64         `mapstructure:"read_limit" validate:"gte=1024"`
	PingPeriod time.Duration `mapstructure:"ping_period" validate:"gt=0"`
	WriteWait  time.Duration `mapstructure:"write_wait" validate:"gt=0"`
	SendBuffer int           `mapstructure:"send_buffer" validate:"gte=1"`
	Secret     string        `mapstructure:"secret"`
	BotName    string        `mapstructure:"bot_name" validate:"required,max=36"`

	// Per session limit on send commands.
	RateLimit    int           `mapstructure:"rate_limit" validate:"gte=1"`
	RateInterval time.Duration `mapstructure:"rate_interval" validate:"gt=0"`

	MaxAttachmentBytes int `mapstructure:"max_attachment_bytes" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("static_path", "./web")
	v.SetDefault("read_limit", 2<<20)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("write_wait", "10s")
	v.SetDefault("send_buffer", 32)
	v.SetDefault("secret", "")
	v.SetDefault("bot_name", "Chatcord HR")
	v.SetDefault("rate_limit", 10)
	v.SetDefault("rate_interval", "5s")
	v.SetDefault("max_attachment_bytes", 1<<20)
}

func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads fileName over the defaults. A missing file is not an error.
// CHATCORD_* variables win over both.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Str("module", "config").Str("file", fileName).Msg("config file not loaded, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Secret == "" {
		key := securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, errors.New("invalid config: no secret and no random source for one")
		}
		cfg.Secret = hex.EncodeToString(key)
		log.Warn().Str("module", "config").Msg("no secret configured, using a random one; client tokens reset on restart")
	}
	if cfg.ReadLimit <= int64(cfg.MaxAttachmentBytes) {
		return nil, fmt.Errorf("invalid config: read_limit %d must exceed max_attachment_bytes %d", cfg.ReadLimit, cfg.MaxAttachmentBytes)
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Str("static", cfg.StaticPath).Msg("config ready")
	return &cfg, nil
}
