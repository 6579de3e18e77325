package config

import (
	"github.com/spf13/viper"
)

// VAPIDConfig holds the application-server key pair and sender identity used
// to authorize deliveries against the push service.
type VAPIDConfig struct {
	PublicKey  string `mapstructure:"vapid_public_key"`
	PrivateKey string `mapstructure:"vapid_private_key"`
	Subject    string `mapstructure:"vapid_subject"`
}

// Complete reports whether every delivery credential is present. Broadcasts
// must not start without all three.
func (v VAPIDConfig) Complete() bool {
	return v.PublicKey != "" && v.PrivateKey != "" && v.Subject != ""
}

// Config is the full service configuration, read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	VAPID       VAPIDConfig
}

// Load reads the configuration from environment variables, applying local
// development defaults where it is safe to do so. VAPID credentials have no
// defaults on purpose: the broadcast job checks for them at invocation time.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "postgres://localhost:5432/ayah?sslmode=disable")

	cfg := &Config{
		Port:        v.GetString("PORT"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		VAPID: VAPIDConfig{
			PublicKey:  v.GetString("VAPID_PUBLIC_KEY"),
			PrivateKey: v.GetString("VAPID_PRIVATE_KEY"),
			Subject:    v.GetString("VAPID_SUBJECT"),
		},
	}
	return cfg, nil
}
