package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string  `mapstructure:"PORT"`
	DatabasePath    string  `mapstructure:"DATABASE_PATH"`
	JWTSecret       string  `mapstructure:"JWT_SECRET"`
	AdminUsername   string  `mapstructure:"ADMIN_USERNAME"`
	FrontendURL     string  `mapstructure:"FRONTEND_URL"`
	EnableCORS      bool    `mapstructure:"ENABLE_CORS"`
	RateLimitRPS    float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int     `mapstructure:"RATE_LIMIT_BURST"`
	VAPIDSubject    string  `mapstructure:"VAPID_SUBJECT"`
	VAPIDPublicKey  string  `mapstructure:"VAPID_PUBLIC_KEY"`
	VAPIDPrivateKey string  `mapstructure:"VAPID_PRIVATE_KEY"`
	SeedFile        string  `mapstructure:"SEED_FILE"`
	FirstEventID    string  `mapstructure:"FIRST_EVENT_ID"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "pena.db")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("FRONTEND_URL", "http://127.0.0.1:3000")
	viper.SetDefault("RATE_LIMIT_RPS", 20.0)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("FIRST_EVENT_ID", "default_event_id")

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ADMIN_USERNAME")
	viper.BindEnv("FRONTEND_URL")
	viper.BindEnv("ENABLE_CORS")
	viper.BindEnv("VAPID_SUBJECT")
	viper.BindEnv("VAPID_PUBLIC_KEY")
	viper.BindEnv("VAPID_PRIVATE_KEY")
	viper.BindEnv("SEED_FILE")
	viper.BindEnv("FIRST_EVENT_ID")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
