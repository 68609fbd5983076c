package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type MailConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	From               string `yaml:"from"`
	SendTimeoutSeconds int    `yaml:"send_timeout_seconds"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	FrontendURL string `yaml:"frontend_url"`
	AdminEmail  string `yaml:"admin_email"`
}

type StockNotifyConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type OTPConfig struct {
	TTLSeconds      int `yaml:"ttl_seconds"`
	CooldownSeconds int `yaml:"cooldown_seconds"`
	MaxAttempts     int `yaml:"max_attempts"`
}

type Config struct {
	DB          DBConfig          `yaml:"db"`
	Redis       RedisConfig       `yaml:"redis"`
	MQ          MQConfig          `yaml:"mq"`
	JWT         JWTConfig         `yaml:"jwt"`
	Server      ServerConfig      `yaml:"server"`
	Mail        MailConfig        `yaml:"mail"`
	App         AppConfig         `yaml:"app"`
	StockNotify StockNotifyConfig `yaml:"stock_notify"`
	OTP         OTPConfig         `yaml:"otp"`
}

func Load() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode %s: %v", path, err)
	}

	overrideFromEnv(&cfg)
	applyDefaults(&cfg)

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.Mail.Host = host
	}
	if port := os.Getenv("SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Mail.Port = p
		}
	}
	if user := os.Getenv("SMTP_USER"); user != "" {
		cfg.Mail.User = user
	}
	if password := os.Getenv("SMTP_PASSWORD"); password != "" {
		cfg.Mail.Password = password
	}
	if from := os.Getenv("SMTP_FROM"); from != "" {
		cfg.Mail.From = from
	}

	if url := os.Getenv("FRONTEND_URL"); url != "" {
		cfg.App.FrontendURL = url
	}
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		cfg.App.AdminEmail = email
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Mail.SendTimeoutSeconds <= 0 {
		cfg.Mail.SendTimeoutSeconds = 10
	}
	if cfg.StockNotify.Concurrency <= 0 {
		cfg.StockNotify.Concurrency = 4
	}
	if cfg.OTP.TTLSeconds <= 0 {
		cfg.OTP.TTLSeconds = 300
	}
	if cfg.OTP.CooldownSeconds <= 0 {
		cfg.OTP.CooldownSeconds = 60
	}
	if cfg.OTP.MaxAttempts <= 0 {
		cfg.OTP.MaxAttempts = 3
	}
	if cfg.App.Name == "" {
		cfg.App.Name = "EcoTrade"
	}
	if cfg.App.FrontendURL == "" {
		cfg.App.FrontendURL = "http://localhost:5173"
	}
}
