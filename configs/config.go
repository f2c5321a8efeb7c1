package configs

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App struct {
		Name      string `koanf:"name"`
		HTTPAddr  string `koanf:"http_addr"`
		ClientURL string `koanf:"client_url"`
		LogLevel  string `koanf:"log_level"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Mongo struct {
		URI      string `koanf:"uri"`
		Database string `koanf:"database"`
	} `koanf:"mongo"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
	} `koanf:"redis"`

	Idempotency struct {
		TTL time.Duration `koanf:"ttl"`
	} `koanf:"idempotency"`

	Stripe struct {
		SecretKey     string `koanf:"secret_key"`
		WebhookSecret string `koanf:"webhook_secret"`
		Currency      string `koanf:"currency"`
	} `koanf:"stripe"`

	Google struct {
		ClientID     string `koanf:"client_id"`
		ClientSecret string `koanf:"client_secret"`
		RedirectURL  string `koanf:"redirect_url"`
	} `koanf:"google"`

	Session struct {
		Secret     string        `koanf:"secret"`
		CookieName string        `koanf:"cookie_name"`
		Issuer     string        `koanf:"issuer"`
		TTL        time.Duration `koanf:"ttl"`
	} `koanf:"session"`

	SMTP struct {
		Host     string `koanf:"host"`
		Port     int    `koanf:"port"`
		Username string `koanf:"username"`
		Password string `koanf:"password"`
		From     string `koanf:"from"`
	} `koanf:"smtp"`

	Admin struct {
		OperatorEmail string `koanf:"operator_email"`
	} `koanf:"admin"`
}

func Load(pathDir, envName string) (Config, error) {
	k := koanf.New(".")
	// 1) base
	if err := k.Load(file.Provider(fmt.Sprintf("%s/base.yaml", pathDir)), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// 2) env override (dev/staging/prod). Optional: allow missing for local runs.
	_ = k.Load(file.Provider(fmt.Sprintf("%s/%s.yaml", pathDir, envName)), yaml.Parser())

	// 3) environment variables override (prefix STOREFRONT_, nested with __)
	// e.g. STOREFRONT_STRIPE__SECRET_KEY, STOREFRONT_MONGO__URI
	if err := k.Load(env.Provider("STOREFRONT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "STOREFRONT_")
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri required")
	}
	if c.Stripe.SecretKey == "" || c.Stripe.WebhookSecret == "" {
		return fmt.Errorf("stripe.secret_key and stripe.webhook_secret required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("session.secret required")
	}
	if c.Admin.OperatorEmail == "" {
		return fmt.Errorf("admin.operator_email required")
	}
	return nil
}
