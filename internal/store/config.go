package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"llm-trade-journal/internal/types"
)

type Config struct {
	Timezone string `yaml:"timezone" env:"TRADER_TIMEZONE"`
	LogDir   string `yaml:"log_dir" env:"TRADER_LOG_DIR"`
	// Days after which JSONL day files are gzip-compressed; 0 disables.
	LogRetentionDays int `yaml:"log_retention_days" env:"TRADER_LOG_RETENTION_DAYS"`

	Risk struct {
		MaxLossPerTrade float64 `yaml:"max_loss_per_trade" env:"MAX_LOSS_PER_TRADE"`
		MaxLossPerDay   float64 `yaml:"max_loss_per_day" env:"MAX_LOSS_PER_DAY"`
		TradingCapital  float64 `yaml:"trading_capital" env:"TRADING_CAPITAL"`
		MaxRiskPct      float64 `yaml:"max_risk_pct" env:"MAX_RISK_PCT"`
	} `yaml:"risk"`

	LLM struct {
		Provider    string        `yaml:"provider" env:"LLM_PROVIDER"`
		Model       string        `yaml:"model" env:"LLM_MODEL"`
		MaxTokens   int           `yaml:"max_tokens" env:"LLM_MAX_TOKENS"`
		Temperature float64       `yaml:"temperature"`
		System      string        `yaml:"system"`
		Endpoint    string        `yaml:"endpoint" env:"LLM_ENDPOINT"`
		Timeout     time.Duration `yaml:"timeout" env:"LLM_TIMEOUT"`
	} `yaml:"llm"`

	Ledger struct {
		Driver string `yaml:"driver" env:"LEDGER_DRIVER"`
		Path   string `yaml:"path" env:"LEDGER_PATH"`
	} `yaml:"ledger"`

	Telegram struct {
		Mode string `yaml:"mode" env:"TELEGRAM_MODE"`
		// Chat that receives the scheduled daily summary; 0 disables the push.
		SummaryChatID  int64         `yaml:"summary_chat_id" env:"TELEGRAM_SUMMARY_CHAT_ID"`
		MessageTimeout time.Duration `yaml:"message_timeout"`
	} `yaml:"telegram"`

	Server struct {
		Port          int    `yaml:"port" env:"PORT"`
		PublicURL     string `yaml:"public_url" env:"RENDER_EXTERNAL_URL"`
		WebhookPath   string `yaml:"webhook_path"`
		WebhookSecret string `yaml:"-" env:"TELEGRAM_WEBHOOK_SECRET"`
	} `yaml:"server"`

	EOD struct {
		Enabled  bool   `yaml:"enabled" env:"EOD_ENABLED"`
		Schedule string `yaml:"schedule" env:"EOD_SCHEDULE"`
	} `yaml:"eod"`

	Secrets struct {
		TelegramToken string `yaml:"-" env:"TELEGRAM_BOT_TOKEN"`
		GeminiAPIKey  string `yaml:"-" env:"GEMINI_API_KEY"`
		ClaudeAPIKey  string `yaml:"-" env:"CLAUDE_API_KEY"`
		OpenAIAPIKey  string `yaml:"-" env:"OPENAI_API_KEY"`
	} `yaml:"-"`
}

// defaultModels is the model used per provider when llm.model is unset.
var defaultModels = map[string]string{
	"GEMINI": "gemini-2.5-flash",
	"CLAUDE": "claude-sonnet-4-5",
	"OPENAI": "gpt-4o-mini",
}

// Default returns the configuration used when no file or environment overrides exist.
func Default() *Config {
	c := &Config{
		Timezone: "Asia/Kolkata",
		LogDir:   "logs",
	}
	c.Risk.MaxLossPerTrade = -2000
	c.Risk.MaxLossPerDay = -5000
	c.Risk.TradingCapital = 100000
	c.Risk.MaxRiskPct = 2.0
	c.LLM.Provider = "GEMINI"
	c.LLM.MaxTokens = 1000
	c.LLM.Timeout = 30 * time.Second
	c.Ledger.Driver = "SQLITE"
	c.Ledger.Path = "trade_journal.db"
	c.Telegram.Mode = "POLLING"
	c.Telegram.MessageTimeout = 60 * time.Second
	c.Server.Port = 10000
	c.Server.PublicURL = "http://localhost:10000"
	c.Server.WebhookPath = "/webhook"
	c.EOD.Enabled = true
	c.EOD.Schedule = "0 40 15 * * MON-FRI"
	return c
}

func (c *Config) Validate() error {
	if c.Risk.MaxLossPerTrade >= 0 {
		return fmt.Errorf("risk.max_loss_per_trade must be negative, got %.2f", c.Risk.MaxLossPerTrade)
	}
	if c.Risk.MaxLossPerDay >= 0 {
		return fmt.Errorf("risk.max_loss_per_day must be negative, got %.2f", c.Risk.MaxLossPerDay)
	}
	if c.Risk.TradingCapital <= 0 {
		return fmt.Errorf("risk.trading_capital must be positive, got %.2f", c.Risk.TradingCapital)
	}
	if c.Risk.MaxRiskPct <= 0 || c.Risk.MaxRiskPct > 100 {
		return fmt.Errorf("risk.max_risk_pct must be between 0-100, got %.2f", c.Risk.MaxRiskPct)
	}
	switch c.LLM.Provider {
	case "GEMINI", "CLAUDE", "OPENAI", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'GEMINI', 'CLAUDE', 'OPENAI' or 'NOOP'", c.LLM.Provider)
	}
	if c.LLM.MaxTokens <= 0 {
		return errors.New("llm.max_tokens must be positive")
	}
	if c.Ledger.Driver != "SQLITE" && c.Ledger.Driver != "JSONL" {
		return fmt.Errorf("invalid ledger.driver '%s': must be 'SQLITE' or 'JSONL'", c.Ledger.Driver)
	}
	if c.Telegram.Mode != "POLLING" && c.Telegram.Mode != "WEBHOOK" {
		return fmt.Errorf("invalid telegram.mode '%s': must be 'POLLING' or 'WEBHOOK'", c.Telegram.Mode)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return nil
}

// LoadConfig reads path over the defaults (a missing file is not an error),
// then applies environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	c := Default()

	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// LLMModel returns llm.model, or the default model of the configured provider
// when none is set.
func (c *Config) LLMModel() string {
	if c.LLM.Model != "" {
		return c.LLM.Model
	}
	return defaultModels[c.LLM.Provider]
}

// RiskLimits converts the configured thresholds to decimal limits.
func (c *Config) RiskLimits() types.RiskLimits {
	return types.RiskLimits{
		MaxLossPerTrade: decimal.NewFromFloat(c.Risk.MaxLossPerTrade),
		MaxLossPerDay:   decimal.NewFromFloat(c.Risk.MaxLossPerDay),
		TradingCapital:  decimal.NewFromFloat(c.Risk.TradingCapital),
		MaxRiskPct:      decimal.NewFromFloat(c.Risk.MaxRiskPct),
	}
}

// Location returns the configured timezone, falling back to IST.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("IST", 19800)
	}
	return loc
}
