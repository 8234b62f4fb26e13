package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Analysis struct {
		Tickers    []string `yaml:"tickers"`
		Years      int      `yaml:"years"`
		Commission float64  `yaml:"commission"`
		Indicators []string `yaml:"indicators"` // empty = all
	} `yaml:"analysis"`
	Providers struct {
		FinancialDatasetsKey string `yaml:"financial_datasets_key"`
	} `yaml:"providers"`
	Anthropic struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"anthropic"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		AnalysisCron string `yaml:"analysis_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Defaults are seeded before the decode, so an explicit value in the
// file always wins, including commission: 0.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Analysis.Tickers = []string{"AAPL"}
	cfg.Analysis.Years = 3
	cfg.Analysis.Commission = 0.001
	cfg.Schedule.AnalysisCron = "0 0 22 * * 1-5"
	cfg.Database.SQLitePath = "data/equitylens.db"

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Analysis.Tickers = splitTickers(v)
	}
	if v := os.Getenv("ANALYSIS_YEARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.Years = n
		}
	}
	if v := os.Getenv("FINANCIAL_DATASETS_API_KEY"); v != "" {
		cfg.Providers.FinancialDatasetsKey = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" {
		cfg.Anthropic.Model = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ANALYSIS_CRON"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	return cfg, nil
}

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Validate checks constraints beyond simple defaults.
func (c *Config) Validate() error {
	if len(c.Analysis.Tickers) == 0 {
		return fmt.Errorf("analysis.tickers is required")
	}
	if c.Analysis.Years < 1 {
		return fmt.Errorf("analysis.years must be at least 1")
	}
	if c.Analysis.Commission < 0 || c.Analysis.Commission >= 1 {
		return fmt.Errorf("analysis.commission must be in [0, 1)")
	}
	if c.Telegram.BotToken != "" && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required when bot_token is set")
	}
	return nil
}

// ValidateWatch checks the extra fields watch mode needs.
func (c *Config) ValidateWatch() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required in watch mode")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required in watch mode")
	}
	return nil
}
