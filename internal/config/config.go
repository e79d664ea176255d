package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Source is one configured job board. Parser routes to the matching
// fetcher; unknown kinds are skipped with a warning, never a fatal error.
type Source struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	URL     string `yaml:"url"`
	Parser  string `yaml:"parser"`
	Enabled bool   `yaml:"enabled"`
}

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
		Port    int    `yaml:"port"`
	} `yaml:"app"`

	Run struct {
		DaysThreshold int `yaml:"days_threshold"`
		LookbackDays  int `yaml:"lookback_days"`
	} `yaml:"run"`

	Filters struct {
		TitleKeywords    []string `yaml:"title_keywords"`
		LocationKeywords []string `yaml:"location_keywords"`
	} `yaml:"filters"`

	Email struct {
		Enabled  bool   `yaml:"enabled"`
		IMAPHost string `yaml:"imap_host"`
		IMAPPort int    `yaml:"imap_port"`
		Username string `yaml:"username"`
		Mailbox  string `yaml:"mailbox"`
	} `yaml:"email"`

	// URLFilters maps a parser kind to a query parameter appended to that
	// board's URL at load time (server-side pre-filtering where supported).
	URLFilters map[string]string `yaml:"url_filters"`

	Sources []Source `yaml:"sources"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

// Default returns a usable config for when no file exists on disk.
func Default() Config {
	var cfg Config
	applyDefaults(&cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "."
	}
	if cfg.App.Port == 0 {
		cfg.App.Port = 38471
	}
	if cfg.Run.DaysThreshold == 0 {
		cfg.Run.DaysThreshold = 7
	}
	if cfg.Run.LookbackDays == 0 {
		cfg.Run.LookbackDays = 7
	}
	if cfg.Email.IMAPPort == 0 {
		cfg.Email.IMAPPort = 993
	}
	if cfg.Email.Mailbox == "" {
		cfg.Email.Mailbox = "INBOX"
	}
}
