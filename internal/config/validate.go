package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Run.DaysThreshold < 0 {
		errs = append(errs, "run.days_threshold must be >= 0")
	}
	if cfg.Run.LookbackDays < 0 {
		errs = append(errs, "run.lookback_days must be >= 0")
	}

	for i, kw := range cfg.Filters.TitleKeywords {
		if strings.TrimSpace(kw) == "" {
			errs = append(errs, fmt.Sprintf("filters.title_keywords[%d] cannot be empty", i))
		}
	}
	for i, kw := range cfg.Filters.LocationKeywords {
		if strings.TrimSpace(kw) == "" {
			errs = append(errs, fmt.Sprintf("filters.location_keywords[%d] cannot be empty", i))
		}
	}

	seen := map[string]bool{}
	for i, s := range cfg.Sources {
		if strings.TrimSpace(s.ID) == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].id is required", i))
			continue
		}
		if seen[s.ID] {
			errs = append(errs, fmt.Sprintf("sources[%d].id %q is duplicated", i, s.ID))
		}
		seen[s.ID] = true
		if strings.TrimSpace(s.URL) == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].url is required", i))
		}
		if strings.TrimSpace(s.Parser) == "" {
			errs = append(errs, fmt.Sprintf("sources[%d].parser is required", i))
		}
	}

	if cfg.Email.Enabled {
		if strings.TrimSpace(cfg.Email.IMAPHost) == "" {
			errs = append(errs, "email.imap_host is required when email is enabled")
		}
		if strings.TrimSpace(cfg.Email.Username) == "" {
			errs = append(errs, "email.username is required when email is enabled")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
