package validations

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"backend-service/config"
	"backend-service/utils"
)

// ValidateConfig checks the loaded configuration for values that parse but
// cannot work. All problems are reported together.
func ValidateConfig(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is required")
	}

	var errs []error
	if cfg.Port < 0 || cfg.Port > config.MaxPort {
		errs = append(errs, fmt.Errorf("port %d is out of range 0-%d", cfg.Port, config.MaxPort))
	}
	if cfg.BodyLimit <= 0 {
		errs = append(errs, errors.New("body limit must be a positive integer"))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, errors.New("idle timeout must be positive"))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if _, err := utils.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateOrigins(cfg.AllowedOrigins); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateOrigins accepts either a lone "*" or a list of absolute http(s) origins
func ValidateOrigins(origins []string) error {
	if len(origins) == 0 {
		return errors.New("at least one CORS origin is required")
	}
	for i, origin := range origins {
		if origin == "*" {
			if len(origins) > 1 {
				return errors.New("wildcard CORS origin cannot be combined with explicit origins")
			}
			continue
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("CORS origin at index %d (%q) must be an absolute http(s) URL", i, origin)
		}
		if strings.TrimSuffix(u.Path, "/") != "" || u.RawQuery != "" || u.Fragment != "" {
			return fmt.Errorf("CORS origin at index %d (%q) must not contain a path, query or fragment", i, origin)
		}
	}
	return nil
}
