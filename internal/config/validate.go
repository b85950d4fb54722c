package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.AdminKey) < 16 {
		return fmt.Errorf("auth.admin_key must be at least 16 characters (got %d)", len(c.Auth.AdminKey))
	}
	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("auth.session_secret must be at least 32 characters (got %d)", len(c.Auth.SessionSecret))
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be > 0 (got %v)", c.Auth.TokenTTL)
	}

	if !strings.HasPrefix(c.ContentStore.Endpoint, "http://") && !strings.HasPrefix(c.ContentStore.Endpoint, "https://") {
		return fmt.Errorf("content_store.endpoint must be an http(s) URL (got %q)", c.ContentStore.Endpoint)
	}
	if c.ContentStore.PageSize <= 0 || c.ContentStore.PageSize > 250 {
		return fmt.Errorf("content_store.page_size must be in 1..250 (got %d)", c.ContentStore.PageSize)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %v)", c.Cache.TTL)
	}

	if c.Preset.MaxHTMLChars <= 0 || c.Preset.MaxCSSChars <= 0 || c.Preset.MaxJSChars <= 0 {
		return fmt.Errorf("preset content ceilings must be > 0")
	}

	if c.Sandbox.LoadTimeout <= 0 {
		return fmt.Errorf("sandbox.load_timeout must be > 0 (got %v)", c.Sandbox.LoadTimeout)
	}

	return nil
}
