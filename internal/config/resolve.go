package config

import (
	"fmt"
	"os"
	"strings"
)

// ClientConfig contains resolved API client settings. Empty Username
// and Token mean anonymous access.
type ClientConfig struct {
	BaseURL  string
	Username string
	Token    string
	Insecure bool
}

// ResolveClientConfig resolves connection settings, lowest precedence
// first: stored profile, environment, then the given flag overrides.
func ResolveClientConfig(urlOverride, usernameOverride, tokenOverride string) (ClientConfig, error) {
	var cfg ClientConfig

	if account, err := LoadAccount(); err == nil {
		cfg.BaseURL = account.BaseURL
		cfg.Username = account.Username
		cfg.Token = account.Token
		cfg.Insecure = account.Insecure
	}

	if envURL := strings.TrimSpace(os.Getenv(envBaseURL)); envURL != "" {
		cfg.BaseURL = strings.TrimSuffix(envURL, "/")
	}
	if envUser := strings.TrimSpace(os.Getenv(envUsername)); envUser != "" {
		cfg.Username = envUser
	}
	if envTok := strings.TrimSpace(os.Getenv(envToken)); envTok != "" {
		cfg.Token = envTok
	}

	if urlOverride != "" {
		cfg.BaseURL = strings.TrimSuffix(urlOverride, "/")
	}
	if usernameOverride != "" {
		cfg.Username = usernameOverride
	}
	if tokenOverride != "" {
		cfg.Token = tokenOverride
	}

	if cfg.BaseURL == "" {
		return ClientConfig{}, fmt.Errorf("server URL not configured (set %s, run 'szuru auth login', or pass --url)", envBaseURL)
	}
	if (cfg.Username == "") != (cfg.Token == "") {
		return ClientConfig{}, fmt.Errorf("set both a username and a token, or neither for anonymous access")
	}

	return cfg, nil
}

// Anonymous reports whether the resolved settings carry no
// credentials.
func (c ClientConfig) Anonymous() bool {
	return c.Username == "" || c.Token == ""
}
