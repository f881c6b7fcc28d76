package cmd

import (
	"fmt"
	"strings"

	szurubooru "github.com/rzk3/szurubooru-client"
	"github.com/rzk3/szurubooru-client/internal/config"
)

// newAPIClient builds a client from the resolved configuration,
// applying the global flag overrides.
func newAPIClient() (*szurubooru.Client, error) {
	cfg, err := config.ResolveClientConfig(flags.URL, flags.Username, flags.Token)
	if err != nil {
		return nil, err
	}

	opts := []szurubooru.Option{
		szurubooru.WithUserAgent(fmt.Sprintf("szuru/%s", version)),
	}
	if flags.Timeout > 0 {
		opts = append(opts, szurubooru.WithTimeout(flags.Timeout))
	}
	if cfg.Insecure || flags.Insecure {
		opts = append(opts, szurubooru.WithInsecureTLS())
	}

	if cfg.Anonymous() {
		return szurubooru.NewAnonymous(cfg.BaseURL, opts...)
	}
	return szurubooru.NewWithToken(cfg.BaseURL, cfg.Username, cfg.Token, opts...)
}

// clientForAccount builds a client directly from an account, bypassing
// profile resolution. Used by auth login to verify credentials before
// they are stored.
func clientForAccount(account config.Account) (*szurubooru.Client, error) {
	opts := []szurubooru.Option{
		szurubooru.WithUserAgent(fmt.Sprintf("szuru/%s", version)),
	}
	if flags.Timeout > 0 {
		opts = append(opts, szurubooru.WithTimeout(flags.Timeout))
	}
	if account.Insecure || flags.Insecure {
		opts = append(opts, szurubooru.WithInsecureTLS())
	}
	if account.Anonymous() {
		return szurubooru.NewAnonymous(account.BaseURL, opts...)
	}
	return szurubooru.NewWithToken(account.BaseURL, account.Username, account.Token, opts...)
}

// newRequest starts a request with the global field selection and
// paging flags applied.
func newRequest(client *szurubooru.Client) *szurubooru.Request {
	req := client.Request()
	if flags.Fields != "" {
		var fields []string
		for _, f := range strings.Split(flags.Fields, ",") {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		req = req.WithFields(fields...)
	}
	if flags.Limit >= 0 {
		req = req.WithLimit(flags.Limit)
	}
	if flags.Offset >= 0 {
		req = req.WithOffset(flags.Offset)
	}
	return req
}
