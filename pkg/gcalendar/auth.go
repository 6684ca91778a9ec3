package gcalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// EnsureAuthenticated establishes the Calendar API session if it is not
// already established. It is idempotent and safe to call on every request:
// after the first successful acquisition it only checks the cached session.
func (c *Client) EnsureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return nil
	}

	svc, err := c.buildService(ctx)
	if err != nil {
		return err
	}
	c.svc = svc
	return nil
}

// service returns the authenticated Calendar service, acquiring it lazily.
func (c *Client) service(ctx context.Context) (*calendar.Service, error) {
	if err := c.EnsureAuthenticated(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.svc, nil
}

// buildService turns the configured credentials into a Calendar service.
// Service Account JSON is tried first; OAuth Desktop App credentials need a
// previously saved token file (see scripts/gcal-auth).
func (c *Client) buildService(ctx context.Context) (*calendar.Service, error) {
	data, err := os.ReadFile(c.credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if config, jwtErr := google.JWTConfigFromJSON(data, calendar.CalendarScope); jwtErr == nil {
		svc, svcErr := calendar.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx)))
		if svcErr != nil {
			return nil, fmt.Errorf("failed to create calendar service: %w", svcErr)
		}
		return svc, nil
	}

	oauthConfig, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unsupported credentials format: %w", err)
	}

	tokenData, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("credentials are OAuth Desktop type but no token file at %q: run scripts/gcal-auth first", c.tokenPath)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(tokenData, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	svc, err := calendar.NewService(ctx, option.WithTokenSource(oauthConfig.TokenSource(ctx, &tok)))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service from OAuth token: %w", err)
	}
	return svc, nil
}
