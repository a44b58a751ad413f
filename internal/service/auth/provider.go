package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/kjohnson/ytreport/pkg/errors"
)

// The report needs read access to catalog and analytics data and write
// access to the target spreadsheet.
var scopes = []string{
	"https://www.googleapis.com/auth/youtube.readonly",
	"https://www.googleapis.com/auth/yt-analytics.readonly",
	"https://www.googleapis.com/auth/spreadsheets",
}

// Provider owns the OAuth credential lifecycle: persisted token load,
// refresh, console consent when nothing usable exists, and persistence of
// whatever it obtains.
type Provider struct {
	config    *oauth2.Config
	tokenFile string
	logger    *zap.Logger
}

func NewProvider(credentialsFile, tokenFile string, logger *zap.Logger) (*Provider, error) {
	credBytes, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, errors.NewAuthError("unable to read credentials file", err)
	}

	config, err := google.ConfigFromJSON(credBytes, scopes...)
	if err != nil {
		return nil, errors.NewAuthError("unable to parse OAuth client credentials", err)
	}

	return &Provider{
		config:    config,
		tokenFile: tokenFile,
		logger:    logger,
	}, nil
}

// Client returns an authenticated HTTP client for the Google API services.
// Resolution order: persisted token, refresh of an expired token, console
// consent flow. Every obtained token is persisted for the next run.
func (p *Provider) Client(ctx context.Context) (*http.Client, error) {
	token, err := p.loadToken()
	if err != nil {
		p.logger.Warn("No usable token on disk, authorization required",
			zap.String("file", p.tokenFile))
		token, err = p.consent(ctx)
		if err != nil {
			return nil, err
		}
	}

	if !token.Valid() {
		token, err = p.refresh(ctx, token)
		if err != nil {
			return nil, err
		}
	}

	return p.config.Client(ctx, token), nil
}

// Authorize forces the console consent flow, used by the auth subcommand
// for first-run setup.
func (p *Provider) Authorize(ctx context.Context) error {
	_, err := p.consent(ctx)
	return err
}

func (p *Provider) refresh(ctx context.Context, token *oauth2.Token) (*oauth2.Token, error) {
	if token.RefreshToken == "" {
		p.logger.Warn("Expired token has no refresh token, authorization required")
		return p.consent(ctx)
	}

	fresh, err := p.config.TokenSource(ctx, token).Token()
	if err != nil {
		p.logger.Warn("Token refresh failed, authorization required", zap.Error(err))
		return p.consent(ctx)
	}

	if err := p.saveToken(fresh); err != nil {
		return nil, errors.NewAuthError("unable to save refreshed token", err)
	}

	p.logger.Info("Access token refreshed", zap.Time("expiry", fresh.Expiry))
	return fresh, nil
}

func (p *Provider) consent(ctx context.Context) (*oauth2.Token, error) {
	authURL := p.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	fmt.Println("\n=== Google API Authorization ===")
	fmt.Println("Go to the following link in your browser:")
	fmt.Println(authURL)
	fmt.Println("\nAfter authorization, enter the code here:")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, errors.NewAuthError("unable to read authorization code", err)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.NewAuthError("unable to exchange authorization code", err)
	}

	if err := p.saveToken(token); err != nil {
		return nil, errors.NewAuthError("unable to save token", err)
	}

	p.logger.Info("Authorization complete", zap.String("token_file", p.tokenFile))
	return token, nil
}

func (p *Provider) loadToken() (*oauth2.Token, error) {
	f, err := os.Open(p.tokenFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(token)
	return token, err
}

func (p *Provider) saveToken(token *oauth2.Token) error {
	f, err := os.OpenFile(p.tokenFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
