package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/rohits-web03/goalai/internal/config"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleOAuth runs the authorization-code flow against Google.
type GoogleOAuth struct {
	conf        *oauth2.Config
	userInfoURL string
}

func NewGoogleOAuth(cfg config.GoogleConfig) *GoogleOAuth {
	return &GoogleOAuth{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		userInfoURL: googleUserInfoURL,
	}
}

func (g *GoogleOAuth) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state)
}

// Exchange trades the callback code for a token and fetches the profile.
func (g *GoogleOAuth) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange: %w", err)
	}

	client := g.conf.Client(ctx, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get user info: status %d", resp.StatusCode)
	}

	var user GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("parse user info: %w", err)
	}
	if user.Email == "" || !user.VerifiedEmail {
		return nil, fmt.Errorf("google account has no verified email")
	}
	return &user, nil
}
