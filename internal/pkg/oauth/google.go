package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userInfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// ErrEmailNotVerified rejects Google accounts whose email Google has
// not verified; account provisioning is keyed by email address.
var ErrEmailNotVerified = errors.New("google account email is not verified")

// Profile is the slice of the Google userinfo payload this service
// consumes: the stable subject id and the verified email address.
type Profile struct {
	GoogleID string `json:"id"`
	Email    string `json:"email"`
}

type GoogleService interface {
	// GenerateState returns a random nonce binding the OAuth2 flow to
	// one client.
	GenerateState() (string, error)
	// RedirectURL builds the Google consent URL carrying the state.
	RedirectURL(state string) string
	// Exchange trades the callback code for a token.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// Profile fetches the signed-in account's profile.
	Profile(ctx context.Context, token *oauth2.Token) (Profile, error)
}

type GoogleServiceImpl struct {
	config *oauth2.Config
}

func NewGoogleService(clientID, clientSecret, redirectURL string, scopes []string) GoogleService {
	return &GoogleServiceImpl{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateState implements GoogleService.
func (g *GoogleServiceImpl) GenerateState() (string, error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(nonce), nil
}

// RedirectURL implements GoogleService.
func (g *GoogleServiceImpl) RedirectURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange implements GoogleService.
func (g *GoogleServiceImpl) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := g.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}
	return token, nil
}

// Profile implements GoogleService. Unverified email addresses are
// refused rather than provisioned.
func (g *GoogleServiceImpl) Profile(ctx context.Context, token *oauth2.Token) (Profile, error) {
	resp, err := g.config.Client(ctx, token).Get(userInfoEndpoint)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to fetch google userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var payload struct {
		Profile
		VerifiedEmail bool `json:"verified_email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Profile{}, fmt.Errorf("failed to decode google userinfo: %w", err)
	}
	if !payload.VerifiedEmail {
		return Profile{}, ErrEmailNotVerified
	}

	return payload.Profile, nil
}
