package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OAuthProfile is what the provider's userinfo endpoint tells us about the
// token holder.
type OAuthProfile struct {
	Subject         string `json:"sub"`
	Username        string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"picture"`
}

// ProfileFetcher resolves a provider access token into the profile used to
// locate or create a local account. Failures stay opaque to the rest of
// the system; auth surfaces them as FAILED_AUTHENTICATION.
type ProfileFetcher interface {
	Fetch(ctx context.Context, providerToken string) (*OAuthProfile, error)
}

type httpProfileFetcher struct {
	client      *http.Client
	userinfoURL string
}

// NewHTTPProfileFetcher fetches profiles from an OIDC-style userinfo
// endpoint using the provider token as a bearer credential.
func NewHTTPProfileFetcher(userinfoURL string) ProfileFetcher {
	return &httpProfileFetcher{
		client:      &http.Client{Timeout: 10 * time.Second},
		userinfoURL: userinfoURL,
	}
}

func (f *httpProfileFetcher) Fetch(ctx context.Context, providerToken string) (*OAuthProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.userinfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+providerToken)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned %s", resp.Status)
	}

	var profile OAuthProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	if profile.Subject == "" {
		return nil, fmt.Errorf("userinfo response has no subject")
	}
	return &profile, nil
}
