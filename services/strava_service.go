// File: /services/strava_service.go
package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"rct-connect-api/config"
	"rct-connect-api/models"
)

const stravaAPIBase = "https://www.strava.com"

// StravaService wraps the Strava OAuth and activity endpoints. Every call is
// an inline outbound request with its own timeout; a slow Strava stalls only
// the request that triggered it.
type StravaService struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
	baseURL      string
}

type StravaTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"`
	Athlete      struct {
		ID        int64  `json:"id"`
		FirstName string `json:"firstname"`
		LastName  string `json:"lastname"`
	} `json:"athlete"`
}

func NewStravaService(cfg *config.Config) *StravaService {
	return &StravaService{
		clientID:     cfg.StravaClientID,
		clientSecret: cfg.StravaClientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      stravaAPIBase,
	}
}

// SetBaseURL overrides the API host. Used by tests.
func (s *StravaService) SetBaseURL(base string) {
	s.baseURL = base
}

// ExchangeCode trades an OAuth authorization code for tokens.
func (s *StravaService) ExchangeCode(code string) (*StravaTokenResponse, error) {
	return s.tokenRequest(url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	})
}

// RefreshToken trades a refresh token for a fresh access token.
func (s *StravaService) RefreshToken(refreshToken string) (*StravaTokenResponse, error) {
	return s.tokenRequest(url.Values{
		"client_id":     {s.clientID},
		"client_secret": {s.clientSecret},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	})
}

func (s *StravaService) tokenRequest(form url.Values) (*StravaTokenResponse, error) {
	resp, err := s.httpClient.PostForm(s.baseURL+"/oauth/token", form)
	if err != nil {
		return nil, fmt.Errorf("strava token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("strava token request failed with status %d", resp.StatusCode)
	}

	var tokenResp StravaTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode strava token response: %w", err)
	}

	return &tokenResp, nil
}

// GetActivities fetches the athlete's recent activities with the given
// access token.
func (s *StravaService) GetActivities(accessToken string, perPage int) ([]models.StravaActivity, error) {
	if perPage < 1 || perPage > 100 {
		perPage = 30
	}

	req, err := http.NewRequest(http.MethodGet,
		s.baseURL+"/api/v3/athlete/activities?per_page="+strconv.Itoa(perPage), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strava activities request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("strava activities request failed with status %d", resp.StatusCode)
	}

	var activities []models.StravaActivity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("failed to decode strava activities: %w", err)
	}

	return activities, nil
}

// AthleteName joins the first and last name from a token response.
func (t *StravaTokenResponse) AthleteName() string {
	return strings.TrimSpace(t.Athlete.FirstName + " " + t.Athlete.LastName)
}
