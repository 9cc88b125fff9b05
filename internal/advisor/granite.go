package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/j-veylop/gig-worker-hub/internal/config"
	"github.com/j-veylop/gig-worker-hub/internal/logger"
)

const (
	generationPath    = "/ml/v1/text/generation"
	generationVersion = "2023-05-29"
	iamGrantType      = "urn:ibm:params:oauth:grant-type:apikey"

	// tokenRefreshBuffer renews the bearer token this long before it expires.
	tokenRefreshBuffer = 5 * time.Minute
)

// Parameters are the decoding settings sent with every generation request.
type Parameters struct {
	DecodingMethod    string  `json:"decoding_method"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
}

// DefaultParameters are greedy decoding with a long completion budget.
var DefaultParameters = Parameters{
	DecodingMethod:    "greedy",
	MaxNewTokens:      1000,
	Temperature:       0.3,
	RepetitionPenalty: 1.2,
}

type generationRequest struct {
	Input      string     `json:"input"`
	ModelID    string     `json:"model_id"`
	ProjectID  string     `json:"project_id"`
	Parameters Parameters `json:"parameters"`
}

type generationResponse struct {
	ModelID string `json:"model_id"`
	Results []struct {
		GeneratedText   string `json:"generated_text"`
		GeneratedTokens int    `json:"generated_token_count"`
		InputTokens     int    `json:"input_token_count"`
		StopReason      string `json:"stop_reason"`
	} `json:"results"`
}

type apiErrorResponse struct {
	Errors []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// tokenResponse is the IAM identity token response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Expiration  int64  `json:"expiration"`
}

// cachedToken is a bearer token with its expiry.
type cachedToken struct {
	AccessToken string
	ExpiresAt   time.Time
}

// IsValid checks if the cached token is still usable.
func (t *cachedToken) IsValid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return time.Now().Add(tokenRefreshBuffer).Before(t.ExpiresAt)
}

// Granite is a Generator backed by the watsonx.ai text generation API.
type Granite struct {
	creds  config.GraniteCredentials
	params Parameters
	client *http.Client

	mu    sync.Mutex
	token *cachedToken
	group singleflight.Group
}

// Option configures a Granite client.
type Option func(*Granite)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Granite) {
		if c != nil {
			g.client = c
		}
	}
}

// WithParameters overrides the decoding parameters.
func WithParameters(p Parameters) Option {
	return func(g *Granite) { g.params = p }
}

// NewGranite builds a client. It returns ErrMissingCredentials when the API
// key, service URL or project ID is empty.
func NewGranite(creds config.GraniteCredentials, opts ...Option) (*Granite, error) {
	if creds.APIKey == "" || creds.URL == "" || creds.ProjectID == "" {
		return nil, ErrMissingCredentials
	}
	if creds.ModelID == "" {
		creds.ModelID = config.DefaultModelID
	}
	if creds.IAMURL == "" {
		creds.IAMURL = config.DefaultIAMURL
	}
	if creds.Timeout <= 0 {
		creds.Timeout = config.DefaultAdvisorTimeout
	}
	creds.URL = strings.TrimRight(creds.URL, "/")

	g := &Granite{
		creds:  creds,
		params: DefaultParameters,
		client: &http.Client{Timeout: creds.Timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ModelID returns the model used for generation.
func (g *Granite) ModelID() string {
	return g.creds.ModelID
}

// Generate sends prompt to the model and returns the trimmed completion.
func (g *Granite) Generate(ctx context.Context, prompt string) (string, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(generationRequest{
		Input:      prompt,
		ModelID:    g.creds.ModelID,
		ProjectID:  g.creds.ProjectID,
		Parameters: g.params,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode generation request: %w", err)
	}

	endpoint := g.creds.URL + generationPath + "?version=" + generationVersion
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create generation request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, status, err := g.do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	if status == http.StatusUnauthorized {
		g.invalidateToken()
		return "", fmt.Errorf("unauthorized: access token may be expired")
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("generation request failed (status %d): %s", status, apiErrorMessage(body))
	}

	var resp generationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse generation response: %w", err)
	}
	if len(resp.Results) == 0 {
		return "", fmt.Errorf("generation response contained no results")
	}

	return strings.TrimSpace(resp.Results[0].GeneratedText), nil
}

// accessToken returns a valid bearer token, exchanging the API key when the
// cached one is missing or about to expire. Concurrent callers share one
// exchange. The exchange is detached from the caller that started it and
// bounded by the client timeout; each caller stops waiting when its own
// context ends.
func (g *Granite) accessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	if g.token.IsValid() {
		token := g.token.AccessToken
		g.mu.Unlock()
		return token, nil
	}
	g.mu.Unlock()

	ch := g.group.DoChan("iam", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.creds.Timeout)
		defer cancel()

		tok, err := g.fetchToken(fetchCtx)
		if err != nil {
			return nil, err
		}
		g.mu.Lock()
		g.token = tok
		g.mu.Unlock()
		return tok.AccessToken, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (g *Granite) invalidateToken() {
	g.mu.Lock()
	g.token = nil
	g.mu.Unlock()
}

// fetchToken exchanges the API key for an IAM bearer token.
func (g *Granite) fetchToken(ctx context.Context) (*cachedToken, error) {
	data := url.Values{}
	data.Set("grant_type", iamGrantType)
	data.Set("apikey", g.creds.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.creds.IAMURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, status, err := g.do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed (status %d): %s", status, apiErrorMessage(body))
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response contained no access token")
	}

	expiresAt := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	if tokenResp.Expiration > 0 {
		expiresAt = time.Unix(tokenResp.Expiration, 0)
	}

	logger.Debug("obtained IAM token", "expires_at", expiresAt)
	return &cachedToken{AccessToken: tokenResp.AccessToken, ExpiresAt: expiresAt}, nil
}

func (g *Granite) do(req *http.Request) ([]byte, int, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// apiErrorMessage extracts the first error message of a failed response,
// falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && len(apiErr.Errors) > 0 {
		return apiErr.Errors[0].Message
	}
	var iamErr struct {
		ErrorMessage string `json:"errorMessage"`
	}
	if err := json.Unmarshal(body, &iamErr); err == nil && iamErr.ErrorMessage != "" {
		return iamErr.ErrorMessage
	}
	return strings.TrimSpace(string(body))
}
