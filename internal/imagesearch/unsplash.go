// Package imagesearch finds stock photos for recipes on Unsplash.
package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

const requestTimeout = 10 * time.Second

var _ model.ImageFinder = (*Unsplash)(nil)

// Unsplash queries the Unsplash photo search API.
type Unsplash struct {
	endpoint   string
	accessKey  string
	httpClient *http.Client
}

// NewUnsplash creates a client for the search endpoint authenticated with accessKey.
func NewUnsplash(endpoint, accessKey string) *Unsplash {
	return &Unsplash{
		endpoint:   endpoint,
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// FindImage returns the regular-size URL of the first landscape photo
// matching query, or an empty string when nothing matched.
func (u *Unsplash) FindImage(ctx context.Context, query string) (string, error) {
	endpoint, err := url.Parse(u.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid image search endpoint: %w", err)
	}
	params := endpoint.Query()
	params.Set("query", query)
	params.Set("per_page", "1")
	params.Set("orientation", "landscape")
	params.Set("content_filter", "high")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("image search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode image search response: %w", err)
	}
	if len(body.Results) == 0 {
		return "", nil
	}
	return body.Results[0].URLs.Regular, nil
}
