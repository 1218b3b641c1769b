// Package catalog is a small client for the TMDB v3 movie API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultSiteURL      = "https://www.themoviedb.org"

	defaultTimeout = 10 * time.Second
	defaultRPS     = 20.0
	defaultBurst   = 10

	// Longest error body kept in a StatusError.
	maxErrorBody = 256
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL      string
	ImageBaseURL string
	Token        string
	Language     string
	Timeout      time.Duration
	RPS          float64
	Burst        int
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Client is a rate-limited TMDB client.
type Client struct {
	baseURL      string
	imageBaseURL string
	token        string
	language     string
	http         *http.Client
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// New creates a new catalog client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.ImageBaseURL == "" {
		opts.ImageBaseURL = DefaultImageBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RPS <= 0 {
		opts.RPS = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(opts.ImageBaseURL, "/"),
		token:        opts.Token,
		language:     opts.Language,
		http:         opts.HTTPClient,
		limiter:      rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
		logger:       opts.Logger,
	}
}

// ListGenres returns the catalog's movie genres in the order the API lists them.
func (c *Client) ListGenres(ctx context.Context) ([]Genre, error) {
	var resp genreListResponse
	if err := c.getJSON(ctx, "/genre/movie/list", nil, &resp); err != nil {
		return nil, wrapError("genres", 0, err)
	}
	return resp.Genres, nil
}

// SearchOrDiscover fetches one page of movies. An empty term runs a discover
// query; otherwise a text search. A non-zero genre is passed through as
// with_genres on both endpoints.
func (c *Client) SearchOrDiscover(ctx context.Context, term string, page, genre int) (ResultPage, error) {
	if page < 1 {
		page = 1
	}

	op, path := "discover", "/discover/movie"
	query := url.Values{}
	if term != "" {
		op, path = "search", "/search/movie"
		query.Set("query", term)
	}
	query.Set("page", strconv.Itoa(page))
	if genre != 0 {
		query.Set("with_genres", strconv.Itoa(genre))
	}

	var resp ResultPage
	if err := c.getJSON(ctx, path, query, &resp); err != nil {
		return ResultPage{}, wrapError(op, 0, err)
	}
	if resp.Movies == nil {
		resp.Movies = []MovieSummary{}
	}
	return resp, nil
}

// GetDetail fetches a single movie. Unknown ids fail with ErrNotFound.
func (c *Client) GetDetail(ctx context.Context, id int) (MovieDetail, error) {
	if id <= 0 {
		return MovieDetail{}, wrapError("detail", id, ErrNotFound)
	}

	var detail MovieDetail
	if err := c.getJSON(ctx, "/movie/"+strconv.Itoa(id), nil, &detail); err != nil {
		return MovieDetail{}, wrapError("detail", id, err)
	}
	return detail, nil
}

// PosterURL returns the image CDN URL for a poster path, or "" when the movie has none.
func (c *Client) PosterURL(posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return c.imageBaseURL + "/" + strings.TrimLeft(posterPath, "/")
}

// PageURL returns the public TMDB page of a movie.
func PageURL(id int) string {
	return fmt.Sprintf("%s/movie/%d", DefaultSiteURL, id)
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// doRequest executes a GET with rate limiting and maps the status code.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	if c.language != "" {
		query.Set("language", c.language)
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("catalog request", "path", path, "query", query.Encode())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		msg := string(body)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: msg}
	}
}
