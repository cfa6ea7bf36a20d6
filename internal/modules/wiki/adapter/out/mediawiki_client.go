package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wikigo/internal/modules/wiki/domain"
	wikiout "wikigo/internal/modules/wiki/port/out"
	apperrors "wikigo/internal/platform/errors"
)

const (
	maxBodyBytes = 8 << 20
	// Rendered HTML of the longest articles runs to tens of megabytes.
	maxParseBytes = 64 << 20
)

type MediaWikiOptions struct {
	APIURL    string
	RESTURL   string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

// MediaWikiClient talks to the action API and the REST summary endpoint.
type MediaWikiClient struct {
	apiURL    string
	restURL   string
	userAgent string
	http      *http.Client
}

func NewMediaWikiClient(opts MediaWikiOptions) wikiout.ArticleSource {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &MediaWikiClient{
		apiURL:    opts.APIURL,
		restURL:   strings.TrimRight(opts.RESTURL, "/"),
		userAgent: opts.UserAgent,
		http:      client,
	}
}

type restSummary struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	Thumbnail   *struct {
		Source string `json:"source"`
	} `json:"thumbnail"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (c *MediaWikiClient) FetchSummary(ctx context.Context, title string) (*domain.Summary, error) {
	endpoint := c.restURL + "/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))
	var payload restSummary
	status, err := c.getJSON(ctx, endpoint, maxBodyBytes, &payload)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || strings.Contains(payload.Type, "not_found") || payload.Title == "" {
		return nil, nil
	}
	summary := &domain.Summary{
		Title:       payload.Title,
		Description: payload.Description,
		Extract:     payload.Extract,
		PageURL:     payload.ContentURLs.Desktop.Page,
	}
	if payload.Thumbnail != nil {
		summary.ThumbnailURL = payload.Thumbnail.Source
	}
	return summary, nil
}

type queryPages struct {
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Missing bool   `json:"missing"`
			Invalid bool   `json:"invalid"`
			Links   []struct {
				Title string `json:"title"`
			} `json:"links"`
		} `json:"pages"`
		Random []struct {
			Title string `json:"title"`
		} `json:"random"`
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (c *MediaWikiClient) PageInfo(ctx context.Context, title string) (domain.PageInfo, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "info")
	params.Set("redirects", "1")
	params.Set("titles", title)
	var payload queryPages
	if err := c.query(ctx, params, &payload); err != nil {
		return domain.PageInfo{}, err
	}
	if len(payload.Query.Pages) == 0 {
		return domain.PageInfo{Title: title, Missing: true}, nil
	}
	page := payload.Query.Pages[0]
	return domain.PageInfo{Title: page.Title, Missing: page.Missing, Invalid: page.Invalid}, nil
}

func (c *MediaWikiClient) HasContentLinks(ctx context.Context, title string) (bool, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "links")
	params.Set("plnamespace", "0")
	params.Set("pllimit", "1")
	params.Set("titles", title)
	var payload queryPages
	if err := c.query(ctx, params, &payload); err != nil {
		return false, err
	}
	for _, page := range payload.Query.Pages {
		if len(page.Links) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (c *MediaWikiClient) RenderedHTML(ctx context.Context, title string) (string, string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("prop", "text")
	params.Set("redirects", "1")
	params.Set("page", title)
	var payload struct {
		Parse struct {
			Title string `json:"title"`
			Text  string `json:"text"`
		} `json:"parse"`
		Error *apiError `json:"error"`
	}
	status, err := c.getJSON(ctx, c.actionURL(params), maxParseBytes, &payload)
	if err != nil {
		return "", "", err
	}
	if status == http.StatusNotFound || (payload.Error != nil && payload.Error.Code == "missingtitle") {
		return "", "", fmt.Errorf("%w: article %q", apperrors.ErrNotFound, title)
	}
	if payload.Error != nil {
		return "", "", fmt.Errorf("%w: %s: %s", apperrors.ErrFetchFailed, payload.Error.Code, payload.Error.Info)
	}
	return payload.Parse.Title, payload.Parse.Text, nil
}

func (c *MediaWikiClient) RandomTitle(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "random")
	params.Set("rnnamespace", "0")
	params.Set("rnlimit", "1")
	var payload queryPages
	if err := c.query(ctx, params, &payload); err != nil {
		return "", err
	}
	if len(payload.Query.Random) == 0 {
		return "", fmt.Errorf("%w: random article", apperrors.ErrFetchFailed)
	}
	return payload.Query.Random[0].Title, nil
}

func (c *MediaWikiClient) CategoryMembers(ctx context.Context, category string) ([]string, error) {
	if !strings.HasPrefix(strings.ToLower(category), "category:") {
		category = "Category:" + category
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "categorymembers")
	params.Set("cmtitle", category)
	params.Set("cmnamespace", "0")
	params.Set("cmlimit", "200")
	var payload queryPages
	if err := c.query(ctx, params, &payload); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(payload.Query.CategoryMembers))
	for _, m := range payload.Query.CategoryMembers {
		titles = append(titles, m.Title)
	}
	return titles, nil
}

func (c *MediaWikiClient) query(ctx context.Context, params url.Values, out *queryPages) error {
	status, err := c.getJSON(ctx, c.actionURL(params), maxBodyBytes, out)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: api endpoint not found", apperrors.ErrFetchFailed)
	}
	if out.Error != nil {
		return fmt.Errorf("%w: %s: %s", apperrors.ErrFetchFailed, out.Error.Code, out.Error.Info)
	}
	return nil
}

func (c *MediaWikiClient) actionURL(params url.Values) string {
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("origin", "*")
	return c.apiURL + "?" + params.Encode()
}

// getJSON decodes a 2xx body of at most limit bytes into out. A 404 is
// reported through the status so callers can distinguish absence from
// failure. Larger bodies fail with ErrResponseTooLarge, which retrying
// cannot fix.
func (c *MediaWikiClient) getJSON(ctx context.Context, endpoint string, limit int64, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", apperrors.ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("%w: %s returned %d", apperrors.ErrFetchFailed, req.URL.Host, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read response: %v", apperrors.ErrFetchFailed, err)
	}
	if int64(len(body)) > limit {
		return resp.StatusCode, fmt.Errorf("%w: %s sent more than %d bytes", apperrors.ErrResponseTooLarge, req.URL.Host, limit)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode response: %v", apperrors.ErrFetchFailed, err)
	}
	return resp.StatusCode, nil
}
