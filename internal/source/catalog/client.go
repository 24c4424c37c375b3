// Package catalog is the HTTP client for the read-only content catalog.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"media_syncer/internal/domain"
	"media_syncer/internal/metrics"
	"media_syncer/internal/source"
)

const defaultListing = "popular"

type Config struct {
	source.Config
	// ImageBaseURL is prefixed to poster paths.
	ImageBaseURL string
}

type Client struct {
	http         *source.Client
	imageBaseURL string
	logger       *slog.Logger
}

func New(cfg Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.Name == "" {
		cfg.Name = "catalog"
	}
	return &Client{
		http:         source.NewClient(cfg.Config, m, logger),
		imageBaseURL: cfg.ImageBaseURL,
		logger:       logger.With("component", "catalog"),
	}
}

func (c *Client) FetchOne(ctx context.Context, ref domain.ContentRef) (*domain.Content, error) {
	path, err := kindPath(ref.Kind)
	if err != nil {
		return nil, err
	}

	var resp contentResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/%s/%d", path, ref.ID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get %s: %w", ref, err)
	}

	content := resp.toDomain(ref.Kind, c.imageBaseURL)
	content.Ref = ref
	return &content, nil
}

// FetchPage returns one page of a search or listing. The page token is the
// page number; an empty token starts at the first page and an empty
// NextToken marks the last page.
func (c *Client) FetchPage(ctx context.Context, query domain.CatalogQuery, pageToken string) (*domain.CatalogPage, error) {
	kind, err := kindPath(query.Kind)
	if err != nil {
		return nil, err
	}

	page := 1
	if pageToken != "" {
		page, err = strconv.Atoi(pageToken)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page token %q", pageToken)
		}
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	if query.Sort != "" {
		params.Set("sort_by", query.Sort)
	}

	var path string
	if query.Search != "" {
		path = "/search/" + kind
		params.Set("query", query.Search)
	} else {
		listing := query.Listing
		if listing == "" {
			listing = defaultListing
		}
		path = "/" + kind + "/" + url.PathEscape(listing)
	}

	var resp pageResponse
	if err := c.http.GetJSON(ctx, path, params, &resp); err != nil {
		return nil, fmt.Errorf("get page %d: %w", page, err)
	}

	result := &domain.CatalogPage{Items: make([]domain.Content, 0, len(resp.Results))}
	for _, r := range resp.Results {
		if r.ID <= 0 {
			c.logger.Warn("skipping catalog result without id", "page", page)
			continue
		}
		result.Items = append(result.Items, r.toDomain(query.Kind, c.imageBaseURL))
	}
	if resp.Page != 0 && resp.Page != page {
		c.logger.Warn("catalog echoed a different page", "requested", page, "returned", resp.Page)
	}
	// The next token follows the requested page so a bad echo cannot loop.
	if page < resp.TotalPages {
		result.NextToken = strconv.Itoa(page + 1)
	}

	c.logger.Debug("fetched page",
		"page", page,
		"total_pages", resp.TotalPages,
		"items", len(result.Items),
	)

	return result, nil
}

func (c *Client) FetchCredits(ctx context.Context, ref domain.ContentRef) ([]domain.Credit, error) {
	path, err := kindPath(ref.Kind)
	if err != nil {
		return nil, err
	}

	var resp creditsResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/%s/%d/credits", path, ref.ID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get credits %s: %w", ref, err)
	}
	return resp.toDomain(ref), nil
}

func (c *Client) FetchTrailers(ctx context.Context, ref domain.ContentRef) ([]domain.Trailer, error) {
	path, err := kindPath(ref.Kind)
	if err != nil {
		return nil, err
	}

	var resp videosResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/%s/%d/videos", path, ref.ID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get videos %s: %w", ref, err)
	}

	trailers := make([]domain.Trailer, 0, len(resp.Results))
	for _, v := range resp.Results {
		if v.Type != "Trailer" && v.Type != "Teaser" {
			continue
		}
		trailers = append(trailers, v.toDomain(ref))
	}
	return trailers, nil
}

func kindPath(kind domain.ContentKind) (string, error) {
	switch kind {
	case domain.KindMovie:
		return "movie", nil
	case domain.KindShow:
		return "tv", nil
	default:
		return "", fmt.Errorf("unknown content kind %q", kind)
	}
}
