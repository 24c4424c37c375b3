// Package lists is the HTTP client for the cloud list and favorites service.
package lists

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"media_syncer/internal/domain"
	"media_syncer/internal/metrics"
	"media_syncer/internal/source"
)

type Client struct {
	http   *source.Client
	logger *slog.Logger
}

func New(cfg source.Config, m *metrics.Metrics, logger *slog.Logger) *Client {
	if cfg.Name == "" {
		cfg.Name = "list_service"
	}
	return &Client{
		http:   source.NewClient(cfg, m, logger),
		logger: logger.With("component", "list_service"),
	}
}

func (c *Client) GetList(ctx context.Context, remoteID string) (*domain.ListHeader, error) {
	var resp listResponse
	if err := c.http.GetJSON(ctx, "/lists/"+url.PathEscape(remoteID), nil, &resp); err != nil {
		return nil, fmt.Errorf("get list %s: %w", remoteID, err)
	}
	if resp.ID == "" {
		resp.ID = remoteID
	}
	return resp.toDomain(), nil
}

// GetMembers returns the raw membership rows. Rows are not validated here.
func (c *Client) GetMembers(ctx context.Context, remoteID string) ([]domain.MemberRow, error) {
	var resp membersResponse
	if err := c.http.GetJSON(ctx, "/lists/"+url.PathEscape(remoteID)+"/items", nil, &resp); err != nil {
		return nil, fmt.Errorf("get list members %s: %w", remoteID, err)
	}
	return resp.toDomain(), nil
}

func (c *Client) AddMember(ctx context.Context, remoteID string, ref domain.ContentRef) error {
	if err := c.http.PostJSON(ctx, "/lists/"+url.PathEscape(remoteID)+"/items", newMemberRequest(ref), nil); err != nil {
		return fmt.Errorf("add list member %s to %s: %w", ref, remoteID, err)
	}
	return nil
}

func (c *Client) GetFavorites(ctx context.Context, userID string) ([]domain.MemberRow, error) {
	var resp membersResponse
	if err := c.http.GetJSON(ctx, "/users/"+url.PathEscape(userID)+"/favorites", nil, &resp); err != nil {
		return nil, fmt.Errorf("get favorites of %s: %w", userID, err)
	}
	return resp.toDomain(), nil
}

func (c *Client) AddFavorite(ctx context.Context, ref domain.ContentRef) error {
	if err := c.http.PostJSON(ctx, "/favorites", newMemberRequest(ref), nil); err != nil {
		return fmt.Errorf("add favorite %s: %w", ref, err)
	}
	c.logger.Debug("pushed favorite", "ref", ref.String())
	return nil
}
