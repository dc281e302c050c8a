package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nikbrunner/lp/internal/model"
)

// Client talks to the generic resource API over HTTP JSON.
// All methods take a context and return wrapped errors; callers decide
// whether a failure is surfaced or healed by a refetch.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError is returned for responses with status >= 400.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Body)
}

// ListOptions controls pagination and filtering for list requests.
type ListOptions struct {
	Page   int    // 1-based page number
	Size   int    // page size
	Filter string // membership filter expression, empty = unrestricted
}

// LinkPage is one page of a link list response.
type LinkPage struct {
	Items []model.Link `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Size  int          `json:"size"`
}

// MembershipFilter builds the filter expression restricting a list request
// to a set of link IDs: "id in (a,b,c)".
func MembershipFilter(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	var b bytes.Buffer
	b.WriteString("id in (")
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(id)
	}
	b.WriteByte(')')
	return b.String()
}

// ListLinks fetches one page of links, optionally restricted by a filter.
func (c *Client) ListLinks(ctx context.Context, opts ListOptions) (*LinkPage, error) {
	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Size > 0 {
		q.Set("size", strconv.Itoa(opts.Size))
	}
	if opts.Filter != "" {
		q.Set("filter", opts.Filter)
	}

	var page LinkPage
	if err := c.do(ctx, http.MethodGet, "/api/links?"+q.Encode(), nil, &page); err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return &page, nil
}

// GetLink fetches a single link by ID.
func (c *Client) GetLink(ctx context.Context, id string) (*model.Link, error) {
	var link model.Link
	if err := c.do(ctx, http.MethodGet, "/api/links/"+url.PathEscape(id), nil, &link); err != nil {
		return nil, fmt.Errorf("get link %s: %w", id, err)
	}
	return &link, nil
}

// CreateLink creates a new link resource.
func (c *Client) CreateLink(ctx context.Context, link model.Link) error {
	if err := c.do(ctx, http.MethodPost, "/api/links", link, nil); err != nil {
		return fmt.Errorf("create link %s: %w", link.ID, err)
	}
	return nil
}

// ReplaceLink replaces the full link resource by ID.
func (c *Client) ReplaceLink(ctx context.Context, link model.Link) error {
	if err := c.do(ctx, http.MethodPut, "/api/links/"+url.PathEscape(link.ID), link, nil); err != nil {
		return fmt.Errorf("replace link %s: %w", link.ID, err)
	}
	return nil
}

// DeleteLink deletes a link by ID.
func (c *Client) DeleteLink(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/links/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("delete link %s: %w", id, err)
	}
	return nil
}

// ListGroups fetches all link groups. Ordering is the server's; callers
// sort by priority.
func (c *Client) ListGroups(ctx context.Context) ([]model.LinkGroup, error) {
	var groups []model.LinkGroup
	if err := c.do(ctx, http.MethodGet, "/api/groups", nil, &groups); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// ReplaceGroup replaces the full group resource, membership included.
// Membership changes are always written this way, never as a patch.
func (c *Client) ReplaceGroup(ctx context.Context, group model.LinkGroup) error {
	if err := c.do(ctx, http.MethodPut, "/api/groups/"+url.PathEscape(group.ID), group, nil); err != nil {
		return fmt.Errorf("replace group %s: %w", group.ID, err)
	}
	return nil
}

// do performs one HTTP round trip, encoding body and decoding out as JSON.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return err
		}
	}
	return nil
}
