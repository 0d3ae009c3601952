// Package cms is the frontend-side client for the CMS API. It wraps the HTTP
// fetch, unwraps the {success,data,error} envelope and exposes typed lookups
// for the page renderers.
package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"juniorcars/models"
)

var ErrNotFound = errors.New("cms: record not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient() *Client {
	base := os.Getenv("CMS_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return NewClientWithBase(base)
}

func NewClientWithBase(base string) *Client {
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Pagination *Pagination     `json:"pagination"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// get fetches path, unwraps the envelope into out and fails on a non-2xx
// status or success:false.
func (c *Client) get(path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	resp, err := c.http.Get(u)
	if err != nil {
		return fmt.Errorf("cms fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("cms decode %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("cms request %s failed: %s", path, msg)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("cms unmarshal %s: %w", path, err)
		}
	}
	return nil
}

func (c *Client) Pages(params url.Values) ([]models.Page, error) {
	var pages []models.Page
	if err := c.get("/api/cms/pages", params, &pages); err != nil {
		return nil, err
	}
	return pages, nil
}

func (c *Client) PageByID(id uint) (*models.Page, error) {
	var page models.Page
	if err := c.get(fmt.Sprintf("/api/cms/pages/%d", id), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PageBySlug resolves a published page through the exact slug filter.
func (c *Client) PageBySlug(slug string) (*models.Page, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("published", "true")

	pages, err := c.Pages(params)
	if err != nil {
		return nil, err
	}
	for i := range pages {
		if pages[i].Slug == slug {
			return &pages[i], nil
		}
	}
	return nil, ErrNotFound
}

func (c *Client) CarSeriesList(params url.Values) ([]models.CarSeries, error) {
	var series []models.CarSeries
	if err := c.get("/api/cms/car-series", params, &series); err != nil {
		return nil, err
	}
	return series, nil
}

func (c *Client) PublishedCarSeries() ([]models.CarSeries, error) {
	params := url.Values{}
	params.Set("limit", "100")
	params.Set("published", "true")
	params.Set("sortBy", "name")
	params.Set("sortOrder", "asc")
	return c.CarSeriesList(params)
}

func (c *Client) CarSeriesBySlug(slug string) (*models.CarSeries, error) {
	params := url.Values{}
	params.Set("slug", slug)
	params.Set("published", "true")

	series, err := c.CarSeriesList(params)
	if err != nil {
		return nil, err
	}
	for i := range series {
		if series[i].Slug == slug {
			return &series[i], nil
		}
	}
	return nil, ErrNotFound
}

// NavigationTree returns the nested, ordered navigation roots.
func (c *Client) NavigationTree() ([]models.NavigationItem, error) {
	params := url.Values{}
	params.Set("flat", "false")

	var items []models.NavigationItem
	if err := c.get("/api/cms/navigation", params, &items); err != nil {
		return nil, err
	}
	return items, nil
}
