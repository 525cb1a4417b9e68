package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.notion.com"
	apiVersion     = "2022-06-28"

	// The blocks.children endpoint rejects more than 100 children per call.
	maxBlocksPerRequest = 100
)

// Client is a minimal workspace API client: query a database by title,
// create pages, append child blocks and post comments.
type Client struct {
	token      string
	databaseID string
	titleProp  string
	baseURL    string
	client     *http.Client
}

// Page identifies a found or created workspace page.
type Page struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func NewClient(token, databaseID, titleProp string) *Client {
	return &Client{
		token:      token,
		databaseID: databaseID,
		titleProp:  titleProp,
		baseURL:    defaultBaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FindOrCreatePage returns the page whose title property exactly matches
// title, creating it when absent. Repeated calls with the same title return
// the same page rather than creating duplicates.
func (c *Client) FindOrCreatePage(ctx context.Context, title string) (Page, error) {
	query := map[string]any{
		"filter": map[string]any{
			"property": c.titleProp,
			"title":    map[string]any{"equals": title},
		},
		"page_size": 1,
	}

	var queryResp struct {
		Results []Page `json:"results"`
	}
	path := fmt.Sprintf("/v1/databases/%s/query", c.databaseID)
	if err := c.do(ctx, http.MethodPost, path, query, &queryResp); err != nil {
		return Page{}, fmt.Errorf("database query failed: %w", err)
	}
	if len(queryResp.Results) > 0 {
		return queryResp.Results[0], nil
	}

	create := map[string]any{
		"parent": map[string]any{"database_id": c.databaseID},
		"properties": map[string]any{
			c.titleProp: map[string]any{"title": rt(title)},
		},
	}

	var page Page
	if err := c.do(ctx, http.MethodPost, "/v1/pages", create, &page); err != nil {
		return Page{}, fmt.Errorf("page creation failed: %w", err)
	}
	return page, nil
}

// AppendBlocks appends child blocks to a page, chunking to the API limit.
// Appending is additive: a second call adds more content after the first.
func (c *Client) AppendBlocks(ctx context.Context, pageID string, blocks []Block) error {
	for len(blocks) > 0 {
		chunk := blocks
		if len(chunk) > maxBlocksPerRequest {
			chunk = chunk[:maxBlocksPerRequest]
		}
		blocks = blocks[len(chunk):]

		children := make([]map[string]any, len(chunk))
		for i, b := range chunk {
			children[i] = b.toAPI()
		}

		path := fmt.Sprintf("/v1/blocks/%s/children", pageID)
		body := map[string]any{"children": children}
		if err := c.do(ctx, http.MethodPatch, path, body, nil); err != nil {
			return fmt.Errorf("block append failed: %w", err)
		}
	}
	return nil
}

// AddComment posts a short comment against the page.
func (c *Client) AddComment(ctx context.Context, pageID, text string) error {
	body := map[string]any{
		"parent":    map[string]any{"page_id": pageID},
		"rich_text": rt(text),
	}
	if err := c.do(ctx, http.MethodPost, "/v1/comments", body, nil); err != nil {
		return fmt.Errorf("comment failed: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("workspace API returned status %d: %s", resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
