package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestFromMarkdown(t *testing.T) {
	md := "## Guardian\n_3 stories this morning_\n\n- First bullet\n- Second bullet\n\nClosing thought."
	blocks := FromMarkdown(md)

	assert.Equal(t, 5, len(blocks))
	assert.Equal(t, Heading, blocks[0].Kind)
	assert.Equal(t, "Guardian", blocks[0].Text)
	assert.Equal(t, Paragraph, blocks[1].Kind)
	assert.Equal(t, Bullet, blocks[2].Kind)
	assert.Equal(t, "First bullet", blocks[2].Text)
	assert.Equal(t, Bullet, blocks[3].Kind)
	assert.Equal(t, Paragraph, blocks[4].Kind)
	assert.Equal(t, "Closing thought.", blocks[4].Text)
}

func TestAudioSection(t *testing.T) {
	blocks := AudioSection("Guardian – Section Audio", "https://example.com/guardian.ogg")
	assert.Equal(t, 2, len(blocks))
	assert.Equal(t, SubHeading, blocks[0].Kind)
	assert.Equal(t, Audio, blocks[1].Kind)
	assert.Equal(t, "https://example.com/guardian.ogg", blocks[1].URL)
}

func TestBlockWireFormat(t *testing.T) {
	data, err := json.Marshal(Block{Kind: Bullet, Text: "hello"}.toAPI())
	assert.Equal(t, nil, err)
	assert.Equal(t,
		`{"bulleted_list_item":{"rich_text":[{"type":"text","text":{"content":"hello"}}]},"type":"bulleted_list_item"}`,
		string(data))

	data, err = json.Marshal(Block{Kind: Audio, URL: "https://example.com/a.ogg"}.toAPI())
	assert.Equal(t, nil, err)
	assert.Equal(t,
		`{"audio":{"type":"external","external":{"url":"https://example.com/a.ogg"}},"type":"audio"}`,
		string(data))
}

type recordedRequest struct {
	method string
	path   string
	body   map[string]any
}

func stubWorkspace(t *testing.T, existingPages int) (*Client, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		requests = append(requests, recordedRequest{r.Method, r.URL.Path, body})

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/v1/databases/db-1/query":
			results := "[]"
			if existingPages > 0 {
				results = `[{"id":"existing-page","url":"https://notion.example/existing"}]`
			}
			fmt.Fprintf(w, `{"results":%s}`, results)
		case r.URL.Path == "/v1/pages":
			fmt.Fprint(w, `{"id":"new-page","url":"https://notion.example/new"}`)
		default:
			fmt.Fprint(w, `{}`)
		}
	}))
	t.Cleanup(srv.Close)

	client := NewClient("secret", "db-1", "Name")
	client.baseURL = srv.URL
	return client, &requests
}

func TestFindOrCreatePageReturnsExisting(t *testing.T) {
	client, requests := stubWorkspace(t, 1)

	page, err := client.FindOrCreatePage(context.Background(), "2025-01-04")
	assert.Equal(t, nil, err)
	assert.Equal(t, "existing-page", page.ID)

	// Only the query ran; no page was created.
	assert.Equal(t, 1, len(*requests))
	filter := (*requests)[0].body["filter"].(map[string]any)
	assert.Equal(t, "Name", filter["property"])
	assert.Equal(t, "2025-01-04", filter["title"].(map[string]any)["equals"])
}

func TestFindOrCreatePageCreatesWhenMissing(t *testing.T) {
	client, requests := stubWorkspace(t, 0)

	page, err := client.FindOrCreatePage(context.Background(), "2025-01-04")
	assert.Equal(t, nil, err)
	assert.Equal(t, "new-page", page.ID)

	assert.Equal(t, 2, len(*requests))
	create := (*requests)[1]
	assert.Equal(t, "/v1/pages", create.path)
	parent := create.body["parent"].(map[string]any)
	assert.Equal(t, "db-1", parent["database_id"])
}

func TestAppendBlocksChunksRequests(t *testing.T) {
	client, requests := stubWorkspace(t, 0)

	blocks := make([]Block, 250)
	for i := range blocks {
		blocks[i] = Block{Kind: Paragraph, Text: fmt.Sprintf("line %d", i)}
	}

	err := client.AppendBlocks(context.Background(), "page-1", blocks)
	assert.Equal(t, nil, err)

	assert.Equal(t, 3, len(*requests))
	for i, want := range []int{100, 100, 50} {
		req := (*requests)[i]
		assert.Equal(t, http.MethodPatch, req.method)
		assert.Equal(t, "/v1/blocks/page-1/children", req.path)
		assert.Equal(t, want, len(req.body["children"].([]any)))
	}
}

func TestAddCommentPayload(t *testing.T) {
	client, requests := stubWorkspace(t, 0)

	err := client.AddComment(context.Background(), "page-1", "✅ done")
	assert.Equal(t, nil, err)

	req := (*requests)[0]
	assert.Equal(t, "/v1/comments", req.path)
	parent := req.body["parent"].(map[string]any)
	assert.Equal(t, "page-1", parent["page_id"])
	rich := req.body["rich_text"].([]any)
	text := rich[0].(map[string]any)["text"].(map[string]any)
	assert.Equal(t, "✅ done", text["content"])
}

func TestErrorStatusSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"unauthorized"}`, http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client := NewClient("bad-token", "db-1", "Name")
	client.baseURL = srv.URL

	_, err := client.FindOrCreatePage(context.Background(), "2025-01-04")
	assert.NotEqual(t, nil, err)
}
