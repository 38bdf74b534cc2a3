package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/timeline"
)

// Client talks to the project-activity server. Auth and session handling live
// behind the bearer token; the client just attaches it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// StatusError is a non-2xx server response. The body's {"error": "..."}
// message is carried when the server provides one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

type timelineResponse struct {
	Timeline []model.Item `json:"timeline"`
}

// Timeline fetches the full timeline snapshot for one project. There is no
// pagination; the caller replaces its store wholesale on success.
func (c *Client) Timeline(ctx context.Context, project string) ([]model.Item, error) {
	var resp timelineResponse
	if err := c.do(ctx, http.MethodGet, c.projectPath(project, "timeline"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Timeline, nil
}

// CreateAction creates a new action item; the server assigns the id and date.
func (c *Client) CreateAction(ctx context.Context, project string, draft model.ActionDraft) (model.Item, error) {
	var created model.Item
	if err := c.do(ctx, http.MethodPost, c.projectPath(project, "action-items"), draft, &created); err != nil {
		return model.Item{}, err
	}
	return created, nil
}

// UpdateAction sends a partial patch of one action item's mutable fields.
// Servers that echo the updated item get it decoded back; a bodyless 2xx
// returns the zero item.
func (c *Client) UpdateAction(ctx context.Context, project, id string, patch timeline.Patch) (model.Item, error) {
	var updated model.Item
	body := patchBody(patch)
	path := c.projectPath(project, "action-items") + "/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPut, path, body, &updated); err != nil {
		return model.Item{}, err
	}
	return updated, nil
}

// DeleteAction removes one action item.
func (c *Client) DeleteAction(ctx context.Context, project, id string) error {
	path := c.projectPath(project, "action-items") + "/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// EventSummary fetches the lazily-loaded summary block for one event.
// Callers cache the result for the session (timeline.Store).
func (c *Client) EventSummary(ctx context.Context, project, eventID string) (model.Summary, error) {
	var sum model.Summary
	path := c.projectPath(project, "events") + "/" + url.PathEscape(eventID) + "/summary"
	if err := c.do(ctx, http.MethodGet, path, nil, &sum); err != nil {
		return model.Summary{}, err
	}
	if sum.EventID == "" {
		sum.EventID = eventID
	}
	return sum, nil
}

type checklistResponse struct {
	Checklist []model.ChecklistTask `json:"checklist"`
}

// Checklist fetches the project checklist.
func (c *Client) Checklist(ctx context.Context, project string) ([]model.ChecklistTask, error) {
	var resp checklistResponse
	if err := c.do(ctx, http.MethodGet, c.projectPath(project, "checklist"), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Checklist, nil
}

// SyncChecklist triggers the server-side sync of the source checklist into
// this project. The merge itself runs server-side; its contract: completed
// tasks are never altered, tasks absent from the source but completed stay,
// absent-and-not-completed are removed, new tasks are added. Callers re-pull
// the checklist afterwards.
func (c *Client) SyncChecklist(ctx context.Context, project string) error {
	return c.do(ctx, http.MethodPost, c.projectPath(project, "checklist")+"/sync", nil, nil)
}

// ProjectClient scopes a Client to one project, matching the shape the
// mutation coordinator works against.
type ProjectClient struct {
	Client  *Client
	Project string
}

func (p ProjectClient) CreateAction(ctx context.Context, draft model.ActionDraft) (model.Item, error) {
	return p.Client.CreateAction(ctx, p.Project, draft)
}

func (p ProjectClient) UpdateAction(ctx context.Context, id string, patch timeline.Patch) (model.Item, error) {
	return p.Client.UpdateAction(ctx, p.Project, id, patch)
}

func (p ProjectClient) DeleteAction(ctx context.Context, id string) error {
	return p.Client.DeleteAction(ctx, p.Project, id)
}

func (c *Client) projectPath(project, resource string) string {
	return "/projects/" + url.PathEscape(project) + "/" + resource
}

// patchBody flattens a timeline.Patch into the PUT wire shape. Tri-state
// fields (assignee, parent) serialize an explicit null when cleared.
func patchBody(p timeline.Patch) map[string]any {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	if p.Order != nil {
		body["order"] = *p.Order
	}
	if p.SetAssignee {
		if p.Assignee != nil {
			body["assignee"] = *p.Assignee
		} else {
			body["assignee"] = nil
		}
	}
	if p.SetParent {
		if p.Parent != nil {
			body["parent_event_id"] = *p.Parent
		} else {
			body["parent_event_id"] = nil
		}
	}
	return body
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeStatusError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}

func decodeStatusError(resp *http.Response) error {
	se := StatusError{StatusCode: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		if json.Unmarshal(data, &payload) == nil {
			se.Message = payload.Error
		}
	}
	return se
}
