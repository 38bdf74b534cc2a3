package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tempo-cli/internal/model"
	"tempo-cli/internal/timeline"
)

func TestTimeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/projects/p1/timeline" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		io.WriteString(w, `{"timeline":[
			{"item_id":"m1","date":"2024-01-01","item_type":"event","event_kind":"meeting","label":"kickoff.md"},
			{"item_id":"a1","date":"2024-01-01","item_type":"action","title":"draft agenda","status":"open","parent_event_id":"m1","order":0}
		]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok")
	items, err := c.Timeline(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Timeline: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !items[0].IsEvent() || items[0].Label != "kickoff.md" {
		t.Fatalf("unexpected event decode: %+v", items[0])
	}
	if !items[1].IsAction() || items[1].ParentEventID == nil || *items[1].ParentEventID != "m1" {
		t.Fatalf("unexpected action decode: %+v", items[1])
	}
}

func TestCreateAction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/projects/p1/action-items" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var draft model.ActionDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			t.Fatalf("decode draft: %v", err)
		}
		if draft.Title != "file minutes" {
			t.Fatalf("unexpected draft: %+v", draft)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Item{ID: "srv-1", Date: "2024-03-01", Kind: model.KindAction, Title: draft.Title, Status: model.StatusOpen})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	it, err := c.CreateAction(context.Background(), "p1", model.ActionDraft{Title: "file minutes"})
	if err != nil {
		t.Fatalf("CreateAction: %v", err)
	}
	if it.ID != "srv-1" {
		t.Fatalf("expected server-assigned id, got %+v", it)
	}
}

func TestUpdateAction_PatchWireShape(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/projects/p1/action-items/a1" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	order := 2
	_, err := c.UpdateAction(context.Background(), "p1", "a1", timeline.Patch{
		SetParent: true, // nil parent: explicit detach
		Order:     &order,
	})
	if err != nil {
		t.Fatalf("UpdateAction: %v", err)
	}
	if v, ok := body["parent_event_id"]; !ok || v != nil {
		t.Fatalf("expected explicit null parent_event_id, got %v (present=%v)", v, ok)
	}
	if v, ok := body["order"].(float64); !ok || v != 2 {
		t.Fatalf("expected order 2, got %v", body["order"])
	}
	if _, ok := body["title"]; ok {
		t.Fatalf("untouched fields must be omitted, got %v", body)
	}
}

func TestDeleteAction_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"error":"item is referenced by a report"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.DeleteAction(context.Background(), "p1", "a1")
	var se StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusConflict || se.Message != "item is referenced by a report" {
		t.Fatalf("unexpected StatusError: %+v", se)
	}
}

func TestEventSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/projects/p1/events/m1/summary" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"overview":"Quarterly kickoff.","participants":["sam","lee"],"next_steps":["circulate notes"]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	sum, err := c.EventSummary(context.Background(), "p1", "m1")
	if err != nil {
		t.Fatalf("EventSummary: %v", err)
	}
	// EventID is filled from the request when the server omits it.
	if sum.EventID != "m1" || sum.Overview != "Quarterly kickoff." || len(sum.Participants) != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestChecklistAndSync(t *testing.T) {
	synced := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects/p1/checklist":
			io.WriteString(w, `{"checklist":[{"task_id":"1.2","title":"Collect requirements","completed":true},{"task_id":"1.1","title":"Name the project","completed":false}]}`)
		case r.Method == http.MethodPost && r.URL.Path == "/projects/p1/checklist/sync":
			synced = true
			w.WriteHeader(http.StatusAccepted)
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	tasks, err := c.Checklist(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Checklist: %v", err)
	}
	if len(tasks) != 2 || tasks[0].TaskID != "1.2" {
		t.Fatalf("unexpected checklist: %+v", tasks)
	}
	if err := c.SyncChecklist(context.Background(), "p1"); err != nil {
		t.Fatalf("SyncChecklist: %v", err)
	}
	if !synced {
		t.Fatalf("expected sync endpoint hit")
	}
}
