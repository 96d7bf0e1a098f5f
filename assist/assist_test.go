package assist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/Arham2306/Focus-Flow-Web-App/domain"
)

func TestDecodePartialTask(t *testing.T) {
	p, err := DecodePartialTask([]byte(`{"title":"Plan trip","priority":"HIGH","subtasks":["book hotel",""," pack "]}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	f := p.Fields()
	if f.Title != "Plan trip" || f.Priority != domain.PriorityHigh {
		t.Fatalf("unexpected fields %#v", f)
	}
	if len(f.Subtasks) != 2 || f.Subtasks[1].Title != "pack" || f.Subtasks[0].ID == "" {
		t.Fatalf("unexpected subtasks %#v", f.Subtasks)
	}
}

func TestDecodePartialTaskRejectsGarbage(t *testing.T) {
	for _, in := range []string{`not json`, `{"title":"  "}`, `{}`} {
		if _, err := DecodePartialTask([]byte(in)); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: expected ErrMalformed, got %v", in, err)
		}
	}
}

func TestFieldsDegradesUnknownPriority(t *testing.T) {
	f := PartialTask{Title: "x", Priority: "critical"}.Fields()
	if f.Priority != domain.PriorityMedium {
		t.Fatalf("expected MEDIUM, got %s", f.Priority)
	}
}

func TestHTTPParser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req parseRequest
		if err := sonic.ConfigStd.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.CurrentDate != "2026-10-15" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"title":"` + req.Input + `","dueDate":"Due tomorrow"}`))
	}))
	t.Cleanup(srv.Close)

	p := &HTTPParser{URL: srv.URL}
	got, err := p.Parse(context.Background(), "call bank", time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Title != "call bank" || got.DueDate != "Due tomorrow" {
		t.Fatalf("unexpected result %#v", got)
	}
}

func TestHTTPParserNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	if _, err := (&HTTPParser{URL: srv.URL}).Parse(context.Background(), "x", time.Now()); err == nil {
		t.Fatalf("expected error for 503")
	}
}
