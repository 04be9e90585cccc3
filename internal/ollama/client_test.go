package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerate_SingleObjectReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req["model"] != "llama2" {
			t.Errorf("expected model llama2, got %v", req["model"])
		}
		w.Write([]byte(`{"response":"단어: apple\n의미: 사과","done":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	got, err := c.Generate(context.Background(), "prompt", Params{Model: "llama2", Temperature: 0.7, TopP: 0.9, MaxTokens: 500})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != "단어: apple\n의미: 사과" {
		t.Errorf("unexpected reply: %q", got)
	}
}

func TestGenerate_StreamedChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"단어: ","done":false}` + "\n"))
		w.Write([]byte(`{"response":"apple","done":false}` + "\n"))
		w.Write([]byte(`{"response":"","done":true}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	got, err := c.Generate(context.Background(), "prompt", Params{Model: "llama2"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != "단어: apple" {
		t.Errorf("expected concatenated chunks, got %q", got)
	}
}

func TestGenerate_StopsAtDoneChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"before","done":true}` + "\n"))
		w.Write([]byte(`{"response":"after","done":false}` + "\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	got, err := c.Generate(context.Background(), "prompt", Params{Model: "llama2"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if got != "before" {
		t.Errorf("chunks after done should be ignored, got %q", got)
	}
}

func TestGenerate_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), "prompt", Params{Model: "missing"})
	if !errors.Is(err, ErrBackendProtocol) {
		t.Fatalf("expected ErrBackendProtocol, got: %v", err)
	}
}

func TestGenerate_MalformedChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), "prompt", Params{Model: "llama2"})
	if !errors.Is(err, ErrBackendProtocol) {
		t.Fatalf("expected ErrBackendProtocol, got: %v", err)
	}
}

func TestGenerate_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)
	_, err := c.Generate(context.Background(), "prompt", Params{Model: "llama2"})
	if !errors.Is(err, ErrBackendProtocol) {
		t.Fatalf("expected ErrBackendProtocol for empty reply, got: %v", err)
	}
}

func TestGenerate_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Generate(context.Background(), "prompt", Params{Model: "llama2"})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got: %v", err)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"models":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("expected healthy, got: %v", err)
	}
}
