package blob

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPut(t *testing.T) {
	var gotPath, gotAuth, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("method: got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("x-content-type")
		gotBody, _ = io.ReadAll(r.Body)
		_ = json.NewEncoder(w).Encode(PutResult{
			URL:      "https://abc.public.blob.vercel-storage.com" + r.URL.Path,
			Pathname: r.URL.Path[1:],
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	url, err := c.Upload(context.Background(), "foto_1_lampu.jpg", []byte("img-bytes"), "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://abc.public.blob.vercel-storage.com/foto_1_lampu.jpg" {
		t.Fatalf("url: got %q", url)
	}
	if gotPath != "/foto_1_lampu.jpg" {
		t.Fatalf("path: got %q", gotPath)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("auth: got %q", gotAuth)
	}
	if gotType != "image/jpeg" {
		t.Fatalf("content type: got %q", gotType)
	}
	if string(gotBody) != "img-bytes" {
		t.Fatalf("body: got %q", gotBody)
	}
}

func TestPutPropagatesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"store unavailable"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "tok-123")
	if _, err := c.Upload(context.Background(), "x.jpg", []byte("x"), "image/jpeg"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
