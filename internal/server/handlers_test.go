package server_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Hermes08/FastMVP-Core/internal/archive"
	"github.com/Hermes08/FastMVP-Core/internal/lifecycle"
	"github.com/Hermes08/FastMVP-Core/internal/scaffold"
	"github.com/Hermes08/FastMVP-Core/internal/server"
	"github.com/Hermes08/FastMVP-Core/internal/templates"
)

// mockGenerator implements server.Generator for handler-level tests.
type mockGenerator struct {
	generateFunc func(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error
}

func (m *mockGenerator) Generate(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, cfg, deliver)
	}
	return nil
}

func postGenerate(t *testing.T, srv *server.Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/projects/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHandleGenerate_MissingName(t *testing.T) {
	called := false
	srv := server.New(&mockGenerator{
		generateFunc: func(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error {
			called = true
			return nil
		},
	}, nil)

	for _, body := range []string{`{}`, `{"name":""}`, `{"name":"   "}`} {
		w := postGenerate(t, srv, body)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid error response: %v", err)
		}
		if resp["error"] != "name is required" {
			t.Errorf("error = %q, want %q", resp["error"], "name is required")
		}
	}

	if called {
		t.Error("generator invoked for invalid config")
	}
}

func TestHandleGenerate_InvalidBody(t *testing.T) {
	srv := server.New(&mockGenerator{}, nil)
	w := postGenerate(t, srv, `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleGenerate_WriteErrorSanitized(t *testing.T) {
	srv := server.New(&mockGenerator{
		generateFunc: func(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error {
			return &scaffold.WriteError{Path: "/var/fastmvp/secret/path", Err: errors.New("disk full")}
		},
	}, nil)

	w := postGenerate(t, srv, `{"name":"X"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "/var/fastmvp") {
		t.Error("internal path leaked to client")
	}
}

func TestHandleGenerate_ArchiveErrorSanitized(t *testing.T) {
	srv := server.New(&mockGenerator{
		generateFunc: func(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error {
			return &archive.Error{Path: "/var/fastmvp/x.zip", Err: errors.New("broken pipe")}
		},
	}, nil)

	w := postGenerate(t, srv, `{"name":"X"}`)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "/var/fastmvp") {
		t.Error("internal path leaked to client")
	}
}

func TestHandleGenerate_ArchiveMissingAtDelivery(t *testing.T) {
	srv := server.New(&mockGenerator{
		generateFunc: func(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error {
			// Hand the deliverer a path that does not exist; the
			// handler's deliverer must surface the not-found
			// condition.
			return deliver(ctx, filepath.Join(os.TempDir(), "fastmvp-gone", "missing.zip"))
		},
	}, nil)

	w := postGenerate(t, srv, `{"name":"X"}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHandleGenerate_EndToEnd(t *testing.T) {
	workRoot := t.TempDir()
	builder := scaffold.NewBuilder(templates.Embedded(), nil)
	manager := lifecycle.NewDefault(workRoot, builder, nil)
	srv := server.New(manager, nil)

	w := postGenerate(t, srv, `{"name":"Demo Api","description":"A demo","features":["user-management","csv-upload"],"template":"nextjs"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q, want application/zip", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="demo-api.zip"`) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if cl := w.Header().Get("Content-Length"); cl == "" || cl == "0" {
		t.Errorf("Content-Length = %q", cl)
	}

	// The payload is a valid archive containing the scaffold.
	body := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("response is not a valid zip: %v", err)
	}

	entries := make(map[string]bool)
	for _, f := range zr.File {
		entries[f.Name] = true
	}
	for _, want := range []string{"package.json", "README.md", ".gitignore", "next.config.js"} {
		if !entries[want] {
			t.Errorf("archive missing %s", want)
		}
	}

	// Nothing ephemeral survives the request.
	left, err := os.ReadDir(workRoot)
	if err != nil {
		t.Fatalf("reading work root: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("work root not clean after request: %v", left)
	}
}

func TestHandleGenerate_EndToEnd_Minimal(t *testing.T) {
	workRoot := t.TempDir()
	builder := scaffold.NewBuilder(templates.Embedded(), nil)
	manager := lifecycle.NewDefault(workRoot, builder, nil)
	srv := server.New(manager, nil)

	w := postGenerate(t, srv, `{"name":"X"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	body := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		t.Fatalf("response is not a valid zip: %v", err)
	}

	var readme string
	for _, f := range zr.File {
		if f.Name == "README.md" {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("opening README: %v", err)
			}
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(rc); err != nil {
				t.Fatalf("reading README: %v", err)
			}
			rc.Close()
			readme = buf.String()
		}
	}

	if !strings.Contains(readme, "No description provided yet.") {
		t.Error("README missing description placeholder")
	}
	if !strings.Contains(readme, "_No features selected._") {
		t.Error("README missing empty-features line")
	}
}

func TestHealthz(t *testing.T) {
	srv := server.New(&mockGenerator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
