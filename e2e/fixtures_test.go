//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

type fakeCrate struct {
	ID              string  `json:"id"`
	Description     string  `json:"description"`
	Downloads       uint64  `json:"downloads"`
	RecentDownloads uint64  `json:"recent_downloads"`
	MaxVersion      string  `json:"max_version"`
	MaxStable       string  `json:"max_stable_version"`
	Repository      *string `json:"repository"`
}

// fakeRegistry serves the crates.io search endpoint from a fixed list
type fakeRegistry struct {
	srv    *httptest.Server
	crates []fakeCrate

	mu      sync.Mutex
	queries []string
}

func newFakeRegistry(crates []fakeCrate) *fakeRegistry {
	r := &fakeRegistry{crates: crates}
	r.srv = httptest.NewServer(http.HandlerFunc(r.serve))
	return r
}

func (r *fakeRegistry) serve(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	r.mu.Lock()
	r.queries = append(r.queries, q.Get("q"))
	r.mu.Unlock()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if page < 1 || perPage < 1 {
		http.Error(w, "bad paging", http.StatusBadRequest)
		return
	}

	start := min((page-1)*perPage, len(r.crates))
	end := min(start+perPage, len(r.crates))
	var next *string
	if end < len(r.crates) {
		s := fmt.Sprintf("?page=%d", page+1)
		next = &s
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"crates": r.crates[start:end],
		"meta":   map[string]any{"total": len(r.crates), "next_page": next, "prev_page": nil},
	})
}

func (r *fakeRegistry) URL() string { return r.srv.URL + "/api/v1/crates" }

func (r *fakeRegistry) Queries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func (r *fakeRegistry) Close() { r.srv.Close() }

func serdeCrates() []fakeCrate {
	repo := "https://github.com/serde-rs/serde"
	return []fakeCrate{
		{ID: "serde", Description: "A generic serialization/deserialization framework", Downloads: 500000000, RecentDownloads: 60000000, MaxVersion: "1.0.210", MaxStable: "1.0.210", Repository: &repo},
		{ID: "serde_json", Description: "A JSON serialization file format", Downloads: 400000000, MaxVersion: "1.0.128", MaxStable: "1.0.128"},
		{ID: "serde_yaml", Description: "YAML data format for Serde", Downloads: 90000000, MaxVersion: "0.9.34", MaxStable: "0.9.34"},
		{ID: "serde_derive", Description: "Macros 1.1 implementation of #[derive(Serialize, Deserialize)]", Downloads: 450000000, MaxVersion: "1.0.210", MaxStable: "1.0.210"},
		{ID: "serde_with", Description: "Custom de/serialization functions for Rust's serde", Downloads: 80000000, MaxVersion: "3.9.0", MaxStable: "3.9.0"},
		{ID: "serde_repr", Description: "Derive Serialize and Deserialize for C-like enums", Downloads: 70000000, MaxVersion: "0.1.19", MaxStable: "0.1.19"},
		{ID: "serde_bytes", Description: "Optimized handling of &[u8] and Vec<u8> for Serde", Downloads: 60000000, MaxVersion: "0.11.15", MaxStable: "0.11.15"},
	}
}

// CreateTestWorkspace creates a temporary directory with a Cargo.toml and
// a fake registry serving crates
func (tf *TUITestFramework) CreateTestWorkspace(crates []fakeCrate) (string, error) {
	tf.workspace = tf.t.TempDir()
	manifest := "[package]\nname = \"demo\"\nversion = \"0.1.0\"\nedition = \"2021\"\n\n[dependencies]\nrand = \"0.8\"\n"
	if err := os.WriteFile(tf.ManifestPath(), []byte(manifest), 0o644); err != nil {
		return "", err
	}
	tf.registry = newFakeRegistry(crates)
	return tf.workspace, nil
}

// ConfigPath is the config file the app is started with
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "cratui", "config.toml")
}

// ManifestPath is the Cargo.toml the app edits
func (tf *TUITestFramework) ManifestPath() string {
	return filepath.Join(tf.workspace, "Cargo.toml")
}

// ReadFile returns the contents of a workspace file
func (tf *TUITestFramework) ReadFile(path string) string {
	tf.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tf.t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
