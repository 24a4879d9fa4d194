package downloader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"schedulebot/database"
)

type memStore struct {
	mu     sync.Mutex
	hashes map[string]string
}

func (s *memStore) FileHash(name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.hashes[name]
	if !ok {
		return "", database.ErrNotFound
	}
	return h, nil
}

func (s *memStore) SetFileHash(name, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes[name] = hash
	return nil
}

const page = `<html><body>
<table class="istu-table"><tbody>
<tr><td><a href="/files/ivt.xls">ИВТ</a></td></tr>
<tr><td><a href="/files/%D0%BF%D0%B8.xls">ПИ</a></td></tr>
<tr><td><a href="/files/plan.pdf">План</a></td></tr>
<tr><td><a href="/files/ivt.xls">ИВТ ещё раз</a></td></tr>
</tbody></table>
<a href="/files/outside.xls">вне таблицы</a>
</body></html>`

func newServer(t *testing.T, files map[string]string, mu *sync.Mutex) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
	mux.HandleFunc("/files/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		body, ok := files[filepath.Base(r.URL.Path)]
		mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDownload(t *testing.T) {
	var mu sync.Mutex
	files := map[string]string{"ivt.xls": "первая версия", "пи.xls": "пи"}
	srv := newServer(t, files, &mu)

	dest := t.TempDir()
	d := New(srv.URL+"/", "", dest, []string{".xls"}, &memStore{hashes: make(map[string]string)})

	changed, err := d.Download(context.Background())
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	want := []string{filepath.Join(dest, "ivt.xls"), filepath.Join(dest, "пи.xls")}
	if !reflect.DeepEqual(changed, want) {
		t.Errorf("changed = %v, want %v", changed, want)
	}

	changed, err = d.Download(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(changed) != 0 {
		t.Errorf("unchanged files downloaded again: %v", changed)
	}

	mu.Lock()
	files["ivt.xls"] = "вторая версия"
	mu.Unlock()
	changed, err = d.Download(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(changed, want[:1]) {
		t.Errorf("changed = %v, want %v", changed, want[:1])
	}
	data, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "вторая версия" {
		t.Errorf("content = %q", data)
	}

	// удалённый локально файл скачивается заново, даже если хеш совпал
	if err := os.Remove(want[1]); err != nil {
		t.Fatal(err)
	}
	changed, err = d.Download(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(changed, want[1:]) {
		t.Errorf("changed = %v, want %v", changed, want[1:])
	}

	entries, _ := os.ReadDir(dest)
	if len(entries) != 2 {
		t.Errorf("temporary files left: %v", entries)
	}
}

func TestDownloadMissingFile(t *testing.T) {
	var mu sync.Mutex
	srv := newServer(t, map[string]string{"ivt.xls": "x"}, &mu)

	d := New(srv.URL+"/", "", t.TempDir(), []string{".xls"}, &memStore{hashes: make(map[string]string)})
	if _, err := d.Download(context.Background()); err == nil {
		t.Fatal("expected error for file answering 404")
	}
}

func TestResolveBaseURL(t *testing.T) {
	d := New("https://istu.ru/raspisanie", "https://istu.ru/", "", nil, nil)
	got := d.resolve(nil, "/upload/ivt.xls")
	if got != "https://istu.ru/upload/ivt.xls" {
		t.Errorf("resolve = %q", got)
	}
	if got := d.resolve(nil, "https://cdn.istu.ru/a.xls"); got != "https://cdn.istu.ru/a.xls" {
		t.Errorf("absolute link changed: %q", got)
	}
	if got := fileName("https://istu.ru/files/%D0%BF%D0%B8.xls?v=2"); got != "пи.xls" {
		t.Errorf("fileName = %q", got)
	}
}

func TestFetchKeepsFilesInDest(t *testing.T) {
	// %252F после одного раскодирования - это "%2F", а не разделитель пути
	if got := fileName("https://istu.ru/files/..%252F..%252Fevil.xls"); got != "..%2F..%2Fevil.xls" {
		t.Fatalf("fileName = %q", got)
	}

	var mu sync.Mutex
	srv := newServer(t, map[string]string{"..%2F..%2Fevil.xls": "x"}, &mu)
	dest := t.TempDir()
	d := New(srv.URL+"/", "", dest, []string{".xls"}, &memStore{hashes: make(map[string]string)})

	target, updated, err := d.fetch(context.Background(), srv.URL+"/files/..%252F..%252Fevil.xls")
	if err != nil {
		t.Fatalf("fetch() error = %v", err)
	}
	if !updated || filepath.Dir(target) != dest {
		t.Errorf("target = %q, updated = %v, want file inside %q", target, updated, dest)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dest), "evil.xls")); err == nil {
		t.Error("file written outside the download directory")
	}

	if _, _, err := d.fetch(context.Background(), srv.URL+"/files/.."); err == nil {
		t.Error("expected error for \"..\" as file name")
	}
}

func TestSafeName(t *testing.T) {
	for name, want := range map[string]bool{
		"ivt.xls":            true,
		"пи.xls":             true,
		"..%2F..%2Fevil.xls": true,
		"":                   false,
		".":                  false,
		"..":                 false,
		"../evil.xls":        false,
		"a/b.xls":            false,
		`a\b.xls`:            false,
	} {
		if got := safeName(name); got != want {
			t.Errorf("safeName(%q) = %v, want %v", name, got, want)
		}
	}
}
