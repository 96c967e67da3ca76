package utils

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalStorageSave(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStorage(root)

	got, err := s.Save("qr_codes/C001.png", []byte("png"), "image/png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got != "qr_codes/C001.png" {
		t.Errorf("path = %q, want qr_codes/C001.png", got)
	}

	b, err := os.ReadFile(filepath.Join(root, "qr_codes", "C001.png"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "png" {
		t.Errorf("content = %q", b)
	}
}

func TestLocalStorageOverwrites(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	if _, err := s.Save("qr_codes/C001.png", []byte("v1"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("qr_codes/C001.png", []byte("v2"), ""); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(filepath.Join(s.Root, "qr_codes", "C001.png"))
	if string(b) != "v2" {
		t.Errorf("content = %q, want v2", b)
	}
}

func TestLocalStorageRejectsEscapingPaths(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	for _, p := range []string{"../x.png", "/etc/passwd", "", "qr_codes/../../x"} {
		if _, err := s.Save(p, []byte("x"), ""); err == nil {
			t.Errorf("Save(%q) succeeded, want error", p)
		}
	}
}

func TestLocalStorageURL(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	if got := s.URL("qr_codes/C001.png"); got != "/media/qr_codes/C001.png" {
		t.Errorf("URL = %q", got)
	}
}

func TestSupabaseStorageSaveReturnsObjectPath(t *testing.T) {
	var gotMethod, gotPath, gotUpsert, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotUpsert, gotBody = r.Method, r.URL.Path, r.Header.Get("x-upsert"), string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Key":"court_survey/qr_codes/C001.png"}`))
	}))
	defer srv.Close()

	s := NewSupabaseStorage(srv.URL+"/", "service-key", "court_survey")
	got, err := s.Save("qr_codes/C001.png", []byte("png"), "image/png")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got != "qr_codes/C001.png" {
		t.Errorf("Save = %q, want the object path", got)
	}
	if gotMethod != http.MethodPost || gotPath != "/storage/v1/object/court_survey/qr_codes/C001.png" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if gotUpsert != "true" || gotBody != "png" {
		t.Errorf("x-upsert = %q, body = %q", gotUpsert, gotBody)
	}

	want := srv.URL + "/storage/v1/object/public/court_survey/qr_codes/C001.png"
	if u := s.URL(got); u != want {
		t.Errorf("URL = %q, want %q", u, want)
	}
}

func TestSupabaseStorageSaveUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"statusCode":"403","error":"Unauthorized","message":"denied"}`))
	}))
	defer srv.Close()

	s := NewSupabaseStorage(srv.URL, "bad-key", "court_survey")
	if _, err := s.Save("qr_codes/C001.png", []byte("png"), "image/png"); err == nil {
		t.Fatal("Save succeeded, want upload error")
	}
}
