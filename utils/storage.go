package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

// FileStorage lưu file (ảnh QR, ...). Save trả về đường dẫn object để ghi vào DB,
// URL dựng link công khai từ đường dẫn đó khi đọc.
type FileStorage interface {
	Save(path string, data []byte, contentType string) (string, error)
	URL(path string) string
}

// MediaURLPrefix là nơi main phục vụ thư mục media của LocalStorage.
const MediaURLPrefix = "/media/"

// LocalStorage lưu file dưới thư mục media, trả về đường dẫn tương đối.
type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{Root: root}
}

func (s *LocalStorage) Save(path string, data []byte, _ string) (string, error) {
	rel := filepath.Clean(filepath.FromSlash(path))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("đường dẫn không hợp lệ: %q", path)
	}

	full := filepath.Join(s.Root, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func (s *LocalStorage) URL(path string) string {
	return MediaURLPrefix + strings.TrimLeft(path, "/")
}

// SupabaseStorage upload lên một bucket của Supabase Storage.
type SupabaseStorage struct {
	client *storage.Client
	bucket string
}

func NewSupabaseStorage(supabaseURL, supabaseKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		client: storage.NewClient(strings.TrimRight(supabaseURL, "/")+"/storage/v1", supabaseKey, nil),
		bucket: bucket,
	}
}

func (s *SupabaseStorage) Save(path string, data []byte, contentType string) (string, error) {
	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), options); err != nil {
		return "", fmt.Errorf("upload %s: %w", path, err)
	}

	return path, nil
}

func (s *SupabaseStorage) URL(path string) string {
	return s.client.GetPublicUrl(s.bucket, path).SignedURL
}
