// Package localfs stores uploaded assets on the local filesystem under
// per-bucket directories ("products", "logo").
package localfs

import (
	"context"
	"os"
	"path/filepath"
)

type Storage struct{ root string }

func New(root string) *Storage { return &Storage{root: root} }

// Save writes data under root/bucket/name and returns the path relative to
// root. Names are flattened to their base so a crafted name cannot escape
// the bucket.
func (s *Storage) Save(_ context.Context, bucket, name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, clean(bucket))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name = clean(name)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return filepath.Join(clean(bucket), name), nil
}

func (s *Storage) Remove(bucket, name string) error {
	err := os.Remove(filepath.Join(s.root, clean(bucket), clean(name)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Storage) Rename(bucket, oldName, newName string) error {
	dir := filepath.Join(s.root, clean(bucket))
	return os.Rename(filepath.Join(dir, clean(oldName)), filepath.Join(dir, clean(newName)))
}

func (s *Storage) URL(bucket, name string) string {
	return "/uploads/" + clean(bucket) + "/" + clean(name)
}

// Root is the directory the HTTP layer serves under /uploads/.
func (s *Storage) Root() string { return s.root }

func clean(name string) string {
	return filepath.Base(filepath.Clean(name))
}
