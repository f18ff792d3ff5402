package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndURL(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	rel, err := s.Save(ctx, "products", "pc1-1.jpg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("products", "pc1-1.jpg"), rel)

	got, err := os.ReadFile(filepath.Join(s.Root(), "products", "pc1-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	assert.Equal(t, "/uploads/products/pc1-1.jpg", s.URL("products", "pc1-1.jpg"))
}

func TestSaveFlattensTraversal(t *testing.T) {
	root := t.TempDir()
	s := New(root)

	_, err := s.Save(context.Background(), "logo", "../../etc/passwd", []byte("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(root, "logo", "passwd"))
	assert.NoError(t, err, "name should be flattened into the bucket")
	_, err = os.Stat(filepath.Join(root, "..", "etc", "passwd"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveMissingIsNil(t *testing.T) {
	s := New(t.TempDir())
	assert.NoError(t, s.Remove("products", "nope.jpg"))
}

func TestRename(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	_, err := s.Save(ctx, "logo", "company_logo.tmp-x", []byte("logo"))
	require.NoError(t, err)
	require.NoError(t, s.Rename("logo", "company_logo.tmp-x", "company_logo"))

	got, err := os.ReadFile(filepath.Join(s.Root(), "logo", "company_logo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("logo"), got)

	_, err = os.Stat(filepath.Join(s.Root(), "logo", "company_logo.tmp-x"))
	assert.True(t, os.IsNotExist(err))
}
