package domain

import "context"

type ProductRepo interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)
	Delete(ctx context.Context, id uint) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type CategoryRepo interface {
	All(ctx context.Context) ([]Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	Save(ctx context.Context, c *Category) error
	Count(ctx context.Context) (int64, error)
}

type SettingsRepo interface {
	// Get returns the singleton row or ErrNotFound.
	Get(ctx context.Context) (*SiteSettings, error)
	// GetOrInit returns the singleton row, creating it with defaults on
	// first access. Safe under concurrent first access.
	GetOrInit(ctx context.Context) (*SiteSettings, error)
	Save(ctx context.Context, s *SiteSettings) error
}

type AccountRepo interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	Save(ctx context.Context, a *Account) error
}

// FileStorage is directory-scoped asset storage. Buckets are logical
// directories ("products", "logo"); names never come straight from clients.
type FileStorage interface {
	Save(ctx context.Context, bucket, name string, data []byte) (string, error)
	Remove(bucket, name string) error
	Rename(bucket, oldName, newName string) error
	URL(bucket, name string) string
}
