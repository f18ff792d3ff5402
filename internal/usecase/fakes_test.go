package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

// In-memory repo and storage fakes shared by the usecase tests.

type memProductRepo struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]*domain.Product

	// saveErr makes every Save fail when set.
	saveErr error
	// existsByCode overrides the default lookup when set.
	existsByCode func(code string) bool
	existsCalls  int
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{rows: map[uint]*domain.Product{}}
}

func (r *memProductRepo) Save(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	cp := *p
	r.rows[p.ID] = &cp
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []domain.Product
	for _, p := range r.rows {
		if f.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := (f.Page - 1) * f.PageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + f.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *memProductRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.existsCalls++
	if r.existsByCode != nil {
		return r.existsByCode(code), nil
	}
	for _, p := range r.rows {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type memCategoryRepo struct {
	cats []domain.Category
}

func (r *memCategoryRepo) All(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), r.cats...), nil
}

func (r *memCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.cats {
		if c.Name == name {
			cp := c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memCategoryRepo) Save(_ context.Context, c *domain.Category) error {
	if c.ID == 0 {
		c.ID = uint(len(r.cats) + 1)
	}
	r.cats = append(r.cats, *c)
	return nil
}

func (r *memCategoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.cats)), nil
}

type memSettingsRepo struct {
	mu  sync.Mutex
	row *domain.SiteSettings
}

func (r *memSettingsRepo) Get(_ context.Context) (*domain.SiteSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.row == nil {
		return nil, domain.ErrNotFound
	}
	cp := *r.row
	return &cp, nil
}

func (r *memSettingsRepo) GetOrInit(ctx context.Context) (*domain.SiteSettings, error) {
	r.mu.Lock()
	if r.row == nil {
		def := domain.DefaultSettings()
		def.ID = 1
		r.row = &def
	}
	r.mu.Unlock()
	return r.Get(ctx)
}

func (r *memSettingsRepo) Save(_ context.Context, s *domain.SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.row = &cp
	return nil
}

type memAccountRepo struct {
	mu   sync.Mutex
	rows map[uint]*domain.Account
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{rows: map[uint]*domain.Account{}}
}

func (r *memAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAccountRepo) FindByID(_ context.Context, id uint) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memAccountRepo) Save(_ context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == 0 {
		a.ID = uint(len(r.rows) + 1)
	}
	cp := *a
	r.rows[a.ID] = &cp
	return nil
}

type memStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStorage() *memStorage {
	return &memStorage{files: map[string][]byte{}}
}

func (s *memStorage) key(bucket, name string) string { return bucket + "/" + name }

func (s *memStorage) Save(_ context.Context, bucket, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[s.key(bucket, name)] = append([]byte(nil), data...)
	return s.key(bucket, name), nil
}

func (s *memStorage) Remove(bucket, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, s.key(bucket, name))
	return nil
}

func (s *memStorage) Rename(bucket, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[s.key(bucket, oldName)]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.files, s.key(bucket, oldName))
	s.files[s.key(bucket, newName)] = data
	return nil
}

func (s *memStorage) URL(bucket, name string) string {
	return "/uploads/" + bucket + "/" + name
}

func (s *memStorage) has(bucket, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[s.key(bucket, name)]
	return ok
}

func (s *memStorage) names(bucket string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for k := range s.files {
		if strings.HasPrefix(k, bucket+"/") {
			out = append(out, strings.TrimPrefix(k, bucket+"/"))
		}
	}
	sort.Strings(out)
	return out
}
