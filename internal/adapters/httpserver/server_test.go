package httpserver

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/usecase"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/views"
)

type stubProductRepo struct {
	products []domain.Product
}

func (r *stubProductRepo) Save(_ context.Context, p *domain.Product) error {
	if p.ID == 0 {
		p.ID = uint(len(r.products) + 1)
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uint) (*domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubProductRepo) List(_ context.Context, f domain.ProductFilter) ([]domain.Product, int64, error) {
	return append([]domain.Product(nil), r.products...), int64(len(r.products)), nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uint) error { return nil }

func (r *stubProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	return false, nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

type stubCategoryRepo struct{}

func (stubCategoryRepo) All(_ context.Context) ([]domain.Category, error) { return nil, nil }
func (stubCategoryRepo) FindByName(_ context.Context, _ string) (*domain.Category, error) {
	return nil, domain.ErrNotFound
}
func (stubCategoryRepo) Save(_ context.Context, _ *domain.Category) error { return nil }
func (stubCategoryRepo) Count(_ context.Context) (int64, error)           { return 0, nil }

type stubSettingsRepo struct{ row *domain.SiteSettings }

func (r *stubSettingsRepo) Get(_ context.Context) (*domain.SiteSettings, error) {
	if r.row == nil {
		return nil, domain.ErrNotFound
	}
	return r.row, nil
}

func (r *stubSettingsRepo) GetOrInit(_ context.Context) (*domain.SiteSettings, error) {
	if r.row == nil {
		def := domain.DefaultSettings()
		def.ID = 1
		r.row = &def
	}
	return r.row, nil
}

func (r *stubSettingsRepo) Save(_ context.Context, s *domain.SiteSettings) error {
	r.row = s
	return nil
}

type stubAccountRepo struct{}

func (stubAccountRepo) FindByUsername(_ context.Context, _ string) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}
func (stubAccountRepo) FindByID(_ context.Context, _ uint) (*domain.Account, error) {
	return nil, domain.ErrNotFound
}
func (stubAccountRepo) Save(_ context.Context, _ *domain.Account) error { return nil }

type stubStorage struct{}

func (stubStorage) Save(_ context.Context, bucket, name string, _ []byte) (string, error) {
	return bucket + "/" + name, nil
}
func (stubStorage) Remove(_, _ string) error      { return nil }
func (stubStorage) Rename(_, _, _ string) error   { return nil }
func (stubStorage) URL(bucket, name string) string { return "/uploads/" + bucket + "/" + name }

func newTestHandler(t *testing.T, products *stubProductRepo, settings *stubSettingsRepo) http.Handler {
	t.Helper()
	tmpl, err := views.Templates()
	require.NoError(t, err)

	store := stubStorage{}
	key := []byte("0123456789abcdef0123456789abcdef")
	return New(Options{
		Templates: tmpl,
		Products:  &usecase.ProductUC{Products: products, Categories: stubCategoryRepo{}, Storage: store},
		Settings:  &usecase.SettingsUC{Settings: settings, Storage: store, ThemesDir: t.TempDir()},
		Auth:      &usecase.AuthUC{Accounts: stubAccountRepo{}},
		SEO:       &usecase.SEOUC{Settings: settings, Storage: store},
		Sessions:  sessions.NewCookieStore(key),
		StaticDir: t.TempDir(),
		CSRFKey:   key,
		Port:      "8080",
	})
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHomePage(t *testing.T) {
	products := &stubProductRepo{products: []domain.Product{
		{ID: 1, Code: "pc100000001", Name: "Classic Hotel King Bed"},
	}}
	h := newTestHandler(t, products, &stubSettingsRepo{})

	rec := get(h, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, domain.DefaultCompanyName)
	assert.Contains(t, body, "Classic Hotel King Bed")
	assert.Contains(t, body, "Home - Premium Hotel Furniture")
}

func TestUnknownPathIs404(t *testing.T) {
	h := newTestHandler(t, &stubProductRepo{}, &stubSettingsRepo{})

	rec := get(h, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found")
}

func TestProductDetail404(t *testing.T) {
	h := newTestHandler(t, &stubProductRepo{}, &stubSettingsRepo{})

	assert.Equal(t, http.StatusNotFound, get(h, "/products/999").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/products/bogus").Code)
}

func TestProductDetailTitle(t *testing.T) {
	products := &stubProductRepo{products: []domain.Product{
		{ID: 7, Code: "pc100000007", Name: "Lounge Chair"},
	}}
	settings := &stubSettingsRepo{}
	def := domain.DefaultSettings()
	def.CompanyName = "Acme Hospitality"
	settings.row = &def

	rec := get(newTestHandler(t, products, settings), "/products/7")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product Detail - Acme Hospitality")
}

func TestProductListing(t *testing.T) {
	h := newTestHandler(t, &stubProductRepo{}, &stubSettingsRepo{})

	rec := get(h, "/products")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No products found")
}

func TestAdminRequiresLogin(t *testing.T) {
	h := newTestHandler(t, &stubProductRepo{}, &stubSettingsRepo{})

	for _, path := range []string{"/admin/", "/admin/settings", "/admin/products", "/admin/change_password", "/admin/logout"} {
		rec := get(h, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"), path)
	}
}

func TestAdminLoginPageRenders(t *testing.T) {
	h := newTestHandler(t, &stubProductRepo{}, &stubSettingsRepo{})

	rec := get(h, "/admin/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Admin Login")
}

func TestCollectUploadsKeepsSlotOrder(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range []string{"a.jpg", " ", "c.png"} {
		fw, err := mw.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("data-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/products/add", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))

	// Every part keeps its slot, blank-ish names included, so the photo cap
	// downstream counts submitted entries, not usable ones.
	uploads := collectUploads(req, "photos")
	require.Len(t, uploads, 3)
	assert.Equal(t, "a.jpg", uploads[0].Name)
	assert.Equal(t, " ", uploads[1].Name)
	assert.Equal(t, "c.png", uploads[2].Name)
	assert.Equal(t, []byte("data-c.png"), uploads[2].Data)
}

func TestSecurityHeaders(t *testing.T) {
	h := newTestHandler(t, &stubProductRepo{}, &stubSettingsRepo{})

	rec := get(h, "/")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
