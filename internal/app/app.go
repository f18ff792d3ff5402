package app

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/adapters/httpserver"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/adapters/repo/postgres"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/adapters/storage/localfs"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/config"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/usecase"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/views"
)

const (
	seedAdminUser     = "admin"
	seedAdminPassword = "admin123"
)

// App owns the wired object graph. Nothing reaches for globals; everything
// hangs off this struct.
type App struct {
	DB   *gorm.DB
	Cfg  *config.Config
	Tmpl *template.Template

	ProductUC  *usecase.ProductUC
	SettingsUC *usecase.SettingsUC
	AuthUC     *usecase.AuthUC
	SEOUC      *usecase.SEOUC

	Storage  *localfs.Storage
	Sessions *sessions.CookieStore
}

func NewApp(db *gorm.DB, cfg *config.Config) (*App, error) {
	prodRepo := postgres.NewProductRepo(db)
	catRepo := postgres.NewCategoryRepo(db)
	setRepo := postgres.NewSettingsRepo(db)
	accRepo := postgres.NewAccountRepo(db)

	if err := os.MkdirAll(cfg.StorageDir, 0o755); err != nil {
		return nil, err
	}
	storage := localfs.New(cfg.StorageDir)

	store := sessions.NewCookieStore(cfg.SessionKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, err
	}

	app := &App{
		DB:       db,
		Cfg:      cfg,
		Tmpl:     tmpl,
		Storage:  storage,
		Sessions: store,
	}
	app.ProductUC = &usecase.ProductUC{Products: prodRepo, Categories: catRepo, Storage: storage}
	app.SettingsUC = &usecase.SettingsUC{Settings: setRepo, Storage: storage, ThemesDir: cfg.ThemesDir}
	app.AuthUC = &usecase.AuthUC{Accounts: accRepo}
	app.SEOUC = &usecase.SEOUC{Settings: setRepo, Storage: storage}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(httpserver.Options{
		Templates:    a.Tmpl,
		Products:     a.ProductUC,
		Settings:     a.SettingsUC,
		Auth:         a.AuthUC,
		SEO:          a.SEOUC,
		Sessions:     a.Sessions,
		StaticDir:    a.Cfg.StaticDir,
		UploadsDir:   a.Cfg.StorageDir,
		CSRFKey:      a.Cfg.CSRFKey,
		CookieSecure: a.Cfg.CookieSecure,
		Port:         a.Cfg.Port,
	})
}

// MigrateAndSeed creates the schema and fills an empty database with the
// stock admin account, settings row, category taxonomy and a few showcase
// products. Seeding is idempotent; existing rows are left alone.
func (a *App) MigrateAndSeed() error {
	if err := a.DB.AutoMigrate(
		&domain.Account{}, &domain.SiteSettings{}, &domain.Category{}, &domain.Product{},
	); err != nil {
		return err
	}

	ctx := context.Background()
	accRepo := postgres.NewAccountRepo(a.DB)
	if _, err := accRepo.FindByUsername(ctx, seedAdminUser); errors.Is(err, domain.ErrNotFound) {
		hash, err := usecase.HashPassword(seedAdminPassword)
		if err != nil {
			return err
		}
		if err := accRepo.Save(ctx, &domain.Account{Username: seedAdminUser, Password: hash}); err != nil {
			return err
		}
		log.Info().Str("username", seedAdminUser).Msg("seeded admin account, change the password after first login")
	} else if err != nil {
		return err
	}

	if _, err := a.SettingsUC.GetOrInit(ctx); err != nil {
		return err
	}

	if err := a.seedCategories(ctx); err != nil {
		return err
	}
	return a.seedProducts(ctx)
}

// seedCategories inserts the hotel furniture taxonomy: loose furniture first,
// then fixed furniture.
func (a *App) seedCategories(ctx context.Context) error {
	catRepo := postgres.NewCategoryRepo(a.DB)
	n, err := catRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	names := []string{
		"Beds",
		"Nightstands/Bedside Tables",
		"Sofas and Armchairs",
		"Coffee Tables/Tea Tables",
		"Lounge Chairs/Ottomans",
		"Desk Chairs/Writing Chairs",
		"Dining Chairs",
		"Luggage Racks/Benches",
		"Side Tables/End Tables",
		"Accent Chairs",
		"Headboards",
		"Wardrobes/Closets/Armoires",
		"Built-in Desks/Writing Tables",
		"TV Cabinets/Entertainment Units",
		"Dressers/Chests of Drawers",
		"Vanities/Bathroom Cabinets",
		"Built-in Minibars",
		"Wall Panels/Decorative Paneling",
		"Fixed Shelving/Storage Units",
		"Console Tables (wall-fixed)",
	}
	for _, name := range names {
		if err := catRepo.Save(ctx, &domain.Category{Name: name}); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(names)).Msg("seeded categories")
	return nil
}

func (a *App) seedProducts(ctx context.Context) error {
	prodRepo := postgres.NewProductRepo(a.DB)
	catRepo := postgres.NewCategoryRepo(a.DB)
	n, err := prodRepo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	catID := func(name string) *uint {
		c, err := catRepo.FindByName(ctx, name)
		if err != nil {
			return nil
		}
		id := c.ID
		return &id
	}
	mm := func(v int) *int { return &v }

	seeds := []domain.Product{
		{
			Code:            "pc897421976",
			Name:            "Bed",
			Description:     "Bed for rooms",
			Image:           "product1.png",
			Photos:          "product1.png",
			BaseMaterial:    "wood",
			SurfaceMaterial: "cloth",
			FeaturedSeries:  "basic1",
			ApplicableSpace: "room",
			CategoryID:      catID("Beds"),
		},
		{
			Code:            "pc678534762",
			Name:            "Bed",
			Description:     "Bed for rooms",
			Image:           "product2.png",
			Photos:          "product2.png",
			BaseMaterial:    "wood",
			SurfaceMaterial: "cloth",
			FeaturedSeries:  "basic2",
			ApplicableSpace: "room",
			CategoryID:      catID("Beds"),
		},
		{
			Code:            "pc453589563",
			Name:            "nightstand",
			Image:           "product3.png",
			Photos:          "product3.png",
			LengthMM:        mm(550),
			WidthMM:         mm(400),
			HeightMM:        mm(600),
			BaseMaterial:    "wood",
			SurfaceMaterial: "wood",
			FeaturedSeries:  "basic1",
			ApplicableSpace: "room",
			CategoryID:      catID("Nightstands/Bedside Tables"),
		},
		{
			Code:            "pc416738421",
			Name:            "luggage rack",
			Image:           "product4.png",
			Photos:          "product4.png",
			LengthMM:        mm(1200),
			WidthMM:         mm(400),
			HeightMM:        mm(450),
			BaseMaterial:    "metal and foam",
			SurfaceMaterial: "cloth",
			ApplicableSpace: "room",
			CategoryID:      catID("Luggage Racks/Benches"),
		},
		{
			Code:            "pc412456345",
			Name:            "coffee table",
			Image:           "product5.png",
			Photos:          "product5.png",
			LengthMM:        mm(800),
			WidthMM:         mm(800),
			HeightMM:        mm(450),
			BaseMaterial:    "wood",
			ApplicableSpace: "lounge",
			CategoryID:      catID("Coffee Tables/Tea Tables"),
		},
	}
	for i := range seeds {
		if err := prodRepo.Save(ctx, &seeds[i]); err != nil {
			return err
		}
	}
	log.Info().Int("count", len(seeds)).Msg("seeded products")
	return nil
}
