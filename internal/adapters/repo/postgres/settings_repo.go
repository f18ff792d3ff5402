package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

type SettingsRepo struct{ db *gorm.DB }

func NewSettingsRepo(db *gorm.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context) (*domain.SiteSettings, error) {
	var s domain.SiteSettings
	if err := r.db.WithContext(ctx).First(&s, "key = ?", domain.SettingsKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetOrInit creates the singleton with defaults on first access. The insert
// ignores a key conflict, so two racing first requests both end up reading
// the one row the unique index allows.
func (r *SettingsRepo) GetOrInit(ctx context.Context) (*domain.SiteSettings, error) {
	s, err := r.Get(ctx)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	def := domain.DefaultSettings()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&def).Error; err != nil {
		return nil, err
	}
	return r.Get(ctx)
}

func (r *SettingsRepo) Save(ctx context.Context, s *domain.SiteSettings) error {
	return r.db.WithContext(ctx).Save(s).Error
}
