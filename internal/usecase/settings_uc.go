package usecase

import (
	"bytes"
	"context"
	"image"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

const logoBucket = "logo"

type SettingsUC struct {
	Settings  domain.SettingsRepo
	Storage   domain.FileStorage
	ThemesDir string
}

// GetOrInit returns the singleton settings row, creating it with defaults on
// first admin access. A stored theme that no longer matches an installed
// style sheet is silently reset to the default and persisted.
func (uc *SettingsUC) GetOrInit(ctx context.Context) (*domain.SiteSettings, error) {
	s, err := uc.Settings.GetOrInit(ctx)
	if err != nil {
		return nil, err
	}
	themes := uc.AvailableThemes()
	if s.Theme != "" && !contains(themes, s.Theme) {
		s.Theme = domain.DefaultTheme
		if err := uc.Settings.Save(ctx, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AvailableThemes scans the themes directory for *.css style sheets. The
// default theme is always offered; variables.css is shared plumbing, not a
// theme.
func (uc *SettingsUC) AvailableThemes() []string {
	themes := []string{domain.DefaultTheme}
	entries, err := os.ReadDir(uc.ThemesDir)
	if err != nil {
		log.Warn().Err(err).Str("dir", uc.ThemesDir).Msg("read themes dir")
		return themes
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".css") || name == "variables.css" {
			continue
		}
		t := strings.TrimSuffix(name, ".css")
		if t != domain.DefaultTheme {
			themes = append(themes, t)
		}
	}
	sort.Strings(themes)
	return themes
}

// Save persists the settings form, forcing an unknown theme back to default.
func (uc *SettingsUC) Save(ctx context.Context, s *domain.SiteSettings) error {
	if !contains(uc.AvailableThemes(), s.Theme) {
		s.Theme = domain.DefaultTheme
	}
	return uc.Settings.Save(ctx, s)
}

// InstallLogo validates and atomically installs a new logo. The upload is
// written to a temporary name first; a decode failure or a footprint above
// 600x300 removes the temporary file and leaves the previously installed
// logo untouched. On success the old file is replaced and s.Logo is set (the
// caller still commits the row).
func (uc *SettingsUC) InstallLogo(ctx context.Context, s *domain.SiteSettings, data []byte) error {
	tmp := domain.LogoFilename + ".tmp-" + uuid.NewString()
	if _, err := uc.Storage.Save(ctx, logoBucket, tmp, data); err != nil {
		return err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		_ = uc.Storage.Remove(logoBucket, tmp)
		return err
	}
	if cfg.Width > domain.LogoMaxWidth || cfg.Height > domain.LogoMaxHeight {
		_ = uc.Storage.Remove(logoBucket, tmp)
		return &domain.ImageSizeError{
			Width: cfg.Width, Height: cfg.Height,
			MaxWidth: domain.LogoMaxWidth, MaxHeight: domain.LogoMaxHeight,
		}
	}

	_ = uc.Storage.Remove(logoBucket, domain.LogoFilename)
	if err := uc.Storage.Rename(logoBucket, tmp, domain.LogoFilename); err != nil {
		_ = uc.Storage.Remove(logoBucket, tmp)
		return err
	}
	s.Logo = domain.LogoFilename
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
