package usecase

import (
	"context"
	"strings"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

// Hard-coded fallbacks used when a stored SEO field is blank or the settings
// row does not exist yet. The about/contact keyword strings are never
// persisted; the original site always served these fixed values and the admin
// form never exposed them, so the asymmetry is kept.
const (
	fallbackHomeTitle       = "Home - Premium Hotel Furniture | {company_name}"
	fallbackHomeDescription = "Professional hotel furniture manufacturer specializing in luxury beds, sofas, wardrobes and custom solutions for 5-star hotels worldwide."
	fallbackHomeKeywords    = "hotel furniture, luxury hotel beds, hotel sofas, custom hospitality furniture, hotel room furniture"

	fallbackProductsTitle       = "Products | {company_name}"
	fallbackProductsDescription = "Explore our complete collection of premium hotel furniture including beds, nightstands, sofas, wardrobes and custom case goods for luxury hospitality projects."
	fallbackProductsKeywords    = "hotel furniture products, hotel beds, hotel sofas, hotel wardrobes, luxury hotel furniture collection"

	fallbackAboutTitle       = "About Us - {company_name} | Leading Hotel Furniture Manufacturer"
	fallbackAboutDescription = "Learn about {company_name}, a professional hotel furniture manufacturer with years of experience in custom hospitality furniture design and production."
	fallbackAboutKeywords    = "about hotel furniture manufacturer, hospitality furniture company, custom hotel furniture supplier"

	fallbackContactTitle       = "Contact Us - {company_name} | Hotel Furniture Inquiry"
	fallbackContactDescription = "Contact {company_name} for custom hotel furniture solutions, quotes, and partnership opportunities."
	fallbackContactKeywords    = "contact hotel furniture manufacturer, hotel furniture quote, hospitality furniture supplier"

	fallbackOtherDescription = "Premium hotel furniture solutions for luxury hospitality."
	fallbackOtherKeywords    = "hotel furniture, custom hotel furniture"

	// Keywords served before the settings row exists. Narrower than the
	// stored home default, matching the original behaviour.
	bareHomeKeywords = "hotel furniture, luxury hotel beds, hotel sofas, custom hospitality furniture"

	companyToken = "{company_name}"
)

// SEOUC resolves the display-string bundle for the page being rendered. It
// runs once per request, before template expansion.
type SEOUC struct {
	Settings domain.SettingsRepo
	Storage  domain.FileStorage
}

func (uc *SEOUC) Resolve(ctx context.Context, kind domain.PageKind) domain.SEOBundle {
	s, err := uc.Settings.Get(ctx)
	if err != nil {
		s = nil
	}
	b := ResolveBundle(kind, s)
	if s != nil && s.Logo != "" && uc.Storage != nil {
		b.LogoURL = uc.Storage.URL("logo", s.Logo)
	}
	return b
}

// ResolveBundle is the pure resolution step. A nil settings argument yields
// the fixed pre-initialization bundle.
func ResolveBundle(kind domain.PageKind, s *domain.SiteSettings) domain.SEOBundle {
	if s == nil {
		company := domain.DefaultCompanyName
		return domain.SEOBundle{
			CompanyName: company,
			Title:       subst(fallbackHomeTitle, company),
			Description: fallbackHomeDescription,
			Keywords:    bareHomeKeywords,
			Theme:       domain.DefaultTheme,
		}
	}

	company := s.CompanyName
	theme := s.Theme
	if theme == "" {
		theme = domain.DefaultTheme
	}

	b := domain.SEOBundle{CompanyName: company, Theme: theme}
	if s.Logo != "" {
		b.LogoURL = "/uploads/logo/" + s.Logo
	}

	switch kind {
	case domain.PageHome:
		b.Title = subst(orDefault(s.SEOHomeTitle, fallbackHomeTitle), company)
		b.Description = subst(orDefault(s.SEOHomeDescription, fallbackHomeDescription), company)
		b.Keywords = orDefault(s.SEOHomeKeywords, fallbackHomeKeywords)
	case domain.PageProductDetail:
		// Independent of the stored products title.
		b.Title = "Product Detail - " + company
		b.Description = subst(orDefault(s.SEOProductsDescription, fallbackProductsDescription), company)
		b.Keywords = orDefault(s.SEOProductsKeywords, fallbackProductsKeywords)
	case domain.PageProductListing:
		b.Title = subst(orDefault(s.SEOProductsTitle, fallbackProductsTitle), company)
		b.Description = subst(orDefault(s.SEOProductsDescription, fallbackProductsDescription), company)
		b.Keywords = orDefault(s.SEOProductsKeywords, fallbackProductsKeywords)
	case domain.PageAbout:
		b.Title = subst(orDefault(s.SEOAboutTitle, fallbackAboutTitle), company)
		b.Description = subst(orDefault(s.SEOAboutDescription, fallbackAboutDescription), company)
		b.Keywords = fallbackAboutKeywords
	case domain.PageContact:
		b.Title = subst(orDefault(s.SEOContactTitle, fallbackContactTitle), company)
		b.Description = subst(orDefault(s.SEOContactDescription, fallbackContactDescription), company)
		b.Keywords = fallbackContactKeywords
	default:
		b.Title = company + " | Professional Hotel Furniture Manufacturer"
		b.Description = fallbackOtherDescription
		b.Keywords = fallbackOtherKeywords
	}
	return b
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func subst(v, company string) string {
	return strings.ReplaceAll(v, companyToken, company)
}
