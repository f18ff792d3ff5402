package domain

import "time"

// SettingsKey is the sentinel value guarding the singleton settings row. A
// unique index on the column makes concurrent first access collapse into one
// row instead of two.
const SettingsKey = "site"

const (
	DefaultCompanyName = "XX Hotel Furniture Manufacturer"
	DefaultTheme       = "default"

	// LogoFilename is the canonical, extension-agnostic name the installed
	// logo lives under inside the logo bucket.
	LogoFilename = "company_logo"

	LogoMaxWidth  = 600
	LogoMaxHeight = 300
)

type SiteSettings struct {
	ID  uint   `gorm:"primaryKey"`
	Key string `gorm:"size:16;uniqueIndex;not null"`

	CompanyName string `gorm:"size:100"`
	Theme       string `gorm:"size:20"`
	Logo        string `gorm:"size:200"`

	SEOHomeTitle       string `gorm:"size:200"`
	SEOHomeDescription string `gorm:"type:text"`
	SEOHomeKeywords    string `gorm:"type:text"`

	SEOProductsTitle       string `gorm:"size:200"`
	SEOProductsDescription string `gorm:"type:text"`
	SEOProductsKeywords    string `gorm:"type:text"`

	SEOAboutTitle       string `gorm:"size:200"`
	SEOAboutDescription string `gorm:"type:text"`

	SEOContactTitle       string `gorm:"size:200"`
	SEOContactDescription string `gorm:"type:text"`

	UpdatedAt time.Time
}

// DefaultSettings returns the values a fresh installation starts with.
func DefaultSettings() SiteSettings {
	return SiteSettings{
		Key:         SettingsKey,
		CompanyName: DefaultCompanyName,
		Theme:       DefaultTheme,

		SEOHomeTitle:       "Home - Premium Hotel Furniture | {company_name}",
		SEOHomeDescription: "Professional hotel furniture manufacturer specializing in luxury beds, sofas, wardrobes and custom solutions for 5-star hotels worldwide.",
		SEOHomeKeywords:    "hotel furniture, luxury hotel beds, hotel sofas, custom hospitality furniture, hotel room furniture",

		SEOProductsTitle:       "Hotel Furniture Products | Beds, Sofas, Wardrobes - {company_name}",
		SEOProductsDescription: "Explore our complete collection of premium hotel furniture including beds, nightstands, sofas, wardrobes and custom case goods for luxury hospitality projects.",
		SEOProductsKeywords:    "hotel furniture products, hotel beds, hotel sofas, hotel wardrobes, luxury hotel furniture collection",

		SEOAboutTitle:       "About Us - {company_name} | Leading Hotel Furniture Manufacturer",
		SEOAboutDescription: "Learn about {company_name}, a professional hotel furniture manufacturer with years of experience in custom hospitality furniture design and production.",

		SEOContactTitle:       "Contact Us - {company_name} | Hotel Furniture Inquiry",
		SEOContactDescription: "Contact {company_name} for custom hotel furniture solutions, quotes, and partnership opportunities.",
	}
}
