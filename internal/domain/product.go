package domain

import (
	"strings"
	"time"
)

// MaxProductPhotos caps how many uploaded photos a product keeps.
const MaxProductPhotos = 10

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
}

type Product struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:12;uniqueIndex;not null"`
	Name string `gorm:"size:200;not null"`

	Description string `gorm:"type:text"`

	// Image is the primary photo, always the first entry of Photos.
	Image  string `gorm:"size:200"`
	Photos string `gorm:"size:1000"`

	LengthMM     *int
	WidthMM      *int
	HeightMM     *int
	SeatHeightMM *int

	BaseMaterial    string `gorm:"size:100"`
	SurfaceMaterial string `gorm:"size:100"`

	FeaturedSeries  string `gorm:"size:200"`
	ApplicableSpace string `gorm:"size:200"`

	CategoryID *uint `gorm:"index"`
	Category   *Category

	CreatedAt time.Time
}

// PhotoList splits the comma-joined Photos column, dropping empty entries.
func (p *Product) PhotoList() []string {
	if strings.TrimSpace(p.Photos) == "" {
		return nil
	}
	parts := strings.Split(p.Photos, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SetPhotos stores the list comma-joined and keeps Image pointed at the first
// entry. An empty list clears both columns.
func (p *Product) SetPhotos(names []string) {
	if len(names) == 0 {
		p.Photos = ""
		p.Image = ""
		return
	}
	p.Photos = strings.Join(names, ",")
	p.Image = names[0]
}

type ProductFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
}

// Upload is one file received from a multipart form.
type Upload struct {
	Name string
	Data []byte
}
