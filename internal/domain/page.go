package domain

// PageKind identifies which page is rendering. It is decided once at the
// routing layer and passed down; nothing below the handlers inspects URLs.
type PageKind int

const (
	PageOther PageKind = iota
	PageHome
	PageProductListing
	PageProductDetail
	PageAbout
	PageContact
)

func (k PageKind) String() string {
	switch k {
	case PageHome:
		return "home"
	case PageProductListing:
		return "products"
	case PageProductDetail:
		return "product_detail"
	case PageAbout:
		return "about"
	case PageContact:
		return "contact"
	default:
		return "other"
	}
}

// SEOBundle is the per-render set of display strings every template receives.
type SEOBundle struct {
	CompanyName string
	Title       string
	Description string
	Keywords    string
	LogoURL     string
	Theme       string
}
