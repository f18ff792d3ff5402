package httpserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.currentAccountID(r); ok {
		http.Redirect(w, r, "/admin/", http.StatusSeeOther)
		return
	}
	if r.Method == http.MethodGet {
		s.render(w, r, domain.PageOther, "admin_login.html", map[string]any{
			"CSRFField": csrf.TemplateField(r),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	acc, err := s.auth.Login(r.Context(), strings.TrimSpace(r.FormValue("username")), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			s.flash(w, r, "danger", "Invalid username or password.")
		} else {
			log.Error().Err(err).Msg("login")
			s.flash(w, r, "danger", "Login failed, please try again.")
		}
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}
	sess, _ := s.sessions.Get(r, sessionName)
	sess.Values["authenticated"] = true
	sess.Values["account_id"] = acc.ID
	if err := sess.Save(r, w); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/", http.StatusSeeOther)
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	sess, _ := s.sessions.Get(r, sessionName)
	sess.Values["authenticated"] = false
	delete(sess.Values, "account_id")
	_ = sess.Save(r, w)
	s.flash(w, r, "info", "Logged out.")
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

func (s *Server) handleAdminIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/admin/" && r.URL.Path != "/admin" {
		s.renderNotFound(w, r)
		return
	}
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	nProducts, err := s.products.Products.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("count products")
	}
	nCategories, err := s.products.Categories.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("count categories")
	}
	s.render(w, r, domain.PageOther, "admin_index.html", map[string]any{
		"ProductCount":  nProducts,
		"CategoryCount": nCategories,
	})
}

func (s *Server) handleAdminSettings(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	ctx := r.Context()
	st, err := s.settings.GetOrInit(ctx)
	if err != nil {
		log.Error().Err(err).Msg("settings")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	themes := s.settings.AvailableThemes()

	if r.Method == http.MethodGet {
		s.render(w, r, domain.PageOther, "admin_settings.html", map[string]any{
			"Settings":  st,
			"Themes":    themes,
			"CSRFField": csrf.TemplateField(r),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.flash(w, r, "danger", "Upload too large.")
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	st.CompanyName = strings.TrimSpace(r.FormValue("company_name"))
	st.Theme = r.FormValue("theme")

	st.SEOHomeTitle = r.FormValue("seo_home_title")
	st.SEOHomeDescription = r.FormValue("seo_home_description")
	st.SEOHomeKeywords = r.FormValue("seo_home_keywords")
	st.SEOProductsTitle = r.FormValue("seo_products_title")
	st.SEOProductsDescription = r.FormValue("seo_products_description")
	st.SEOProductsKeywords = r.FormValue("seo_products_keywords")
	st.SEOAboutTitle = r.FormValue("seo_about_title")
	st.SEOAboutDescription = r.FormValue("seo_about_description")
	st.SEOContactTitle = r.FormValue("seo_contact_title")
	st.SEOContactDescription = r.FormValue("seo_contact_description")

	if uploads := collectUploads(r, "logo"); len(uploads) > 0 {
		if err := s.settings.InstallLogo(ctx, st, uploads[0].Data); err != nil {
			var sizeErr *domain.ImageSizeError
			if errors.As(err, &sizeErr) {
				s.flash(w, r, "danger", fmt.Sprintf("Logo is %dx%d, maximum is %dx%d. Please upload a smaller image.",
					sizeErr.Width, sizeErr.Height, sizeErr.MaxWidth, sizeErr.MaxHeight))
			} else {
				log.Error().Err(err).Msg("install logo")
				s.flash(w, r, "danger", "Image processing failed.")
			}
		} else {
			s.flash(w, r, "success", "Logo updated.")
		}
	}

	if err := s.settings.Save(ctx, st); err != nil {
		log.Error().Err(err).Msg("save settings")
		s.flash(w, r, "danger", "Saving settings failed.")
	} else {
		s.flash(w, r, "success", "Site settings saved.")
	}
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	s.adminProductList(w, r, 1)
}

// handleAdminProductsSub serves /admin/products/{page/<n>|add|edit/<id>|delete/<id>|export}.
func (s *Server) handleAdminProductsSub(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/admin/products"), "/")
	switch {
	case rest == "":
		s.adminProductList(w, r, 1)
	case strings.HasPrefix(rest, "page/"):
		page, err := strconv.Atoi(strings.TrimPrefix(rest, "page/"))
		if err != nil || page < 1 {
			s.renderNotFound(w, r)
			return
		}
		s.adminProductList(w, r, page)
	case rest == "add":
		s.adminProductAdd(w, r)
	case rest == "export":
		s.adminProductExport(w, r)
	case strings.HasPrefix(rest, "edit/"):
		s.adminProductEdit(w, r, strings.TrimPrefix(rest, "edit/"))
	case strings.HasPrefix(rest, "delete/"):
		s.adminProductDelete(w, r, strings.TrimPrefix(rest, "delete/"))
	default:
		s.renderNotFound(w, r)
	}
}

func (s *Server) adminProductList(w http.ResponseWriter, r *http.Request, page int) {
	list, total, err := s.products.List(r.Context(), domain.ProductFilter{Page: page, PageSize: adminPageSize})
	if err != nil {
		log.Error().Err(err).Msg("admin product list")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, domain.PageOther, "admin_products.html", map[string]any{
		"Products":  list,
		"Page":      page,
		"Pages":     pageCount(total, adminPageSize),
		"Total":     total,
		"CSRFField": csrf.TemplateField(r),
	})
}

func (s *Server) adminProductAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cats, err := s.products.Categories.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("categories")
	}
	if r.Method == http.MethodGet {
		s.render(w, r, domain.PageOther, "admin_product_form.html", map[string]any{
			"Product":          nil,
			"Categories":       cats,
			"SelectedCategory": uint(0),
			"CSRFField":        csrf.TemplateField(r),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.flash(w, r, "danger", "Upload too large.")
		http.Redirect(w, r, "/admin/products/add", http.StatusSeeOther)
		return
	}
	var p domain.Product
	if !s.fillProductForm(w, r, &p) {
		http.Redirect(w, r, "/admin/products/add", http.StatusSeeOther)
		return
	}
	uploads := collectUploads(r, "photos")
	if err := s.products.Create(ctx, &p, uploads); err != nil {
		log.Error().Err(err).Msg("create product")
		if errors.Is(err, domain.ErrCodeExhausted) {
			s.flash(w, r, "danger", "Could not allocate a product code, please retry.")
		} else {
			s.flash(w, r, "danger", "Creating the product failed.")
		}
		http.Redirect(w, r, "/admin/products/add", http.StatusSeeOther)
		return
	}
	s.flash(w, r, "success", fmt.Sprintf("Product added, %d photo(s) uploaded.", len(p.PhotoList())))
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) adminProductEdit(w http.ResponseWriter, r *http.Request, rawID string) {
	ctx := r.Context()
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	p, err := s.products.Get(ctx, uint(id))
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	cats, err := s.products.Categories.All(ctx)
	if err != nil {
		log.Error().Err(err).Msg("categories")
	}
	if r.Method == http.MethodGet {
		var selected uint
		if p.CategoryID != nil {
			selected = *p.CategoryID
		}
		s.render(w, r, domain.PageOther, "admin_product_form.html", map[string]any{
			"Product":          p,
			"Categories":       cats,
			"SelectedCategory": selected,
			"CSRFField":        csrf.TemplateField(r),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.flash(w, r, "danger", "Upload too large.")
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}
	if !s.fillProductForm(w, r, p) {
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}
	uploads := collectUploads(r, "photos")
	if err := s.products.Update(ctx, p, uploads); err != nil {
		log.Error().Err(err).Uint("id", p.ID).Msg("update product")
		s.flash(w, r, "danger", "Saving the product failed.")
		http.Redirect(w, r, r.URL.Path, http.StatusSeeOther)
		return
	}
	s.flash(w, r, "success", "Product saved.")
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) adminProductDelete(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil {
		s.renderNotFound(w, r)
		return
	}
	if err := s.products.Delete(r.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.flash(w, r, "warning", "Product not found.")
		} else {
			log.Error().Err(err).Uint64("id", id).Msg("delete product")
			s.flash(w, r, "danger", "Deleting the product failed.")
		}
	} else {
		s.flash(w, r, "success", "Product deleted.")
	}
	http.Redirect(w, r, "/admin/products", http.StatusSeeOther)
}

func (s *Server) handleAdminChangePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method == http.MethodGet {
		s.render(w, r, domain.PageOther, "admin_change_password.html", map[string]any{
			"CSRFField": csrf.TemplateField(r),
		})
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	err := s.auth.ChangePassword(r.Context(), accountID,
		r.FormValue("old_password"), r.FormValue("new_password"), r.FormValue("confirm_password"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWrongPassword),
			errors.Is(err, domain.ErrPasswordMismatch),
			errors.Is(err, domain.ErrPasswordTooShort):
			s.flash(w, r, "danger", capitalize(err.Error())+".")
		default:
			log.Error().Err(err).Msg("change password")
			s.flash(w, r, "danger", "Changing the password failed.")
		}
		http.Redirect(w, r, "/admin/change_password", http.StatusSeeOther)
		return
	}
	// New password is live; force a fresh login.
	sess, _ := s.sessions.Get(r, sessionName)
	sess.Values["authenticated"] = false
	delete(sess.Values, "account_id")
	_ = sess.Save(r, w)
	s.flash(w, r, "success", "Password changed, please log in again.")
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// fillProductForm copies validated form values onto p. Returns false after
// flashing when a required field is missing.
func (s *Server) fillProductForm(w http.ResponseWriter, r *http.Request, p *domain.Product) bool {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		s.flash(w, r, "danger", "Product name is required.")
		return false
	}
	p.Name = name
	p.Description = strings.TrimSpace(r.FormValue("description"))
	p.LengthMM = formInt(r, "length")
	p.WidthMM = formInt(r, "width")
	p.HeightMM = formInt(r, "height")
	p.SeatHeightMM = formInt(r, "seat_height")
	p.BaseMaterial = strings.TrimSpace(r.FormValue("base_material"))
	p.SurfaceMaterial = strings.TrimSpace(r.FormValue("surface_material"))
	p.FeaturedSeries = strings.TrimSpace(r.FormValue("featured_series"))
	p.ApplicableSpace = strings.TrimSpace(r.FormValue("applicable_space"))

	catID, err := s.products.ResolveCategory(r.Context(), r.FormValue("category_id"))
	if err != nil {
		log.Error().Err(err).Msg("resolve category")
	}
	p.CategoryID = catID
	p.Category = nil
	return true
}

func formInt(r *http.Request, field string) *int {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// collectUploads reads the files submitted under field into memory, one slot
// per submitted part in input order. Nothing is dropped here: the photo saver
// caps the raw list before skipping blank names, so every part must keep its
// slot. Unreadable parts stay in place with a cleared name.
func collectUploads(r *http.Request, field string) []domain.Upload {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[field]
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		up := domain.Upload{Name: fh.Filename}
		f, err := fh.Open()
		if err != nil {
			log.Warn().Err(err).Str("file", fh.Filename).Msg("open upload")
			up.Name = ""
			uploads = append(uploads, up)
			continue
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			log.Warn().Err(err).Str("file", fh.Filename).Msg("read upload")
			up.Name = ""
			uploads = append(uploads, up)
			continue
		}
		up.Data = data
		uploads = append(uploads, up)
	}
	return uploads
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
