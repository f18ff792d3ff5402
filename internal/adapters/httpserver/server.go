package httpserver

import (
	"encoding/gob"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"

	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/domain"
	"github.com/edouardlicn123/Hotel-furniture-company-site/internal/usecase"
)

const (
	publicPageSize = 10
	adminPageSize  = 10

	sessionName = "admin-session"
)

// FlashMessage is a one-shot notice carried in the session. Level is one of
// success, info, warning, danger.
type FlashMessage struct {
	Level   string
	Message string
}

func init() {
	gob.Register(FlashMessage{})
}

type Server struct {
	mux      *http.ServeMux
	tmpl     *template.Template
	products *usecase.ProductUC
	settings *usecase.SettingsUC
	auth     *usecase.AuthUC
	seo      *usecase.SEOUC
	sessions *sessions.CookieStore
}

type Options struct {
	Templates    *template.Template
	Products     *usecase.ProductUC
	Settings     *usecase.SettingsUC
	Auth         *usecase.AuthUC
	SEO          *usecase.SEOUC
	Sessions     *sessions.CookieStore
	StaticDir    string
	UploadsDir   string
	CSRFKey      []byte
	CookieSecure bool
	Port         string
}

func New(o Options) http.Handler {
	s := &Server{
		mux:      http.NewServeMux(),
		tmpl:     o.Templates,
		products: o.Products,
		settings: o.Settings,
		auth:     o.Auth,
		seo:      o.SEO,
		sessions: o.Sessions,
	}
	s.routes(o.StaticDir, o.UploadsDir)

	protect := csrf.Protect(
		o.CSRFKey,
		csrf.Secure(o.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + o.Port, "127.0.0.1:" + o.Port, "localhost", "127.0.0.1"}),
	)
	return Chain(protect(s.mux),
		RequestID,
		Recovery,
		SecurityHeaders,
		Logging,
	)
}

func (s *Server) routes(staticDir, uploadsDir string) {
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	s.mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/about", s.handleAbout)
	s.mux.HandleFunc("/contact", s.handleContact)
	s.mux.HandleFunc("/products", s.handleProducts)
	s.mux.HandleFunc("/products/", s.handleProducts)

	s.mux.HandleFunc("/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("/admin/logout", s.handleAdminLogout)
	s.mux.HandleFunc("/admin/", s.handleAdminIndex)
	s.mux.HandleFunc("/admin/settings", s.handleAdminSettings)
	s.mux.HandleFunc("/admin/products", s.handleAdminProducts)
	s.mux.HandleFunc("/admin/products/", s.handleAdminProductsSub)
	s.mux.HandleFunc("/admin/change_password", s.handleAdminChangePassword)
}

// render resolves the SEO bundle for the page kind and executes the template.
// Every page, public or admin, goes through here so the bundle is always in
// scope for the layout.
func (s *Server) render(w http.ResponseWriter, r *http.Request, kind domain.PageKind, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["SEO"] = s.seo.Resolve(r.Context(), kind)
	data["Year"] = time.Now().Year()
	if _, ok := data["Flashes"]; !ok {
		data["Flashes"] = s.popFlashes(w, r)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	s.render(w, r, domain.PageOther, "notfound.html", nil)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.renderNotFound(w, r)
		return
	}
	latest, _, err := s.products.List(r.Context(), domain.ProductFilter{Page: 1, PageSize: 6})
	if err != nil {
		log.Error().Err(err).Msg("home products")
	}
	s.render(w, r, domain.PageHome, "home.html", map[string]any{"Products": latest})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, domain.PageAbout, "about.html", nil)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, domain.PageContact, "contact.html", nil)
}

// handleProducts serves /products, /products/page/<n> and /products/<id>.
// The page kind is decided here, never inferred downstream.
func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/products"), "/")
	switch {
	case rest == "":
		s.listProducts(w, r, 1)
	case strings.HasPrefix(rest, "page/"):
		page, err := strconv.Atoi(strings.TrimPrefix(rest, "page/"))
		if err != nil || page < 1 {
			s.renderNotFound(w, r)
			return
		}
		s.listProducts(w, r, page)
	default:
		id, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			s.renderNotFound(w, r)
			return
		}
		s.showProduct(w, r, uint(id))
	}
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request, page int) {
	f := domain.ProductFilter{Page: page, PageSize: publicPageSize}
	if raw := r.URL.Query().Get("category"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			f.CategoryID = uint(id)
		}
	}
	list, total, err := s.products.List(r.Context(), f)
	if err != nil {
		log.Error().Err(err).Msg("list products")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	cats, err := s.products.Categories.All(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list categories")
	}
	s.render(w, r, domain.PageProductListing, "products.html", map[string]any{
		"Products":   list,
		"Categories": cats,
		"Category":   f.CategoryID,
		"Page":       page,
		"Pages":      pageCount(total, publicPageSize),
		"Total":      total,
	})
}

func (s *Server) showProduct(w http.ResponseWriter, r *http.Request, id uint) {
	p, err := s.products.Get(r.Context(), id)
	if err != nil {
		if usecase.IsNotFound(err) {
			s.renderNotFound(w, r)
			return
		}
		log.Error().Err(err).Uint("id", id).Msg("product detail")
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, domain.PageProductDetail, "product_detail.html", map[string]any{"Product": p})
}

func pageCount(total int64, size int) int {
	pages := int(total+int64(size)-1) / size
	if pages == 0 {
		pages = 1
	}
	return pages
}

// --- session helpers ---

func (s *Server) flash(w http.ResponseWriter, r *http.Request, level, msg string) {
	sess, _ := s.sessions.Get(r, sessionName)
	sess.AddFlash(FlashMessage{Level: level, Message: msg})
	if err := sess.Save(r, w); err != nil {
		log.Error().Err(err).Msg("save session")
	}
}

func (s *Server) popFlashes(w http.ResponseWriter, r *http.Request) []FlashMessage {
	sess, _ := s.sessions.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	out := make([]FlashMessage, 0, len(raw))
	for _, f := range raw {
		if fm, ok := f.(FlashMessage); ok {
			out = append(out, fm)
		}
	}
	_ = sess.Save(r, w)
	return out
}

func (s *Server) currentAccountID(r *http.Request) (uint, bool) {
	sess, _ := s.sessions.Get(r, sessionName)
	auth, _ := sess.Values["authenticated"].(bool)
	id, okID := sess.Values["account_id"].(uint)
	if !auth || !okID {
		return 0, false
	}
	return id, true
}

// requireAdmin gates every admin page except login. Unauthenticated access
// redirects to the login form with a warning flash.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := s.currentAccountID(r)
	if !ok {
		s.flash(w, r, "warning", "Please log in to access the admin panel.")
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return 0, false
	}
	return id, true
}
