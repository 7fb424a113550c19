package webclient

import (
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenCookie mirrors the bearer token for page guards; the API itself
// only ever reads the Authorization header.
const TokenCookie = "auth_token"

const tokenMaxAge = 7 * 24 * time.Hour

// Server renders the pages and proxies form submissions to the REST API.
type Server struct {
	api  *APIClient
	tmpl map[string]*template.Template
	log  *logrus.Logger
}

func New(apiURL, templateDir string, log *logrus.Logger) (*Server, error) {
	templates := map[string]*template.Template{}
	layout := filepath.Join(templateDir, "layout.html")
	pages, err := filepath.Glob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if filepath.Base(page) == "layout.html" {
			continue
		}
		t, err := template.ParseFiles(layout, page)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(page), ".html")
		templates[name] = t
	}

	return &Server{
		api:  NewAPIClient(apiURL),
		tmpl: templates,
		log:  log,
	}, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/register", s.handleRegister)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/dashboard", s.requireToken(s.handleDashboard))
	mux.HandleFunc("/articles/new", s.requireToken(s.handleNewArticle))
	mux.HandleFunc("/articles/view", s.requireToken(s.handleViewArticle))
	mux.HandleFunc("/articles/edit", s.requireToken(s.handleEditArticle))
	mux.HandleFunc("/articles/delete", s.requireToken(s.handleDeleteArticle))
	mux.HandleFunc("/articles/summarize", s.requireToken(s.handleSummarize))
	return mux
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	t, ok := s.tmpl[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		s.log.WithError(err).Error("render error")
		http.Error(w, "render error", http.StatusInternalServerError)
	}
}

// requireToken guards a page on cookie presence; the API still enforces
// real token validity and answers 401/403, which we turn into a redirect.
func (s *Server) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if token(r) == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

func token(r *http.Request) string {
	c, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *Server) setToken(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(tokenMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *Server) clearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   TokenCookie,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if token(r) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "login", nil)
		return
	}

	result, err := s.api.Login(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.render(w, "login", map[string]interface{}{"Error": err.Error(), "Email": r.FormValue("email")})
		return
	}

	s.setToken(w, result.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "register", nil)
		return
	}

	result, err := s.api.Register(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.render(w, "register", map[string]interface{}{"Error": err.Error(), "Email": r.FormValue("email")})
		return
	}

	s.setToken(w, result.Token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearToken(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	search := r.URL.Query().Get("search")
	tags := r.URL.Query().Get("tags")

	result, err := s.api.ListArticles(token(r), search, tags, page)
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}

	s.render(w, "dashboard", map[string]interface{}{
		"Articles":   result.Articles,
		"Pagination": result.Pagination,
		"Search":     search,
		"Tags":       tags,
		"PrevPage":   result.Pagination.Page - 1,
		"NextPage":   result.Pagination.Page + 1,
	})
}

func (s *Server) handleNewArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, "article_form", map[string]interface{}{"Action": "/articles/new"})
		return
	}

	article, err := s.api.CreateArticle(token(r),
		r.FormValue("title"), r.FormValue("body"), splitFormTags(r.FormValue("tags")))
	if err != nil {
		s.render(w, "article_form", map[string]interface{}{
			"Action": "/articles/new",
			"Error":  err.Error(),
			"Title":  r.FormValue("title"),
			"Body":   r.FormValue("body"),
			"Tags":   r.FormValue("tags"),
		})
		return
	}

	http.Redirect(w, r, "/articles/view?id="+article.ID, http.StatusSeeOther)
}

func (s *Server) handleViewArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.api.GetArticle(token(r), r.URL.Query().Get("id"))
	if err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	s.render(w, "article", map[string]interface{}{"Article": article})
}

func (s *Server) handleEditArticle(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if r.Method == http.MethodGet {
		article, err := s.api.GetArticle(token(r), id)
		if err != nil {
			s.handleAPIError(w, r, err)
			return
		}
		s.render(w, "article_form", map[string]interface{}{
			"Action": "/articles/edit?id=" + article.ID,
			"Title":  article.Title,
			"Body":   article.Body,
			"Tags":   strings.Join(article.Tags, ", "),
		})
		return
	}

	article, err := s.api.UpdateArticle(token(r), id,
		r.FormValue("title"), r.FormValue("body"), splitFormTags(r.FormValue("tags")))
	if err != nil {
		s.render(w, "article_form", map[string]interface{}{
			"Action": "/articles/edit?id=" + id,
			"Error":  err.Error(),
			"Title":  r.FormValue("title"),
			"Body":   r.FormValue("body"),
			"Tags":   r.FormValue("tags"),
		})
		return
	}

	http.Redirect(w, r, "/articles/view?id="+article.ID, http.StatusSeeOther)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.api.DeleteArticle(token(r), r.FormValue("id")); err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := r.FormValue("id")
	if _, err := s.api.Summarize(token(r), id); err != nil {
		s.handleAPIError(w, r, err)
		return
	}
	http.Redirect(w, r, "/articles/view?id="+id, http.StatusSeeOther)
}

// handleAPIError sends expired sessions back to login and shows anything
// else on the error page.
func (s *Server) handleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if apiErr, ok := err.(*APIError); ok {
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden {
			s.clearToken(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
	}
	s.render(w, "error", map[string]interface{}{"Error": err.Error()})
}

func splitFormTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
