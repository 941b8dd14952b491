// Package handler exposes the HTML surface of the leave tracker: login,
// the dashboard, the add/delete form targets and logout.
package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"leave-tracker/internal/auth"
	"leave-tracker/internal/calendar"
	"leave-tracker/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

type Handler struct {
	leaveService *service.LeaveService
	sessions     *auth.SessionManager
	password     *auth.SharedPassword
	templates    *template.Template
	logger       *logrus.Logger
}

func NewHandler(
	leaveService *service.LeaveService,
	sessions *auth.SessionManager,
	password *auth.SharedPassword,
) (*Handler, error) {
	funcs := template.FuncMap{
		// Colors are rgba() values; they must be typed template.CSS or the
		// CSS value filter strips the parentheses at render time.
		// Grid labels carry the half-day marker; the color is keyed by the
		// bare employee name.
		"labelColor": func(colors map[string]string, label string) template.CSS {
			name := strings.TrimSuffix(label, calendar.HalfDayMarker)
			return colorCSS(colors, name)
		},
		"nameColor": func(colors map[string]string, name string) template.CSS {
			return colorCSS(colors, name)
		},
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		leaveService: leaveService,
		sessions:     sessions,
		password:     password,
		templates:    tmpl,
		logger:       logrus.New(),
	}, nil
}

// Routes builds the full HTTP surface, wrapped in logging and metrics.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.handleLogin)
	mux.HandleFunc("/dashboard", h.requireAuth(h.handleDashboard))
	mux.HandleFunc("/add", h.requireAuth(h.handleAdd))
	mux.HandleFunc("/delete/", h.requireAuth(h.handleDelete))
	mux.HandleFunc("/logout", h.handleLogout)
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/static/", http.FileServer(http.FS(staticFS)))

	return withLogging(withMetrics(mux))
}

// requireAuth redirects unauthenticated requests to the login page.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.sessions.Authenticated(r) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

type loginPage struct {
	Message string
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := loginPage{}
	if r.Method == http.MethodPost {
		if h.password.Verify(r.FormValue("password")) {
			if err := h.sessions.Issue(w); err != nil {
				h.logger.WithError(err).Error("Failed to issue session")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		page.Message = "Incorrect password"
	}

	h.render(w, "login.html", page)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	// Out-of-range values fall back to the current month rather than
	// failing the page.
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		year, month = now.Year(), int(now.Month())
	}

	data, err := h.leaveService.Dashboard(year, month)
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.render(w, "dashboard.html", data)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, errFrom := time.ParseInLocation("2006-01-02", r.FormValue("from_date"), time.UTC)
	to, errTo := time.ParseInLocation("2006-01-02", r.FormValue("to_date"), time.UTC)
	if errFrom != nil || errTo != nil {
		// Malformed dates abort silently, the dashboard simply re-renders.
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	_, err := h.leaveService.AddRange(
		r.FormValue("name"),
		r.FormValue("new_name"),
		r.FormValue("note"),
		from, to,
		r.FormValue("half_day") == "yes",
	)
	switch {
	case err == service.ErrNoEmployee || err == service.ErrInvalidRange:
		// Silent no-op, matching the malformed-date path.
	case err != nil:
		h.logger.WithError(err).Error("Failed to add leave range")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/delete/")
	if id, err := strconv.ParseUint(idStr, 10, 32); err == nil {
		if err := h.leaveService.Delete(uint(id)); err != nil {
			h.logger.WithError(err).Error("Failed to delete leave")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.WithError(err).Errorf("Failed to render %s", name)
	}
}

func colorCSS(colors map[string]string, name string) template.CSS {
	if color, ok := colors[name]; ok {
		return template.CSS(color)
	}
	return template.CSS(service.NeutralColor)
}

func queryInt(r *http.Request, key string, defaultVal int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}
