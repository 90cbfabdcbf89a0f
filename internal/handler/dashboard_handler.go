package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/prn-tf/roster/internal/domain"
	"github.com/prn-tf/roster/internal/service"
	"github.com/prn-tf/roster/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// DashboardHandler renders the server-side user list page. Search and
// pagination state travel in the q and page query parameters and are fed
// through the view model, so the page is fully driven by URL state.
type DashboardHandler struct {
	users     *service.UserService
	templates *template.Template
	pageSize  int
	minQuery  int
	logger    zerolog.Logger
}

// DashboardConfig contains configuration for the dashboard.
type DashboardConfig struct {
	Users          *service.UserService
	PageSize       int
	MinQueryLength int
	Logger         zerolog.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(cfg DashboardConfig) (*DashboardHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = view.DefaultPageSize
	}
	minQuery := cfg.MinQueryLength
	if minQuery < 0 {
		minQuery = view.MinQueryLength
	}

	return &DashboardHandler{
		users:     cfg.Users,
		templates: tmpl,
		pageSize:  pageSize,
		minQuery:  minQuery,
		logger:    cfg.Logger.With().Str("handler", "dashboard").Logger(),
	}, nil
}

// dashboardData is the template payload.
type dashboardData struct {
	Users      []domain.User
	Query      string
	Remaining  int
	Page       int
	PrevPage   int
	NextPage   int
	TotalPages int
	HasPrev    bool
	HasNext    bool
	Total      int
	Filtered   int
}

// ServeHTTP handles GET /dashboard.
func (h *DashboardHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	state := view.ListState{
		Page:     1,
		PageSize: h.pageSize,
		MinQuery: h.minQuery,
	}
	state.SetQuery(r.URL.Query().Get("q"))
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		state.Page = p
	}

	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load users for dashboard")
		http.Error(w, msgInternalError, http.StatusInternalServerError)
		return
	}

	filtered := state.Filter(users)
	page := state.Paginate(filtered)

	data := dashboardData{
		Users:      page,
		Query:      state.Query,
		Remaining:  state.Remaining(),
		Page:       state.Page,
		PrevPage:   state.Page - 1,
		NextPage:   state.Page + 1,
		TotalPages: state.TotalPages(len(filtered)),
		HasPrev:    state.HasPrev(),
		HasNext:    state.HasNext(len(filtered)),
		Total:      len(users),
		Filtered:   len(filtered),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		h.logger.Error().Err(err).Msg("failed to render dashboard")
	}
}
