package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	recdomain "github.com/tair/bookbank/internal/recommendation/domain"
	reccommand "github.com/tair/bookbank/internal/recommendation/usecase/command"
	recquery "github.com/tair/bookbank/internal/recommendation/usecase/query"
	"github.com/tair/bookbank/internal/search/googlebooks"
	searchquery "github.com/tair/bookbank/internal/search/usecase/query"
	"github.com/tair/bookbank/internal/session"
	userdomain "github.com/tair/bookbank/internal/user/domain"
	usercommand "github.com/tair/bookbank/internal/user/usecase/command"
	"github.com/tair/bookbank/pkg/auth"
	"github.com/tair/bookbank/pkg/logger"
)

// Cookie names for the page flows. The JWT cookies mirror the tokens
// returned by the API login so a browser session can call the API.
const (
	SessionCookie      = "session_id"
	AccessTokenCookie  = "jwt_access"
	RefreshTokenCookie = "jwt_refresh"
)

type ctxKeyUserID struct{}

// Handler serves the server-rendered pages
type Handler struct {
	register *usercommand.RegisterUserHandler
	login    *usercommand.LoginUserHandler
	submit   *reccommand.SubmitRecommendationHandler
	sample   *recquery.SampleRecommendationsHandler
	search   *searchquery.SearchBooksHandler

	sessions   session.Store
	sessionTTL time.Duration
	renderer   *renderer
}

// NewHandler creates the page handler
func NewHandler(
	userRepo userdomain.UserRepository,
	recRepo recdomain.RecommendationRepository,
	searcher searchquery.BookSearcher,
	sessions session.Store,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		register:   usercommand.NewRegisterUserHandler(userRepo),
		login:      usercommand.NewLoginUserHandler(userRepo),
		submit:     reccommand.NewSubmitRecommendationHandler(recRepo),
		sample:     recquery.NewSampleRecommendationsHandler(recRepo),
		search:     searchquery.NewSearchBooksHandler(searcher),
		sessions:   sessions,
		sessionTTL: sessionTTL,
		renderer:   newRenderer(),
	}
}

// pageData is passed to every template
type pageData struct {
	Title           string
	LoggedIn        bool
	Username        string
	Error           string
	Books           []googlebooks.BookSummary
	Recommendations []recdomain.Recommendation
	Query           string
}

// withSession resolves the session cookie into a user ID on the request
// context. Anonymous requests pass through untouched.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
			if userID, err := h.sessions.Get(r.Context(), c.Value); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxKeyUserID{}, userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// requireSession redirects anonymous requests to the login page. It is
// a capability check independent of the API's bearer-token middleware.
func (h *Handler) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := userIDFrom(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}

func userIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyUserID{}).(string)
	return id, ok && id != ""
}

// Home handles GET /
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	_, loggedIn := userIDFrom(r.Context())
	h.renderer.render(w, "home.html", pageData{Title: "Book Bank", LoggedIn: loggedIn})
}

// RegisterPage handles GET and POST /register
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.render(w, "register.html", pageData{Title: "Register"})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.render(w, "register.html", pageData{Title: "Register", Error: "Invalid form"})
		return
	}

	user, err := h.register.Handle(usercommand.RegisterUserCommand{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.renderer.render(w, "register.html", pageData{Title: "Register", Error: err.Error()})
		return
	}

	h.establishSession(w, r, user.ID)
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// LoginPage handles GET and POST /login
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.render(w, "login.html", pageData{Title: "Login"})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderer.render(w, "login.html", pageData{Title: "Login", Error: "Invalid form"})
		return
	}

	resp, err := h.login.Handle(usercommand.LoginUserCommand{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.renderer.render(w, "login.html", pageData{Title: "Login", Error: "Invalid credentials"})
		return
	}

	h.establishSession(w, r, resp.User.ID)
	setTokenCookies(w, resp.Tokens)
	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// Logout handles GET /logout. The session is invalidated and the token
// cookies cleared; already-issued bearer tokens stay valid until they
// expire naturally.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		if err := h.sessions.Delete(r.Context(), c.Value); err != nil {
			logger.Error(r.Context()).Err(err).Msg("Failed to delete session")
		}
	}

	clearCookie(w, SessionCookie)
	clearCookie(w, AccessTokenCookie)
	clearCookie(w, RefreshTokenCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Index handles GET /index (authenticated landing page)
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, "index.html", pageData{Title: "Book Bank", LoggedIn: true})
}

// SubmitRecommendationPage handles GET and POST /submit-recommendations
func (h *Handler) SubmitRecommendationPage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderer.render(w, "submit_recommendation.html", pageData{Title: "Submit Recommendation", LoggedIn: true})
		return
	}

	userID, _ := userIDFrom(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderer.render(w, "submit_recommendation.html", pageData{Title: "Submit Recommendation", LoggedIn: true, Error: "Invalid form"})
		return
	}

	rating, err := strconv.ParseFloat(r.PostFormValue("rating"), 64)
	if err != nil {
		h.renderer.render(w, "submit_recommendation.html", pageData{Title: "Submit Recommendation", LoggedIn: true, Error: "Rating must be a number"})
		return
	}

	_, err = h.submit.Handle(reccommand.SubmitRecommendationCommand{
		UserID:             userID,
		Bookname:           r.PostFormValue("bookname"),
		RecommendationText: r.PostFormValue("recommendation_text"),
		Rating:             rating,
	})
	if err != nil {
		h.renderer.render(w, "submit_recommendation.html", pageData{Title: "Submit Recommendation", LoggedIn: true, Error: err.Error()})
		return
	}

	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

// ViewRecommendations handles GET /view-recommendations. At most ten
// recommendations are shown, picked uniformly at random when more exist.
func (h *Handler) ViewRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.sample.Handle(recquery.SampleRecommendationsQuery{Max: recquery.DefaultSampleSize})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load recommendations")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.renderer.render(w, "view_recommendations.html", pageData{
		Title:           "Recommendations",
		LoggedIn:        true,
		Recommendations: recs,
	})
}

// SearchPage handles GET /search. Upstream failures render an error
// notice instead of an empty result list, matching the API policy.
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	_, loggedIn := userIDFrom(r.Context())

	data := pageData{Title: "Search Books", LoggedIn: loggedIn, Query: q}

	books, err := h.search.Handle(r.Context(), searchquery.SearchBooksQuery{
		Query:      q,
		MaxResults: searchquery.PageMaxResults,
	})
	if err != nil {
		if errors.Is(err, googlebooks.ErrUpstream) {
			logger.Error(r.Context()).Err(err).Str("query", q).Msg("Book catalog search failed")
			data.Error = "The book catalog is currently unavailable"
			h.renderer.render(w, "search.html", data)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data.Books = books
	h.renderer.render(w, "search.html", data)
}

// RegisterRoutes registers the page routes on the router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	withSession := func(fn http.HandlerFunc) http.Handler { return h.withSession(fn) }

	router.Handle("/", withSession(h.Home)).Methods(http.MethodGet)
	router.Handle("/register", withSession(h.RegisterPage)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/login", withSession(h.LoginPage)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/logout", withSession(h.Logout)).Methods(http.MethodGet)
	router.Handle("/index", withSession(h.requireSession(h.Index))).Methods(http.MethodGet)
	router.Handle("/submit-recommendations", withSession(h.requireSession(h.SubmitRecommendationPage))).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/view-recommendations", withSession(h.requireSession(h.ViewRecommendations))).Methods(http.MethodGet)
	router.Handle("/search", withSession(h.SearchPage)).Methods(http.MethodGet)
}

func (h *Handler) establishSession(w http.ResponseWriter, r *http.Request, userID string) {
	sessionID, err := h.sessions.Create(r.Context(), userID, h.sessionTTL)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.sessionTTL.Seconds()),
	})
}

func setTokenCookies(w http.ResponseWriter, tokens *auth.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.AccessTokenTTL.Seconds()),
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.RefreshTokenTTL.Seconds()),
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
