package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers the Swagger UI route
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// Register godoc
// @Summary Register a new user
// @Description Create a new account with a securely hashed password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "Registration data"
// @Success 201 {object} object{message=string,user=object{id=string,username=string,email=string}}
// @Failure 400 {object} object{error=string}
// @Router /api/register [post]
func (h *UserHandler) RegisterDoc() {}

// Login godoc
// @Summary User login
// @Description Authenticate and receive an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{access=string,refresh=string,user=object}
// @Failure 401 {object} object{error=string}
// @Router /api/login [post]
func (h *UserHandler) LoginDoc() {}

// ObtainToken godoc
// @Summary Obtain token pair
// @Description Exchange credentials for a bare access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{access=string,refresh=string}
// @Failure 401 {object} object{error=string}
// @Router /api/token/ [post]
func (h *UserHandler) ObtainTokenDoc() {}

// GetProfile godoc
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{id=string,username=string,email=string}
// @Failure 401 {object} object{error=string}
// @Router /api/users/me [get]
func (h *UserHandler) GetProfileDoc() {}
