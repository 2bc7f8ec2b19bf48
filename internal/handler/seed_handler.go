package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "fruitseason/internal/errors"
	"fruitseason/internal/service"
)

// SeedHandler creates demo users for local development.
type SeedHandler struct {
	authService service.AuthService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(authService service.AuthService) *SeedHandler {
	return &SeedHandler{authService: authService}
}

// SeedUser is one fixture entry.
type SeedUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SeedUsersResponse represents the seed response.
type SeedUsersResponse struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// DemoUsers is the compiled-in fixture used by both the handler and cmd/seed.
var DemoUsers = []SeedUser{
	{Username: "demo", Email: "demo@fruitseason.local", Password: "demo-password"},
	{Username: "maria", Email: "maria@fruitseason.local", Password: "maria-password"},
	{Username: "pedro", Email: "pedro@fruitseason.local", Password: "pedro-password"},
}

// SeedUsers godoc
// @Summary Create demo users
// @Description Registers the compiled-in demo users. Already-existing users are skipped.
// @Tags seed
// @Produce json
// @Success 200 {object} SeedUsersResponse
// @Router /seed/users [post]
func (h *SeedHandler) SeedUsers(c echo.Context) error {
	created, skipped := 0, 0
	for _, u := range DemoUsers {
		_, err := h.authService.Register(c.Request().Context(), u.Username, u.Email, u.Password)
		switch err.(type) {
		case nil:
			created++
		case *apperrors.ValidationError:
			skipped++ // already registered
		default:
			return respondError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SeedUsersResponse{
		Message: "seed complete",
		Created: created,
		Skipped: skipped,
	})
}
