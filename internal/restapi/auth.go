package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/internal/webserver"
)

type signupPayload struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=6"`
	Email       string `json:"email" validate:"omitempty,email"`
	FullName    string `json:"full_name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ServiceType string `json:"service_type"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/signup", signup)
	webserver.ApiPOST("/login", login)
}

func signup(c echo.Context) error {
	var payload signupPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse signup request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Signup validation failed", err.Error())
	}

	user, err := accountSvc.Register(c.Request().Context(), &domain.User{
		Username:    payload.Username,
		Password:    payload.Password,
		Email:       payload.Email,
		FullName:    payload.FullName,
		Phone:       payload.Phone,
		Address:     payload.Address,
		ServiceType: payload.ServiceType,
	})
	if err != nil {
		return failDomain(c, err, "Registration")
	}

	return ok(c, map[string]interface{}{
		"message": "User registered successfully",
		"user_id": user.ID,
	})
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Login validation failed", err.Error())
	}

	user, err := accountSvc.Authenticate(c.Request().Context(), payload.Username, payload.Password)
	if err != nil {
		return failDomain(c, err, "Login")
	}

	token, err := webserver.IssueToken(appConfig.Web.JwtSecret, user)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	return ok(c, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
