package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/internal/webserver"
)

type profilePayload struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	ServiceType string `json:"service_type"`
	Available   bool   `json:"available"`
}

type passwordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type activePayload struct {
	Active bool `json:"active"`
}

func registerProfileRoutes() {
	webserver.ApiGET("/profile/:id", getProfile)
	webserver.ApiPUT("/profile/:id", updateProfile)
	webserver.ApiPUT("/profile/:id/password", updatePassword)
	webserver.ApiPUT("/profile/:id/active", setUserActive)
}

func getProfile(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	user, err := accountSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return failDomain(c, err, "Profile lookup")
	}
	return ok(c, user)
}

func updateProfile(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var payload profilePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse profile", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Profile validation failed", err.Error())
	}

	user, err := accountSvc.UpdateProfile(c.Request().Context(), id, &domain.User{
		FullName:    payload.FullName,
		Email:       payload.Email,
		Phone:       payload.Phone,
		Address:     payload.Address,
		ServiceType: payload.ServiceType,
		Available:   payload.Available,
	})
	if err != nil {
		return failDomain(c, err, "Profile update")
	}
	return ok(c, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// updatePassword changes the caller's own password, or any password when the
// caller is an admin (without the current-password check).
func updatePassword(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var payload passwordPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse password request", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Password validation failed", err.Error())
	}

	claims := currentClaims(c)
	var user *domain.User
	if claims != nil && claims.Role == domain.RoleAdmin && claims.UserID != id {
		user, err = accountSvc.AdminResetPassword(c.Request().Context(), id, payload.NewPassword)
	} else {
		user, err = accountSvc.UpdatePassword(c.Request().Context(), id, payload.CurrentPassword, payload.NewPassword)
	}
	if err != nil {
		return failDomain(c, err, "Password update")
	}

	writeOprLog(c, "update_password", "password changed for user "+user.Username)
	return ok(c, map[string]interface{}{"message": "Password updated successfully"})
}

func setUserActive(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	var payload activePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	user, err := accountSvc.SetActive(c.Request().Context(), id, payload.Active)
	if err != nil {
		return failDomain(c, err, "Active status update")
	}
	writeOprLog(c, "set_active", "active status changed for user "+user.Username)
	return ok(c, user)
}
