package restapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/servimart/servimart/config"
	"github.com/servimart/servimart/internal/accounts"
	"github.com/servimart/servimart/internal/catalog"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/internal/orders"
	"github.com/servimart/servimart/internal/reviews"
	"github.com/servimart/servimart/internal/webserver"
	"github.com/servimart/servimart/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	appConfig  *config.AppConfig
	accountSvc *accounts.Service
	catalogSvc *catalog.Service
	orderSvc   *orders.Service
	reviewSvc  *reviews.Service
)

// Init wires the services and registers every route group.
func Init(cfg *config.AppConfig, a *accounts.Service, c *catalog.Service, o *orders.Service, r *reviews.Service) {
	appConfig = cfg
	accountSvc = a
	catalogSvc = c
	orderSvc = o
	reviewSvc = r

	registerAuthRoutes()
	registerProfileRoutes()
	registerProductRoutes()
	registerOrderRoutes()
	registerReviewRoutes()
}

// GetDB returns the request-scoped gorm handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.ContextDBKey).(*gorm.DB)
}

// currentClaims returns the token claims, nil on public routes.
func currentClaims(c echo.Context) *webserver.TokenClaims {
	claims, _ := c.Get(webserver.ContextClaimsKey).(*webserver.TokenClaims)
	return claims
}

func requireAdmin(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil || claims.Role != domain.RoleAdmin {
		return fail(c, http.StatusForbidden, "FORBIDDEN", "Admin role required", nil)
	}
	return nil
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

// failDomain maps the service error taxonomy to a client error. Everything
// lands on 400, matching the original API contract; unexpected errors are 500.
func failDomain(c echo.Context, err error, op string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusBadRequest, "NOT_FOUND", op+" failed: "+err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidArgument):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", op+" failed: "+err.Error(), nil)
	case errors.Is(err, domain.ErrInsufficientStock):
		return fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", op+" failed: "+err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidState):
		return fail(c, http.StatusBadRequest, "INVALID_STATE", op+" failed: "+err.Error(), nil)
	}
	zap.L().Error(op+" failed", zap.Error(err))
	return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", op+" failed", nil)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.QueryParam("perPage")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	} else if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// writeOprLog records a mutating action in the audit log, best effort.
func writeOprLog(c echo.Context, action, desc string) {
	name := ""
	if claims := currentClaims(c); claims != nil {
		name = claims.Username
	}
	log := &domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   name,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := GetDB(c).Create(log).Error; err != nil {
		zap.L().Warn("failed to write operation log", zap.Error(err))
	}
}
