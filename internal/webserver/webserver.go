package webserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/servimart/servimart/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContextDBKey is where middleware stashes the gorm handle for handlers.
const ContextDBKey = "servimart_db"

// ContextClaimsKey holds the parsed token claims for protected routes.
const ContextClaimsKey = "servimart_claims"

var server *WebServer

type WebServer struct {
	cfg  *config.AppConfig
	root *echo.Echo
	api  *echo.Group
}

// jsonSerializer plugs json-iterator into echo.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	return jsoniter.NewDecoder(c.Request().Body).Decode(i)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// publicPaths skip the JWT middleware.
var publicPaths = map[string]bool{
	"/api/login":  true,
	"/api/signup": true,
}

// Init builds the package server. Handlers registered through ApiGET and
// friends land under /api behind the JWT middleware.
func Init(cfg *config.AppConfig, db *gorm.DB) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Validator = &payloadValidator{validate: validator.New()}

	e.Use(middleware.Recover())
	e.Use(requestIDMiddleware())
	e.Use(loggerMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextDBKey, db)
			return next(c)
		}
	})

	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(cfg.Web.JwtSecret),
		Skipper: func(c echo.Context) bool {
			return publicPaths[c.Path()]
		},
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(TokenClaims)
		},
		SuccessHandler: func(c echo.Context) {
			if token, ok := c.Get("user").(*jwt.Token); ok {
				if claims, ok := token.Claims.(*TokenClaims); ok {
					c.Set(ContextClaimsKey, claims)
				}
			}
		},
	}))

	server = &WebServer{cfg: cfg, root: e, api: api}
	return server
}

// requestIDMiddleware tags every request with an X-Request-ID.
func requestIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			return next(c)
		}
	}
}

// loggerMiddleware emits one structured access log line per request.
func loggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			req := c.Request()
			res := c.Response()
			zap.L().Info("http request",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", res.Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("remote_ip", c.RealIP()),
				zap.String("request_id", res.Header().Get(echo.HeaderXRequestID)))
			return nil
		}
	}
}

// Start runs the HTTP listener until ctx is done, then shuts down gracefully.
func (s *WebServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("webserver listening", zap.String("addr", addr))
		if err := s.root.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	}
}

// Echo exposes the underlying engine for tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func apiPath(path string) string {
	return "/" + strings.TrimPrefix(path, "/")
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(apiPath(path), h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(apiPath(path), h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(apiPath(path), h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(apiPath(path), h)
}
