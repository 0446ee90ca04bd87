package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/servimart/servimart/internal/catalog"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/internal/webserver"
)

type productPayload struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int     `json:"stock"`
	Kind        string   `json:"kind"`
	Category    string   `json:"category"`
	Image       string   `json:"image"`
	ProviderId  int64    `json:"provider_id,string"`
}

// registerProductRoutes registers catalog endpoints. Reads are open to any
// authenticated user; writes require the admin role.
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/search", searchProducts)
	webserver.ApiGET("/products/category/:category", productsByCategory)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiGET("/categories", listCategories)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	order := strings.ToUpper(strings.TrimSpace(c.QueryParam("order")))
	filter := catalog.ListFilter{
		Query:    strings.TrimSpace(c.QueryParam("q")),
		Name:     strings.TrimSpace(c.QueryParam("name")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		SortCol:  strings.TrimSpace(c.QueryParam("sort")),
		SortDesc: order != "ASC",
		Page:     page,
		PageSize: pageSize,
	}

	rows, total, err := catalogSvc.List(c.Request().Context(), filter)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return paged(c, rows, total, page, pageSize)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := catalogSvc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Product validation failed", err.Error())
	}

	price := 0.0
	if payload.Price != nil {
		price = *payload.Price
	}
	p, err := catalogSvc.Add(c.Request().Context(), &domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       price,
		Stock:       payload.Stock,
		Kind:        payload.Kind,
		Category:    payload.Category,
		Image:       strings.TrimSpace(payload.Image),
		ProviderId:  payload.ProviderId,
	})
	if err != nil {
		return failDomain(c, err, "Product creation")
	}
	writeOprLog(c, "create_product", "product created: "+p.Name)
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p, err := catalogSvc.Update(c.Request().Context(), id, catalog.UpdateRequest{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Category:    payload.Category,
		Image:       strings.TrimSpace(payload.Image),
	})
	if err != nil {
		return failDomain(c, err, "Product update")
	}
	writeOprLog(c, "update_product", "product updated: "+p.Name)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := catalogSvc.Delete(c.Request().Context(), id); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", err.Error())
	}
	writeOprLog(c, "delete_product", "product deleted")
	return ok(c, map[string]interface{}{"id": id})
}

func searchProducts(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("query"))
	if query == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Search query is required", nil)
	}
	rows, err := catalogSvc.Search(c.Request().Context(), query)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to search products", err.Error())
	}
	return ok(c, rows)
}

func productsByCategory(c echo.Context) error {
	category := strings.TrimSpace(c.Param("category"))
	rows, err := catalogSvc.FilterByCategory(c.Request().Context(), category)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}
	return ok(c, rows)
}

func listCategories(c echo.Context) error {
	rows, err := catalogSvc.Categories(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, rows)
}
