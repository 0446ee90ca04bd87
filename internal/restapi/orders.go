package restapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/internal/orders"
	"github.com/servimart/servimart/internal/webserver"
)

type orderPayload struct {
	UserId          int64  `json:"user_id,string"`
	ProductId       int64  `json:"product_id,string" validate:"required"`
	Quantity        int    `json:"quantity"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func registerOrderRoutes() {
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPOST("/orders/place", placeOrder)
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/user/:userId", listUserOrders)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPUT("/orders/:id/status", updateOrderStatus)
	webserver.ApiPUT("/orders/:id/cancel", cancelOrder)
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Order validation failed", err.Error())
	}

	order, err := orderSvc.CreateOrder(c.Request().Context(), orders.CreateRequest{
		UserID:          payload.UserId,
		ProductID:       payload.ProductId,
		Quantity:        payload.Quantity,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
	})
	if err != nil {
		return failDomain(c, err, "Order creation")
	}

	return ok(c, map[string]interface{}{
		"message":  "Order created successfully",
		"order_id": order.ID,
		"order":    order,
	})
}

// placeOrder resolves the buyer from the authenticated session instead of a
// user id in the body.
func placeOrder(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}
	user, err := accountSvc.GetByID(c.Request().Context(), claims.UserID)
	if err != nil {
		return failDomain(c, err, "Order placement")
	}

	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}

	order, err := orderSvc.PlaceOrder(c.Request().Context(), &domain.Order{
		ProductId:       payload.ProductId,
		Quantity:        payload.Quantity,
		ShippingAddress: payload.ShippingAddress,
		PaymentMethod:   payload.PaymentMethod,
		Notes:           payload.Notes,
	}, user)
	if err != nil {
		return failDomain(c, err, "Order placement")
	}
	return ok(c, order)
}

func getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := orderSvc.GetOrderByID(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Order not found", nil)
	}
	return ok(c, order)
}

func listOrders(c echo.Context) error {
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		parsed, known := domain.ParseOrderStatus(strings.ToUpper(status))
		if !known {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown order status", status)
		}
		rows, err := orderSvc.GetOrdersByStatus(c.Request().Context(), parsed)
		if err != nil {
			return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
		}
		return ok(c, rows)
	}

	rows, err := orderSvc.GetAllOrders(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return ok(c, rows)
}

func listUserOrders(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	rows, err := orderSvc.GetOrdersByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return ok(c, rows)
}

func updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status validation failed", err.Error())
	}

	order, err := orderSvc.UpdateStatus(c.Request().Context(), id, payload.Status)
	if err != nil {
		return failDomain(c, err, "Status update")
	}
	writeOprLog(c, "update_order_status", "order status set to "+string(order.Status))
	return ok(c, order)
}

func cancelOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := orderSvc.CancelOrder(c.Request().Context(), id)
	if err != nil {
		return failDomain(c, err, "Order cancellation")
	}
	writeOprLog(c, "cancel_order", "order cancelled")
	return ok(c, map[string]interface{}{
		"message": "Order cancelled successfully",
		"order":   order,
	})
}
