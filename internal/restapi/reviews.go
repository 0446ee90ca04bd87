package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/servimart/servimart/internal/domain"
	"github.com/servimart/servimart/internal/webserver"
)

type reviewPayload struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=1000"`
	ProductId int64  `json:"product_id,string"`
}

func registerReviewRoutes() {
	webserver.ApiGET("/reviews", listReviews)
	webserver.ApiGET("/reviews/:id", getReview)
	webserver.ApiPOST("/reviews", createReview)
	webserver.ApiPUT("/reviews/:id", updateReview)
	webserver.ApiDELETE("/reviews/:id", deleteReview)
	webserver.ApiGET("/products/:id/reviews", productReviews)
	webserver.ApiGET("/products/:id/rating", productRating)
	webserver.ApiGET("/reviews/user/:userId", userReviews)
}

func listReviews(c echo.Context) error {
	rows, err := reviewSvc.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", err.Error())
	}
	return ok(c, rows)
}

func getReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}
	rev, err := reviewSvc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Review not found", nil)
	}
	return ok(c, rev)
}

func createReview(c echo.Context) error {
	claims := currentClaims(c)
	if claims == nil {
		return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
	}
	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Review validation failed", err.Error())
	}

	rev, err := reviewSvc.Create(c.Request().Context(), &domain.Review{
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		UserId:    claims.UserID,
		ProductId: payload.ProductId,
	})
	if err != nil {
		return failDomain(c, err, "Review creation")
	}
	return ok(c, rev)
}

func updateReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}
	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", err.Error())
	}

	rev, err := reviewSvc.Update(c.Request().Context(), id, &domain.Review{
		Rating:  payload.Rating,
		Comment: payload.Comment,
	})
	if err != nil {
		return failDomain(c, err, "Review update")
	}
	return ok(c, rev)
}

func deleteReview(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID", nil)
	}
	if err := reviewSvc.Delete(c.Request().Context(), id); err != nil {
		return failDomain(c, err, "Review deletion")
	}
	writeOprLog(c, "delete_review", "review deleted")
	return ok(c, map[string]interface{}{"id": id})
}

func productReviews(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	rows, err := reviewSvc.ListByProduct(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", err.Error())
	}
	return ok(c, rows)
}

func productRating(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	avg, err := reviewSvc.AverageRating(c.Request().Context(), id)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to compute rating", err.Error())
	}
	return ok(c, map[string]interface{}{"product_id": id, "average_rating": avg})
}

func userReviews(c echo.Context) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID", nil)
	}
	rows, err := reviewSvc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", err.Error())
	}
	return ok(c, rows)
}
