package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
)

type productRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       *int   `json:"price" binding:"required"`
}

func (h *Handler) CreateProduct(c *gin.Context) {
	director, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("name and price are required"))
		return
	}
	if *req.Price < 0 {
		h.fail(c, apperr.Validation("price must be non-negative"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	p := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		AddedBy:     director.ID,
	}
	if err := db.CreateProduct(ctx, h.DB, p); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) ListProducts(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	products, err := db.ListProducts(ctx, h.DB)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

type orderRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
}

// CreateOrder — покупка: вся проверка достаточности и списание в одной
// транзакции db.Purchase, здесь только разбор запроса.
func (h *Handler) CreateOrder(c *gin.Context) {
	student, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("product_id is required"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	order, err := db.Purchase(ctx, h.DB, student.ID, req.ProductID)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Users.Invalidate(c.Request.Context(), student.ID)

	c.JSON(http.StatusCreated, order)
}

// ListOrders: ученик видит только свои заказы, персонал — все.
func (h *Handler) ListOrders(c *gin.Context) {
	u, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	var orders []models.Order
	if u.Role == models.Student {
		orders, err = db.ListOrdersByStudent(ctx, h.DB, u.ID)
	} else {
		orders, err = db.ListOrders(ctx, h.DB)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
