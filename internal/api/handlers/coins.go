package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
)

type addCoinsRequest struct {
	StudentID int64 `json:"student_id" binding:"required"`
	Amount    *int  `json:"amount" binding:"required"`
}

// AddCoins — начисление монет ученику. Роль уже проверена гейтом
// (director|teacher); отрицательная сумма отклоняется до любых мутаций.
func (h *Handler) AddCoins(c *gin.Context) {
	var req addCoinsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("student_id and amount are required"))
		return
	}
	if *req.Amount < 0 {
		h.fail(c, apperr.Validation("amount must be non-negative"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	balance, err := db.AddCoins(ctx, h.DB, req.StudentID, *req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.Users.Invalidate(c.Request.Context(), req.StudentID)

	c.JSON(http.StatusOK, gin.H{
		"msg":     fmt.Sprintf("%d coins added", *req.Amount),
		"balance": balance,
	})
}

func (h *Handler) ListCoinBalances(c *gin.Context) {
	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	balances, err := db.ListCoinBalances(ctx, h.DB)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}
