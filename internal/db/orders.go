package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

// Purchase — покупка товара учеником. Проверка достаточности и списание
// идут в одной транзакции под блокировкой строки ученика (FOR UPDATE):
// две конкурентные покупки не спишут один и тот же баланс дважды.
// Любая ошибка после проверки — полный откат, заказа и списания нет.
func Purchase(ctx context.Context, database *sql.DB, studentID, productID int64) (*models.Order, error) {
	product, err := GetProductByID(ctx, database, productID)
	if err != nil {
		return nil, err
	}

	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var coins int
	err = tx.QueryRowContext(ctx, `
SELECT coins FROM users WHERE id = $1 AND role = 'student' FOR UPDATE`, studentID).Scan(&coins)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("student not found")
	}
	if err != nil {
		return nil, err
	}
	if coins < product.Price {
		return nil, apperr.Validation("insufficient coins")
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE users SET coins = coins - $1 WHERE id = $2`, product.Price, studentID); err != nil {
		return nil, err
	}

	order := &models.Order{ProductID: productID, StudentID: studentID}
	err = tx.QueryRowContext(ctx, `
INSERT INTO orders (product_id, student_id)
VALUES ($1, $2)
RETURNING id, ordered_at`, productID, studentID).Scan(&order.ID, &order.OrderedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return order, nil
}

func ListOrders(ctx context.Context, database *sql.DB) ([]models.Order, error) {
	return listOrders(ctx, database, `
SELECT id, product_id, student_id, ordered_at FROM orders ORDER BY ordered_at DESC`)
}

func ListOrdersByStudent(ctx context.Context, database *sql.DB, studentID int64) ([]models.Order, error) {
	return listOrders(ctx, database, `
SELECT id, product_id, student_id, ordered_at FROM orders
WHERE student_id = $1 ORDER BY ordered_at DESC`, studentID)
}

func listOrders(ctx context.Context, database *sql.DB, query string, args ...any) ([]models.Order, error) {
	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.StudentID, &o.OrderedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
