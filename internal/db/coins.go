package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
)

// AddCoins — начисление одним атомарным инкрементом по строке ученика.
// Никакого read-modify-write в памяти: конкурентные начисления не
// теряют друг друга. Возвращает новый баланс.
func AddCoins(ctx context.Context, database *sql.DB, studentID int64, amount int) (int, error) {
	if amount < 0 {
		return 0, apperr.Validation("amount must be non-negative")
	}
	var balance int
	err := database.QueryRowContext(ctx, `
UPDATE users SET coins = coins + $1
WHERE id = $2 AND role = 'student'
RETURNING coins`, amount, studentID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperr.NotFound("student not found")
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

type CoinBalance struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Coins    int    `json:"coins"`
}

func ListCoinBalances(ctx context.Context, database *sql.DB) ([]CoinBalance, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, full_name, coins FROM users WHERE role = 'student' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []CoinBalance
	for rows.Next() {
		var b CoinBalance
		if err := rows.Scan(&b.ID, &b.FullName, &b.Coins); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
