package db

import (
	"context"
	"database/sql"
)

// SeedDirector создаёт первичного директора, если с таким телефоном
// ещё никого нет. Повторный старт ничего не меняет.
func SeedDirector(ctx context.Context, database *sql.DB, phone, fullName, passwordHash string) (bool, error) {
	res, err := database.ExecContext(ctx, `
INSERT INTO users (phone, full_name, password_hash, role, is_staff)
VALUES ($1, $2, $3, 'director', TRUE)
ON CONFLICT (phone) DO NOTHING`, phone, fullName, passwordHash)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
