package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

const userCols = `id, phone, full_name, password_hash, role, age, gender, is_active, is_staff, coins`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Phone, &u.FullName, &u.PasswordHash, &u.Role, &u.Age, &u.Gender, &u.IsActive, &u.IsStaff, &u.Coins)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func CreateUser(ctx context.Context, database *sql.DB, u *models.User) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx, `
INSERT INTO users (phone, full_name, password_hash, role, age, gender, is_active, is_staff)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`,
		u.Phone, u.FullName, u.PasswordHash, u.Role, u.Age, u.Gender, u.IsActive, u.IsStaff,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func GetUserByID(ctx context.Context, database *sql.DB, id int64) (*models.User, error) {
	u, err := scanUser(database.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}

func GetUserByPhone(ctx context.Context, database *sql.DB, phone string) (*models.User, error) {
	u, err := scanUser(database.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE phone = $1`, phone))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("user not found")
	}
	return u, err
}

// GetUserByIDAndRole — выбор в ожидаемой роли; директорские CRUD по
// ученикам/учителям не должны видеть чужие роли.
func GetUserByIDAndRole(ctx context.Context, database *sql.DB, id int64, role models.Role) (*models.User, error) {
	u, err := scanUser(database.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1 AND role = $2`, id, role))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(string(role) + " not found")
	}
	return u, err
}

func ListUsersByRole(ctx context.Context, database *sql.DB, role models.Role) ([]models.User, error) {
	rows, err := database.QueryContext(ctx,
		`SELECT `+userCols+` FROM users WHERE role = $1 ORDER BY id`, role)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func UpdateUser(ctx context.Context, database *sql.DB, u *models.User) error {
	res, err := database.ExecContext(ctx, `
UPDATE users SET phone = $1, full_name = $2, password_hash = $3, age = $4, gender = $5, is_active = $6
WHERE id = $7 AND role = $8`,
		u.Phone, u.FullName, u.PasswordHash, u.Age, u.Gender, u.IsActive, u.ID, u.Role)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound(string(u.Role) + " not found")
	}
	return nil
}

func DeleteUser(ctx context.Context, database *sql.DB, id int64, role models.Role) error {
	res, err := database.ExecContext(ctx,
		`DELETE FROM users WHERE id = $1 AND role = $2`, id, role)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound(string(role) + " not found")
	}
	return nil
}

func CountUsersByRole(ctx context.Context, database *sql.DB, role models.Role) (int, error) {
	var n int
	err := database.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	return n, err
}
