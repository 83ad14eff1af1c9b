package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

func CreateModule(ctx context.Context, database *sql.DB, m *models.Module) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx,
		`INSERT INTO modules (name, course_id) VALUES ($1, $2) RETURNING id`,
		m.Name, m.CourseID).Scan(&id)
	return id, err
}

func GetModuleByID(ctx context.Context, database *sql.DB, id int64) (*models.Module, error) {
	var m models.Module
	err := database.QueryRowContext(ctx,
		`SELECT id, name, course_id FROM modules WHERE id = $1`, id).
		Scan(&m.ID, &m.Name, &m.CourseID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("module not found")
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func ListModules(ctx context.Context, database *sql.DB) ([]models.Module, error) {
	return listModules(ctx, database, `SELECT id, name, course_id FROM modules ORDER BY id`)
}

func ListModulesByCourse(ctx context.Context, database *sql.DB, courseID int64) ([]models.Module, error) {
	return listModules(ctx, database,
		`SELECT id, name, course_id FROM modules WHERE course_id = $1 ORDER BY id`, courseID)
}

func listModules(ctx context.Context, database *sql.DB, query string, args ...any) ([]models.Module, error) {
	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Module
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.Name, &m.CourseID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func UpdateModule(ctx context.Context, database *sql.DB, m *models.Module) error {
	res, err := database.ExecContext(ctx,
		`UPDATE modules SET name = $1, course_id = $2 WHERE id = $3`,
		m.Name, m.CourseID, m.ID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("module not found")
	}
	return nil
}

func DeleteModule(ctx context.Context, database *sql.DB, id int64) error {
	res, err := database.ExecContext(ctx, `DELETE FROM modules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("module not found")
	}
	return nil
}

func CountModules(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM modules`).Scan(&n)
	return n, err
}
