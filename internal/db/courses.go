package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

func CreateCourse(ctx context.Context, database *sql.DB, name string) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx,
		`INSERT INTO courses (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

func GetCourseByID(ctx context.Context, database *sql.DB, id int64) (*models.Course, error) {
	var c models.Course
	err := database.QueryRowContext(ctx,
		`SELECT id, name FROM courses WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("course not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func ListCourses(ctx context.Context, database *sql.DB) ([]models.Course, error) {
	rows, err := database.QueryContext(ctx, `SELECT id, name FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func UpdateCourse(ctx context.Context, database *sql.DB, id int64, name string) error {
	res, err := database.ExecContext(ctx,
		`UPDATE courses SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("course not found")
	}
	return nil
}

func DeleteCourse(ctx context.Context, database *sql.DB, id int64) error {
	res, err := database.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("course not found")
	}
	return nil
}

func CountCourses(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n)
	return n, err
}
