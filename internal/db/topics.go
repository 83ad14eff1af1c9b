package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

func CreateTopic(ctx context.Context, database *sql.DB, t *models.Topic) (int64, error) {
	var id int64
	err := database.QueryRowContext(ctx,
		`INSERT INTO topics (name, status, module_id) VALUES ($1, $2, $3) RETURNING id`,
		t.Name, t.Status, t.ModuleID).Scan(&id)
	return id, err
}

func GetTopicByID(ctx context.Context, database *sql.DB, id int64) (*models.Topic, error) {
	var t models.Topic
	err := database.QueryRowContext(ctx,
		`SELECT id, name, status, module_id FROM topics WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Status, &t.ModuleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("topic not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ListTopics(ctx context.Context, database *sql.DB) ([]models.Topic, error) {
	return listTopics(ctx, database, `SELECT id, name, status, module_id FROM topics ORDER BY id`)
}

func ListTopicsByModule(ctx context.Context, database *sql.DB, moduleID int64) ([]models.Topic, error) {
	return listTopics(ctx, database,
		`SELECT id, name, status, module_id FROM topics WHERE module_id = $1 ORDER BY id`, moduleID)
}

// ListActiveTopicsForStudent: активные темы модуля, видимые ученику —
// модуль принадлежит курсу, по которому ученик состоит хотя бы в одной
// группе. Область видимости по группе, а не по "первой группе курса".
func ListActiveTopicsForStudent(ctx context.Context, database *sql.DB, moduleID, studentID int64) ([]models.Topic, error) {
	return listTopics(ctx, database, `
SELECT t.id, t.name, t.status, t.module_id
FROM topics t
JOIN modules m ON m.id = t.module_id
WHERE t.module_id = $1
  AND t.status = 'active'
  AND EXISTS (
      SELECT 1
      FROM groups g
      JOIN group_students gs ON gs.group_id = g.id
      WHERE g.course_id = m.course_id AND gs.student_id = $2
  )
ORDER BY t.id`, moduleID, studentID)
}

func listTopics(ctx context.Context, database *sql.DB, query string, args ...any) ([]models.Topic, error) {
	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Status, &t.ModuleID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func UpdateTopic(ctx context.Context, database *sql.DB, t *models.Topic) error {
	res, err := database.ExecContext(ctx,
		`UPDATE topics SET name = $1, status = $2, module_id = $3 WHERE id = $4`,
		t.Name, t.Status, t.ModuleID, t.ID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("topic not found")
	}
	return nil
}

// SetTopicStatus меняет статус темы только внутри её модуля —
// преподаватель не может задеть тему чужого модуля.
func SetTopicStatus(ctx context.Context, database *sql.DB, topicID, moduleID int64, status models.TopicStatus) error {
	res, err := database.ExecContext(ctx,
		`UPDATE topics SET status = $1 WHERE id = $2 AND module_id = $3`,
		status, topicID, moduleID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("topic not found")
	}
	return nil
}

func DeleteTopic(ctx context.Context, database *sql.DB, id int64) error {
	res, err := database.ExecContext(ctx, `DELETE FROM topics WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("topic not found")
	}
	return nil
}

func CountTopics(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics`).Scan(&n)
	return n, err
}
