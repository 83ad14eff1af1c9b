package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/Spok95/educenter-api/internal/models"
)

// UpsertAttendance — атомарный insert-or-update по уникальной тройке
// (group, student, date). Отдельной проверки существования нет: два
// конкурентных вызова по одной тройке сериализуются на ON CONFLICT.
// created=true, если строка была вставлена (xmax = 0), иначе обновлена.
func UpsertAttendance(ctx context.Context, database *sql.DB, groupID, studentID int64, date time.Time, status models.AttendanceStatus) (bool, error) {
	var created bool
	err := database.QueryRowContext(ctx, `
INSERT INTO attendance (group_id, student_id, date, status)
VALUES ($1, $2, $3, $4)
ON CONFLICT (group_id, student_id, date) DO UPDATE SET status = excluded.status
RETURNING (xmax = 0)`,
		groupID, studentID, date, status).Scan(&created)
	return created, err
}

func ListAttendanceByGroup(ctx context.Context, database *sql.DB, groupID int64) ([]models.Attendance, error) {
	rows, err := database.QueryContext(ctx, `
SELECT id, group_id, student_id, date, status
FROM attendance WHERE group_id = $1 ORDER BY date, student_id`, groupID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Attendance
	for rows.Next() {
		var a models.Attendance
		if err := rows.Scan(&a.ID, &a.GroupID, &a.StudentID, &a.Date, &a.Status); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
