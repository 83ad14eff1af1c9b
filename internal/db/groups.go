package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/models"
)

// CreateGroup пишет группу вместе со связками дней и учеников одной
// транзакцией: наполовину созданная группа никому не видна.
func CreateGroup(ctx context.Context, database *sql.DB, g *models.Group) (int64, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx, `
INSERT INTO groups (name, course_id, teacher_id, start_date, end_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`,
		g.Name, g.CourseID, g.TeacherID, g.StartDate, g.EndDate).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := replaceGroupLinks(ctx, tx, id, g.Days, g.StudentIDs); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func UpdateGroup(ctx context.Context, database *sql.DB, g *models.Group) error {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
UPDATE groups SET name = $1, course_id = $2, teacher_id = $3, start_date = $4, end_date = $5
WHERE id = $6`,
		g.Name, g.CourseID, g.TeacherID, g.StartDate, g.EndDate, g.ID)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("group not found")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_days WHERE group_id = $1`, g.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_students WHERE group_id = $1`, g.ID); err != nil {
		return err
	}
	if err := replaceGroupLinks(ctx, tx, g.ID, g.Days, g.StudentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func replaceGroupLinks(ctx context.Context, tx *sql.Tx, groupID int64, days []string, studentIDs []int64) error {
	for _, day := range days {
		res, err := tx.ExecContext(ctx, `
INSERT INTO group_days (group_id, day_id)
SELECT $1, id FROM days WHERE name = lower($2)
ON CONFLICT DO NOTHING`, groupID, day)
		if err != nil {
			return err
		}
		if aff, _ := res.RowsAffected(); aff == 0 {
			return apperr.Validation("unknown day: " + day)
		}
	}
	for _, sid := range studentIDs {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO group_students (group_id, student_id)
SELECT $1, id FROM users WHERE id = $2 AND role = 'student'
ON CONFLICT DO NOTHING`, groupID, sid); err != nil {
			return err
		}
	}
	return nil
}

func GetGroupByID(ctx context.Context, database *sql.DB, id int64) (*models.Group, error) {
	var g models.Group
	err := database.QueryRowContext(ctx, `
SELECT id, name, course_id, teacher_id, start_date, end_date
FROM groups WHERE id = $1`, id).
		Scan(&g.ID, &g.Name, &g.CourseID, &g.TeacherID, &g.StartDate, &g.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("group not found")
	}
	if err != nil {
		return nil, err
	}
	if err := loadGroupLinks(ctx, database, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGroupForTeacher — группа строго своего преподавателя, иначе not found
// (чужой группы для него не существует).
func GetGroupForTeacher(ctx context.Context, database *sql.DB, groupID, teacherID int64) (*models.Group, error) {
	g, err := GetGroupByID(ctx, database, groupID)
	if err != nil {
		return nil, err
	}
	if g.TeacherID != teacherID {
		return nil, apperr.NotFound("group not found")
	}
	return g, nil
}

func loadGroupLinks(ctx context.Context, database *sql.DB, g *models.Group) error {
	rows, err := database.QueryContext(ctx, `
SELECT d.name FROM group_days gd JOIN days d ON d.id = gd.day_id
WHERE gd.group_id = $1 ORDER BY d.id`, g.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		g.Days = append(g.Days, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	srows, err := database.QueryContext(ctx, `
SELECT student_id FROM group_students WHERE group_id = $1 ORDER BY student_id`, g.ID)
	if err != nil {
		return err
	}
	defer func() { _ = srows.Close() }()
	for srows.Next() {
		var sid int64
		if err := srows.Scan(&sid); err != nil {
			return err
		}
		g.StudentIDs = append(g.StudentIDs, sid)
	}
	return srows.Err()
}

func ListGroups(ctx context.Context, database *sql.DB) ([]models.Group, error) {
	return listGroups(ctx, database,
		`SELECT id, name, course_id, teacher_id, start_date, end_date FROM groups ORDER BY id`)
}

func ListGroupsByTeacher(ctx context.Context, database *sql.DB, teacherID int64) ([]models.Group, error) {
	return listGroups(ctx, database,
		`SELECT id, name, course_id, teacher_id, start_date, end_date FROM groups WHERE teacher_id = $1 ORDER BY id`,
		teacherID)
}

func ListGroupsByStudent(ctx context.Context, database *sql.DB, studentID int64) ([]models.Group, error) {
	return listGroups(ctx, database, `
SELECT g.id, g.name, g.course_id, g.teacher_id, g.start_date, g.end_date
FROM groups g JOIN group_students gs ON gs.group_id = g.id
WHERE gs.student_id = $1 ORDER BY g.id`, studentID)
}

func listGroups(ctx context.Context, database *sql.DB, query string, args ...any) ([]models.Group, error) {
	rows, err := database.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.CourseID, &g.TeacherID, &g.StartDate, &g.EndDate); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := loadGroupLinks(ctx, database, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func DeleteGroup(ctx context.Context, database *sql.DB, id int64) error {
	res, err := database.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return apperr.NotFound("group not found")
	}
	return nil
}

// ListGroupStudents — текущий состав группы (имена нужны матрице посещаемости).
func ListGroupStudents(ctx context.Context, database *sql.DB, groupID int64) ([]models.User, error) {
	rows, err := database.QueryContext(ctx, `
SELECT `+prefixedUserCols("u")+`
FROM users u JOIN group_students gs ON gs.student_id = u.id
WHERE gs.group_id = $1 ORDER BY u.full_name, u.id`, groupID)
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

func prefixedUserCols(alias string) string {
	return alias + `.id, ` + alias + `.phone, ` + alias + `.full_name, ` + alias + `.password_hash, ` +
		alias + `.role, ` + alias + `.age, ` + alias + `.gender, ` + alias + `.is_active, ` +
		alias + `.is_staff, ` + alias + `.coins`
}

func IsGroupStudent(ctx context.Context, database *sql.DB, groupID, studentID int64) (bool, error) {
	var ok bool
	err := database.QueryRowContext(ctx, `
SELECT EXISTS (SELECT 1 FROM group_students WHERE group_id = $1 AND student_id = $2)`,
		groupID, studentID).Scan(&ok)
	return ok, err
}

func CountGroups(ctx context.Context, database *sql.DB) (int, error) {
	var n int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&n)
	return n, err
}
