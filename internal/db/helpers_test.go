//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
)

func mustSeedUser(t *testing.T, database *sql.DB, name string, role models.Role) int64 {
	t.Helper()
	var id int64
	err := database.QueryRow(`
		INSERT INTO users (phone, full_name, password_hash, role)
		VALUES ($1, $2, 'x', $3)
		RETURNING id`,
		fmt.Sprintf("+99890%07d", rand.Intn(10_000_000)), name, string(role)).Scan(&id)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustSeedGroup(t *testing.T, database *sql.DB, teacherID int64, days []string, start, end time.Time, studentIDs ...int64) int64 {
	t.Helper()
	ctx := context.Background()
	courseID, err := db.CreateCourse(ctx, database, "Go")
	if err != nil {
		t.Fatal(err)
	}
	id, err := db.CreateGroup(ctx, database, &models.Group{
		Name:       "G-1",
		CourseID:   courseID,
		TeacherID:  teacherID,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		StudentIDs: studentIDs,
	})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func mustCoins(t *testing.T, database *sql.DB, studentID int64) int {
	t.Helper()
	var coins int
	if err := database.QueryRow(`SELECT coins FROM users WHERE id = $1`, studentID).Scan(&coins); err != nil {
		t.Fatal(err)
	}
	return coins
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
