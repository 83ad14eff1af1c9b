//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/testutil/testdb"
)

func TestUpsertAttendance(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	teacherID := mustSeedUser(t, h.DB, "Учитель", models.Teacher)
	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	// 01.01.2024 — понедельник
	groupID := mustSeedGroup(t, h.DB, teacherID, []string{"monday", "wednesday"},
		date(2024, 1, 1), date(2024, 1, 31), studentID)

	lesson := date(2024, 1, 3)

	created, err := db.UpsertAttendance(ctx, h.DB, groupID, studentID, lesson, models.Present)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("первая запись должна быть created")
	}

	// повторная запись с другим статусом — update, строка одна
	created, err = db.UpsertAttendance(ctx, h.DB, groupID, studentID, lesson, models.Absent)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("повторная запись должна быть updated")
	}

	records, err := db.ListAttendanceByGroup(ctx, h.DB, groupID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("ожидали одну строку, получили %d", len(records))
	}
	if records[0].Status != models.Absent {
		t.Fatalf("ожидали последний статус absent, получили %s", records[0].Status)
	}
}

func TestUpsertAttendance_Parallel(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	teacherID := mustSeedUser(t, h.DB, "Учитель", models.Teacher)
	studentID := mustSeedUser(t, h.DB, "Ученик", models.Student)
	groupID := mustSeedGroup(t, h.DB, teacherID, []string{"monday"},
		date(2024, 1, 1), date(2024, 1, 31), studentID)

	lesson := date(2024, 1, 8)
	statuses := []models.AttendanceStatus{models.Present, models.Absent}

	wg := sync.WaitGroup{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = db.UpsertAttendance(ctx, h.DB, groupID, studentID, lesson, statuses[i%2])
		}(i)
	}
	wg.Wait()

	records, err := db.ListAttendanceByGroup(ctx, h.DB, groupID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("конкурентный upsert по одной тройке должен дать одну строку, получили %d", len(records))
	}
}
