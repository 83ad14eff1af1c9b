//go:build testutil
// +build testutil

package db_test

import (
	"context"
	"testing"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/testutil/testdb"
)

func TestCreateGroup_Links(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	teacherID := mustSeedUser(t, h.DB, "Учитель", models.Teacher)
	s1 := mustSeedUser(t, h.DB, "Ученик 1", models.Student)
	s2 := mustSeedUser(t, h.DB, "Ученик 2", models.Student)
	groupID := mustSeedGroup(t, h.DB, teacherID, []string{"Monday", "wednesday"},
		date(2024, 1, 1), date(2024, 3, 1), s1, s2)

	group, err := db.GetGroupByID(ctx, h.DB, groupID)
	if err != nil {
		t.Fatal(err)
	}
	if len(group.Days) != 2 {
		t.Fatalf("ожидали два дня недели, получили %v", group.Days)
	}
	if len(group.StudentIDs) != 2 {
		t.Fatalf("ожидали двух учеников, получили %v", group.StudentIDs)
	}

	if ok, err := db.IsGroupStudent(ctx, h.DB, groupID, s1); err != nil || !ok {
		t.Fatalf("ученик должен числиться в группе: ok=%v err=%v", ok, err)
	}
	if ok, _ := db.IsGroupStudent(ctx, h.DB, groupID, teacherID); ok {
		t.Fatal("учитель не должен числиться учеником группы")
	}
}

func TestCreateGroup_UnknownDay(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	teacherID := mustSeedUser(t, h.DB, "Учитель", models.Teacher)
	courseID, err := db.CreateCourse(ctx, h.DB, "Go")
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.CreateGroup(ctx, h.DB, &models.Group{
		Name:      "G-2",
		CourseID:  courseID,
		TeacherID: teacherID,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 2, 1),
		Days:      []string{"someday"},
	})
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindValidation {
		t.Fatalf("неизвестный день недели должен давать ошибку валидации, получили %v", err)
	}
}

func TestGetGroupForTeacher_Ownership(t *testing.T) {
	h, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()
	ctx := context.Background()

	owner := mustSeedUser(t, h.DB, "Учитель 1", models.Teacher)
	other := mustSeedUser(t, h.DB, "Учитель 2", models.Teacher)
	groupID := mustSeedGroup(t, h.DB, owner, []string{"friday"}, date(2024, 1, 1), date(2024, 2, 1))

	if _, err := db.GetGroupForTeacher(ctx, h.DB, groupID, owner); err != nil {
		t.Fatal(err)
	}
	_, err = db.GetGroupForTeacher(ctx, h.DB, groupID, other)
	if k, ok := apperr.KindOf(err); !ok || k != apperr.KindNotFound {
		t.Fatalf("чужая группа должна быть невидима для учителя, получили %v", err)
	}
}
