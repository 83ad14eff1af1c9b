//go:build testutil
// +build testutil

package handlers_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Spok95/educenter-api/internal/api/handlers"
	"github.com/Spok95/educenter-api/internal/auth"
	"github.com/Spok95/educenter-api/internal/cache"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/testutil/testdb"
)

type attendanceFixture struct {
	h         *handlers.Handler
	database  *sql.DB
	teacher   *models.User
	studentID int64
	groupID   int64
	close     func()
}

// Группа по понедельникам и средам с 01.01.2024 (пн) по 31.01.2024.
func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()
	hdb, err := testdb.Start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	teacherID := seedUser(t, hdb.DB, "Учитель", models.Teacher)
	studentID := seedUser(t, hdb.DB, "Ученик", models.Student)
	courseID, err := db.CreateCourse(ctx, hdb.DB, "Go")
	if err != nil {
		t.Fatal(err)
	}
	groupID, err := db.CreateGroup(ctx, hdb.DB, &models.Group{
		Name:       "G-1",
		CourseID:   courseID,
		TeacherID:  teacherID,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Days:       []string{"monday", "wednesday"},
		StudentIDs: []int64{studentID},
	})
	if err != nil {
		t.Fatal(err)
	}
	teacher, err := db.GetUserByID(ctx, hdb.DB, teacherID)
	if err != nil {
		t.Fatal(err)
	}

	h := handlers.New(hdb.DB, zap.NewNop(), auth.NewTokenManager("test", time.Hour), cache.NewUsers(""))
	return &attendanceFixture{
		h:         h,
		database:  hdb.DB,
		teacher:   teacher,
		studentID: studentID,
		groupID:   groupID,
		close:     hdb.Close,
	}
}

var phoneSeq int64

func seedUser(t *testing.T, database *sql.DB, name string, role models.Role) int64 {
	t.Helper()
	var id int64
	err := database.QueryRow(`
		INSERT INTO users (phone, full_name, password_hash, role)
		VALUES ($1, $2, 'x', $3)
		RETURNING id`,
		fmt.Sprintf("+99891%07d", atomic.AddInt64(&phoneSeq, 1)), name, string(role)).Scan(&id)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func (f *attendanceFixture) record(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/teacher/group/1/attendance", strings.NewReader(body))
	c.Request = req.WithContext(ctxutil.WithUser(req.Context(), f.teacher))
	c.Params = gin.Params{{Key: "groupId", Value: fmt.Sprint(f.groupID)}}
	f.h.RecordAttendance(c)
	return w
}

func TestRecordAttendance_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newAttendanceFixture(t)
	defer f.close()

	// первая запись — created
	w := f.record(t, fmt.Sprintf(`{"student_id": %d, "date": "03.01.2024", "status": "Present"}`, f.studentID))
	if w.Code != http.StatusCreated {
		t.Fatalf("ожидали 201, получили %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "present" {
		t.Fatalf("статус на выходе должен быть каноническим lowercase, получили %v", resp["status"])
	}

	// повторная на ту же дату — updated
	w = f.record(t, fmt.Sprintf(`{"student_id": %d, "date": "03.01.2024", "status": "absent"}`, f.studentID))
	if w.Code != http.StatusOK {
		t.Fatalf("ожидали 200 на перезапись, получили %d: %s", w.Code, w.Body.String())
	}
}

func TestRecordAttendance_HandlerValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newAttendanceFixture(t)
	defer f.close()

	cases := []struct {
		name string
		body string
		code int
	}{
		{"кривой формат даты", fmt.Sprintf(`{"student_id": %d, "date": "2024-01-03", "status": "present"}`, f.studentID), http.StatusBadRequest},
		{"дата вне расписания (вторник)", fmt.Sprintf(`{"student_id": %d, "date": "02.01.2024", "status": "present"}`, f.studentID), http.StatusBadRequest},
		{"дата вне диапазона группы", fmt.Sprintf(`{"student_id": %d, "date": "05.02.2024", "status": "present"}`, f.studentID), http.StatusBadRequest},
		{"неизвестный статус", fmt.Sprintf(`{"student_id": %d, "date": "03.01.2024", "status": "late"}`, f.studentID), http.StatusBadRequest},
		{"чужой ученик", `{"student_id": 99999, "date": "03.01.2024", "status": "present"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := f.record(t, tc.body)
			if w.Code != tc.code {
				t.Fatalf("ожидали %d, получили %d: %s", tc.code, w.Code, w.Body.String())
			}
		})
	}

	// ни одна из невалидных попыток не должна оставить записей
	records, err := db.ListAttendanceByGroup(context.Background(), f.database, f.groupID)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Fatalf("невалидные запросы не должны писать в журнал, нашли %d записей", len(records))
	}
}
