package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Spok95/educenter-api/internal/apperr"
	"github.com/Spok95/educenter-api/internal/ctxutil"
	"github.com/Spok95/educenter-api/internal/db"
	"github.com/Spok95/educenter-api/internal/export"
	"github.com/Spok95/educenter-api/internal/models"
	"github.com/Spok95/educenter-api/internal/schedule"
)

type recordAttendanceRequest struct {
	StudentID int64  `json:"student_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type recordAttendanceResponse struct {
	Message string                  `json:"message"`
	Student string                  `json:"student"`
	Date    string                  `json:"date"`
	Status  models.AttendanceStatus `json:"status"`
}

// RecordAttendance — запись отметки. Порядок проверок фиксирован:
// формат даты → принадлежность дате расписания → членство ученика →
// статус. Сама запись — атомарный upsert по тройке (group, student, date).
func (h *Handler) RecordAttendance(c *gin.Context) {
	teacher, err := currentUser(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	groupID, err := pathID(c, "groupId")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req recordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, apperr.Validation("student_id, date and status are required"))
		return
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	group, err := db.GetGroupForTeacher(ctx, h.DB, groupID, teacher.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		h.fail(c, apperr.Validation("invalid date format, use dd.mm.yyyy"))
		return
	}
	if !schedule.Contains(date, group.StartDate, group.EndDate, group.Days) {
		h.fail(c, apperr.Validation("date not valid for group schedule"))
		return
	}

	student, err := db.GetUserByIDAndRole(ctx, h.DB, req.StudentID, models.Student)
	if err != nil {
		h.fail(c, err)
		return
	}
	inGroup, err := db.IsGroupStudent(ctx, h.DB, group.ID, student.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !inGroup {
		h.fail(c, apperr.NotFound("student not found in group"))
		return
	}

	status, ok := models.NormalizeAttendanceStatus(req.Status)
	if !ok {
		h.fail(c, apperr.Validation("invalid status, use present or absent"))
		return
	}

	created, err := db.UpsertAttendance(ctx, h.DB, group.ID, student.ID, date, status)
	if err != nil {
		h.fail(c, err)
		return
	}

	msg, code := "Attendance updated", http.StatusOK
	if created {
		msg, code = "Attendance recorded", http.StatusCreated
	}
	c.JSON(code, recordAttendanceResponse{
		Message: msg,
		Student: student.FullName,
		Date:    req.Date,
		Status:  status,
	})
}

type attendanceMatrixResponse struct {
	GroupID    int64                         `json:"group_id"`
	GroupName  string                        `json:"group_name"`
	Dates      []string                      `json:"dates"`
	Attendance map[string]map[string]*string `json:"attendance"`
}

// буква в букву как на записи: ключи дат в dd.mm.yyyy, отсутствующая
// отметка — null, а не absent.
func (h *Handler) attendanceMatrix(c *gin.Context) (*attendanceMatrixResponse, error) {
	teacher, err := currentUser(c)
	if err != nil {
		return nil, err
	}
	groupID, err := pathID(c, "groupId")
	if err != nil {
		return nil, err
	}

	ctx, cancel := ctxutil.WithDBTimeout(c.Request.Context())
	defer cancel()

	group, err := db.GetGroupForTeacher(ctx, h.DB, groupID, teacher.ID)
	if err != nil {
		return nil, err
	}

	lessonDates := schedule.LessonDates(group.StartDate, group.EndDate, group.Days)
	dates := make([]string, 0, len(lessonDates))
	for _, d := range lessonDates {
		dates = append(dates, schedule.FormatDate(d))
	}

	students, err := db.ListGroupStudents(ctx, h.DB, group.ID)
	if err != nil {
		return nil, err
	}
	records, err := db.ListAttendanceByGroup(ctx, h.DB, group.ID)
	if err != nil {
		return nil, err
	}

	byKey := make(map[int64]map[string]models.AttendanceStatus)
	for _, rec := range records {
		if byKey[rec.StudentID] == nil {
			byKey[rec.StudentID] = make(map[string]models.AttendanceStatus)
		}
		byKey[rec.StudentID][schedule.FormatDate(rec.Date)] = rec.Status
	}

	matrix := make(map[string]map[string]*string, len(students))
	for _, st := range students {
		row := make(map[string]*string, len(dates))
		for _, d := range dates {
			if status, ok := byKey[st.ID][d]; ok {
				s := string(status)
				row[d] = &s
			} else {
				row[d] = nil
			}
		}
		matrix[st.FullName] = row
	}

	return &attendanceMatrixResponse{
		GroupID:    group.ID,
		GroupName:  group.Name,
		Dates:      dates,
		Attendance: matrix,
	}, nil
}

func (h *Handler) AttendanceMatrix(c *gin.Context) {
	resp, err := h.attendanceMatrix(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportAttendance отдаёт тот же журнал книгой xlsx.
func (h *Handler) ExportAttendance(c *gin.Context) {
	resp, err := h.attendanceMatrix(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	wb, err := export.NewAttendanceWorkbook(resp.GroupName, resp.Dates, resp.Attendance)
	if err != nil {
		h.fail(c, err)
		return
	}
	filename := export.BuildJournalFilename(resp.GroupName)

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := wb.File.Write(c.Writer); err != nil {
		h.Log.Error("attendance export write failed")
	}
}
