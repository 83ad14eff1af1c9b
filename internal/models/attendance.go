package models

import (
	"strings"
	"time"
)

type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
)

// NormalizeAttendanceStatus принимает статус без учёта регистра,
// наружу всегда уходит каноническая форма в нижнем регистре.
func NormalizeAttendanceStatus(s string) (AttendanceStatus, bool) {
	switch AttendanceStatus(strings.ToLower(strings.TrimSpace(s))) {
	case Present:
		return Present, true
	case Absent:
		return Absent, true
	}
	return "", false
}

// Attendance — одна отметка посещаемости; уникальна по (group, student, date).
type Attendance struct {
	ID        int64            `db:"id" json:"id"`
	GroupID   int64            `db:"group_id" json:"group_id"`
	StudentID int64            `db:"student_id" json:"student_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
}
