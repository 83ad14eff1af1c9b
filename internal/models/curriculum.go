package models

import "time"

type Course struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

type Module struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	CourseID int64  `db:"course_id" json:"course_id"`
}

type TopicStatus string

const (
	TopicActive   TopicStatus = "active"
	TopicInactive TopicStatus = "inactive"
)

func ParseTopicStatus(s string) (TopicStatus, bool) {
	switch TopicStatus(s) {
	case TopicActive, TopicInactive:
		return TopicStatus(s), true
	}
	return "", false
}

type Topic struct {
	ID       int64       `db:"id" json:"id"`
	Name     string      `db:"name" json:"name"`
	Status   TopicStatus `db:"status" json:"status"`
	ModuleID int64       `db:"module_id" json:"module_id"`
}

// Day — справочник дней недели; имена в нижнем регистре ("monday" ... "sunday").
type Day struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Group — учебная группа: курс, преподаватель, недельный паттерн дней
// и границы срока обучения. Состав учеников меняется со временем,
// история посещаемости при этом не трогается.
type Group struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	CourseID   int64     `db:"course_id" json:"course_id"`
	TeacherID  int64     `db:"teacher_id" json:"teacher_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	Days       []string  `json:"days"`
	StudentIDs []int64   `json:"students"`
}
