package models

type Role string

const (
	Director Role = "director"
	Teacher  Role = "teacher"
	Student  Role = "student"
)

type User struct {
	ID           int64   `db:"id" json:"id"`
	Phone        string  `db:"phone" json:"phone"`
	FullName     string  `db:"full_name" json:"full_name"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Role         Role    `db:"role" json:"role"`
	Age          *int    `db:"age" json:"age,omitempty"`
	Gender       *string `db:"gender" json:"gender,omitempty"`
	IsActive     bool    `db:"is_active" json:"is_active"`
	IsStaff      bool    `db:"is_staff" json:"is_staff"`
	Coins        int     `db:"coins" json:"coins"`
}
