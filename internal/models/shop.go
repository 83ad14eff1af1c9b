package models

import "time"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int       `db:"price" json:"price"`
	AddedBy     int64     `db:"added_by" json:"added_by"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Order создаётся только внутри транзакции покупки и дальше не меняется.
type Order struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	OrderedAt time.Time `db:"ordered_at" json:"ordered_at"`
}
