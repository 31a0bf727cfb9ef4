package models

import (
	"time"
)

type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name     string  `gorm:"not null"                  json:"name"`
	Category string  `gorm:"index;not null"            json:"category"`
	Price    float64 `gorm:"not null;check:price>=0"   json:"price"`
	Photo    string  `json:"photo"`
}

type Order struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `gorm:"not null"                 json:"first_name"`
	LastName  string `gorm:"not null"                 json:"last_name"`
	Phone     string `gorm:"not null"                 json:"phone"`
	Email     string `gorm:"not null"                 json:"email"`
	CreatedAt int64  `gorm:"not null"                 json:"created_at"`
}

type OrderProduct struct {
	ID        uint `gorm:"primaryKey"                json:"id"`
	OrderID   uint `gorm:"index;not null"            json:"order_id"`
	ProductID uint `gorm:"not null"                  json:"product_id"`
	Amount    uint `gorm:"default:1;check:amount>0"  json:"amount"`
}

// Session is the server-side row behind a visitor's cookie. Data holds
// the JSON-encoded session.State blob.
type Session struct {
	ID        string    `gorm:"primaryKey"      json:"id"`
	Data      []byte    `gorm:"not null"        json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
