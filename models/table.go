package models

import "time"

type Table struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	HallID     uint      `gorm:"not null" json:"hall_id"`
	Hall       Hall      `gorm:"foreignKey:HallID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"hall"`
	Number     string    `gorm:"type:varchar(10);not null" json:"number"`
	Seats      int       `gorm:"not null" json:"seats"`
	IsReserved bool      `gorm:"not null;default:false" json:"is_reserved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
