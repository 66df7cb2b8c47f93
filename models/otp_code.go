package models

import "time"

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 5 * time.Minute

type OTPCode struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber string    `gorm:"type:varchar(20);not null;index" json:"phone_number"`
	Code        string    `gorm:"type:varchar(6);not null" json:"-"`
	Used        bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt   time.Time `json:"created_at"`
}

func (o *OTPCode) IsExpired() bool {
	return time.Since(o.CreatedAt) > OTPTTL
}
