package models

import "time"

type DisciplinaryRecord struct {
	ID         uint      `gorm:"primaryKey"`
	EmployeeID uint      `gorm:"not null;index"`
	Reason     string    `gorm:"type:text;not null"`
	Level      string    `gorm:"type:varchar(16);not null"`
	ExpiryDate time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (DisciplinaryRecord) TableName() string {
	return "disciplinary_records"
}
