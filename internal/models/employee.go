package models

import "time"

type Employee struct {
	ID           uint                 `gorm:"primaryKey"`
	Name         string               `gorm:"type:text;not null;index"`
	Department   string               `gorm:"type:varchar(192);not null;default:''"`
	EmployeeCode string               `gorm:"type:varchar(12);not null;index"`
	Records      []DisciplinaryRecord `gorm:"foreignKey:EmployeeID;references:ID"`
	CreatedAt    time.Time            `gorm:"not null"`
}

func (Employee) TableName() string {
	return "employees"
}
