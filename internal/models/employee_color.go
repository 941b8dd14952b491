package models

// EmployeeColor maps an employee name to its stable display color.
// The color is assigned on first sight and never changes afterwards.
type EmployeeColor struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(80)" json:"color"`
}

func (EmployeeColor) TableName() string {
	return "employees"
}
