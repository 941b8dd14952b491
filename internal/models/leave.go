package models

import "time"

// Leave is one employee-day absence entry. Multi-day leave is stored as
// independent rows, one per calendar day, never as a range.
type Leave struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	Name    string    `gorm:"type:varchar(200);not null;index" json:"name"`
	Date    time.Time `gorm:"type:date;not null;index" json:"date"`
	Note    string    `gorm:"type:varchar(500)" json:"note"`
	HalfDay bool      `gorm:"not null;default:false" json:"half_day"`
}

func (Leave) TableName() string {
	return "leaves"
}

// DateISO returns the date as YYYY-MM-DD, the key used for grouping.
func (l *Leave) DateISO() string {
	return l.Date.Format("2006-01-02")
}
