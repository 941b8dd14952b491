package repository

import (
	"time"

	"leave-tracker/internal/models"

	"gorm.io/gorm"
)

type LeaveRepository interface {
	Create(leave *models.Leave) error
	CreateRange(leaves []models.Leave) error
	GetByID(id uint) (*models.Leave, error)
	GetAll() ([]models.Leave, error)
	GetByYearMonth(year, month int) ([]models.Leave, error)
	Delete(id uint) error
	Count() (int64, error)
}

type GormLeaveRepository struct {
	db *gorm.DB
}

func NewGormLeaveRepository(db *gorm.DB) (LeaveRepository, error) {
	if err := db.AutoMigrate(&models.Leave{}); err != nil {
		return nil, err
	}
	return &GormLeaveRepository{db: db}, nil
}

func (r *GormLeaveRepository) Create(leave *models.Leave) error {
	return r.db.Create(leave).Error
}

// CreateRange inserts all records as one batch. A failure anywhere in the
// batch persists nothing, so a multi-day range is all-or-nothing.
func (r *GormLeaveRepository) CreateRange(leaves []models.Leave) error {
	if len(leaves) == 0 {
		return nil
	}
	return r.db.Create(&leaves).Error
}

func (r *GormLeaveRepository) GetByID(id uint) (*models.Leave, error) {
	var leave models.Leave
	err := r.db.First(&leave, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

// GetAll returns every leave record ordered by date, then id. The grouped
// listing relies on this ordering.
func (r *GormLeaveRepository) GetAll() ([]models.Leave, error) {
	var leaves []models.Leave
	err := r.db.Order("date ASC, id ASC").Find(&leaves).Error
	return leaves, err
}

func (r *GormLeaveRepository) GetByYearMonth(year, month int) ([]models.Leave, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var leaves []models.Leave
	err := r.db.Where("date >= ? AND date < ?", start, end).
		Order("date ASC, id ASC").
		Find(&leaves).Error
	return leaves, err
}

// Delete removes zero or one record. Deleting an unknown id is a no-op,
// not an error.
func (r *GormLeaveRepository) Delete(id uint) error {
	return r.db.Delete(&models.Leave{}, id).Error
}

func (r *GormLeaveRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Leave{}).Count(&count).Error
	return count, err
}
