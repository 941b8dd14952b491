package repository

import (
	"leave-tracker/internal/models"

	"gorm.io/gorm"
)

type EmployeeColorRepository interface {
	Create(emp *models.EmployeeColor) error
	GetByName(name string) (*models.EmployeeColor, error)
	GetAllNames() ([]string, error)
	FindOrCreate(name string, generate func() string) (*models.EmployeeColor, error)
}

type GormEmployeeColorRepository struct {
	db *gorm.DB
}

func NewGormEmployeeColorRepository(db *gorm.DB) (EmployeeColorRepository, error) {
	if err := db.AutoMigrate(&models.EmployeeColor{}); err != nil {
		return nil, err
	}
	return &GormEmployeeColorRepository{db: db}, nil
}

func (r *GormEmployeeColorRepository) Create(emp *models.EmployeeColor) error {
	return r.db.Create(emp).Error
}

func (r *GormEmployeeColorRepository) GetByName(name string) (*models.EmployeeColor, error) {
	var emp models.EmployeeColor
	err := r.db.Where("name = ?", name).First(&emp).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// GetAllNames returns every known employee name in alphabetical order,
// as shown in the employee selector.
func (r *GormEmployeeColorRepository) GetAllNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.EmployeeColor{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

// FindOrCreate returns the stored color for name, creating one with
// generate() if the name was never seen. The upsert is a single statement
// so two concurrent lookups of the same name cannot assign two colors.
func (r *GormEmployeeColorRepository) FindOrCreate(name string, generate func() string) (*models.EmployeeColor, error) {
	var emp models.EmployeeColor
	err := r.db.Where(models.EmployeeColor{Name: name}).
		Attrs(models.EmployeeColor{Color: generate()}).
		FirstOrCreate(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
