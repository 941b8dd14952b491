package service

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"leave-tracker/internal/models"
	"leave-tracker/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Importer migrates flat-file data left over from earlier deployments into
// the store. It runs once at startup and only when the store holds no leave
// records at all. Each file is imported best-effort as a unit: a failure
// rolls that file back and the application carries on without it.
type Importer struct {
	db        *gorm.DB
	leaveRepo repository.LeaveRepository
	logger    *logrus.Logger
}

func NewImporter(db *gorm.DB, leaveRepo repository.LeaveRepository) *Importer {
	return &Importer{
		db:        db,
		leaveRepo: leaveRepo,
		logger:    logrus.New(),
	}
}

type leaveJSON struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Date    string `json:"date"`
	Note    string `json:"note"`
	HalfDay bool   `json:"half_day"`
}

// Run performs the import. Missing files are not errors.
func (i *Importer) Run(employeesFile, leavesFile string) error {
	count, err := i.leaveRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count leaves: %w", err)
	}
	if count > 0 {
		return nil
	}

	if err := i.importEmployees(employeesFile); err != nil {
		i.logger.Warnf("Employee import from %s failed, skipping: %v", employeesFile, err)
	}
	if err := i.importLeaves(leavesFile); err != nil {
		i.logger.Warnf("Leave import from %s failed, skipping: %v", leavesFile, err)
	}
	return nil
}

func (i *Importer) importEmployees(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var emps map[string]string
	if err := json.Unmarshal(data, &emps); err != nil {
		return err
	}

	imported := 0
	err = i.db.Transaction(func(tx *gorm.DB) error {
		for name, color := range emps {
			var existing models.EmployeeColor
			res := tx.Where("name = ?", name).First(&existing)
			if res.Error == nil {
				continue
			}
			if res.Error != gorm.ErrRecordNotFound {
				return res.Error
			}
			if err := tx.Create(&models.EmployeeColor{Name: name, Color: color}).Error; err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return err
	}

	i.logger.Infof("Imported %d employee color(s) from %s", imported, path)
	return nil
}

func (i *Importer) importLeaves(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var entries []leaveJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	imported := 0
	err = i.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range entries {
			date, err := time.ParseInLocation("2006-01-02", entry.Date, time.UTC)
			if err != nil {
				// Unparsable dates are dropped, the rest of the file still counts.
				continue
			}

			var existing models.Leave
			res := tx.Where("name = ? AND date = ? AND note = ?", entry.Name, date, entry.Note).
				First(&existing)
			if res.Error == nil {
				continue
			}
			if res.Error != gorm.ErrRecordNotFound {
				return res.Error
			}

			leave := &models.Leave{
				Name:    entry.Name,
				Date:    date,
				Note:    entry.Note,
				HalfDay: entry.HalfDay,
			}
			if err := tx.Create(leave).Error; err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return err
	}

	i.logger.Infof("Imported %d leave record(s) from %s", imported, path)
	return nil
}
