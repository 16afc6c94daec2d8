package repository

import (
	"time"

	"github.com/beautique/beautique-backend/internal/app/model"
	"github.com/beautique/beautique-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(admin *model.AdminUser) error
	FindByUsername(username string) (*model.AdminUser, error)
	FindByID(id uint) (*model.AdminUser, error)
	Update(admin *model.AdminUser) error
	TouchLastLogin(id uint, at time.Time) error
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *model.AdminUser) error {
	logger.Debug("Creating admin user in database", map[string]interface{}{
		"username": admin.Username,
	})

	if err := r.db.Create(admin).Error; err != nil {
		logger.Error("Failed to create admin user", err, map[string]interface{}{
			"username": admin.Username,
		})
		return err
	}
	return nil
}

func (r *adminRepository) FindByUsername(username string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) FindByID(id uint) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepository) Update(admin *model.AdminUser) error {
	if err := r.db.Save(admin).Error; err != nil {
		logger.Error("Failed to update admin user", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return err
	}
	return nil
}

func (r *adminRepository) TouchLastLogin(id uint, at time.Time) error {
	err := r.db.Model(&model.AdminUser{}).
		Where("id = ?", id).
		Update("last_login", at).Error
	if err != nil {
		logger.Error("Failed to update admin last login", err, map[string]interface{}{
			"admin_id": id,
		})
		return err
	}
	return nil
}
