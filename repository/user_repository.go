package repository

import (
	"context"
	"fmt"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// EnsureRoles creates the default roles when they are missing
func (r *UserRepository) EnsureRoles(ctx context.Context) error {
	for _, role := range models.DefaultRoles {
		row := role
		if err := r.db.WithContext(ctx).Where(models.Role{Name: role.Name}).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("ensure role %s: %w", role.Name, err)
		}
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// Create inserts user and links it to the named roles
func (r *UserRepository) Create(ctx context.Context, user *models.User, roles ...models.RoleName) error {
	if len(roles) > 0 {
		var rows []models.Role
		if err := r.db.WithContext(ctx).Where("name IN ?", roles).Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) != len(roles) {
			return fmt.Errorf("roles %v are not all defined", roles)
		}
		user.Roles = rows
	}
	// roles already exist; only the join rows are written
	return r.db.WithContext(ctx).Omit("Roles.*").Create(user).Error
}

func (r *UserRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("name", name).Error
}

func (r *UserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
