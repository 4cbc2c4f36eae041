package repository

import (
	"context"

	"food-ordering-api/models"

	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) WithTx(tx *gorm.DB) *MenuRepository {
	return &MenuRepository{db: tx}
}

// ── Categories ──────────────────────────────────────────────────────────────

func (r *MenuRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Omit("MenuItems").Create(category).Error
}

// FindCategory looks up a category scoped to its restaurant
func (r *MenuRepository) FindCategory(ctx context.Context, restaurantID, categoryID uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("id = ? AND restaurant_id = ?", categoryID, restaurantID).First(&category).Error
	if err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// ListCategories returns the restaurant's categories with their items
func (r *MenuRepository) ListCategories(ctx context.Context, restaurantID uint) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("menu_items.id") }).
		Where("restaurant_id = ?", restaurantID).
		Order("id").
		Find(&categories).Error
	return categories, err
}

// ── Menu items ──────────────────────────────────────────────────────────────

func (r *MenuRepository) CreateItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) FindItem(ctx context.Context, id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// FindItems loads the given ids keyed by id; unknown ids are absent
func (r *MenuRepository) FindItems(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	out := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}

func (r *MenuRepository) UpdateItem(ctx context.Context, id uint, fields map[string]any) error {
	return r.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(fields).Error
}

func (r *MenuRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.MenuItem{}, id).Error
}

// ListItems returns up to limit items across all restaurants
func (r *MenuRepository) ListItems(ctx context.Context, limit int) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Find(&items).Error
	return items, err
}
