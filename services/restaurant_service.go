package services

import (
	"context"
	"errors"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const regularMenuSize = 6

type RestaurantService struct {
	restaurants *repository.RestaurantRepository
	menu        *repository.MenuRepository
	log         logrus.FieldLogger
}

func NewRestaurantService(db *gorm.DB, log logrus.FieldLogger) *RestaurantService {
	return &RestaurantService{
		restaurants: repository.NewRestaurantRepository(db),
		menu:        repository.NewMenuRepository(db),
		log:         log,
	}
}

// RestaurantCard is a restaurant with its review aggregate, as listed to customers
type RestaurantCard struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Slug    string  `json:"slug"`
	City    string  `json:"city"`
	Rating  float64 `json:"rating"`
	Reviews int64   `json:"reviews"`
}

func ratingCards(ctx context.Context, repo *repository.RestaurantRepository, restaurants []models.Restaurant) ([]RestaurantCard, error) {
	ids := make([]uint, 0, len(restaurants))
	for _, r := range restaurants {
		ids = append(ids, r.ID)
	}
	summaries, err := repo.RatingSummaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	cards := make([]RestaurantCard, 0, len(restaurants))
	for _, r := range restaurants {
		summary := summaries[r.ID]
		cards = append(cards, RestaurantCard{
			ID:      r.ID,
			Name:    r.Name,
			Slug:    r.Slug,
			City:    r.City,
			Rating:  round1(summary.Average),
			Reviews: summary.Reviews,
		})
	}
	return cards, nil
}

// ----- Public -----

// List returns the restaurants customers can order from
func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	restaurants, err := s.restaurants.ListVisible(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return restaurants, nil
}

func (s *RestaurantService) Featured(ctx context.Context) ([]RestaurantCard, error) {
	restaurants, err := s.restaurants.ListVisible(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	cards, err := ratingCards(ctx, s.restaurants, restaurants)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cards, nil
}

// Detail returns the restaurant with its full menu
func (s *RestaurantService) Detail(ctx context.Context, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindWithMenu(ctx, id)
	if err != nil {
		return nil, lookup(err, "Restaurant not found")
	}
	return restaurant, nil
}

func (s *RestaurantService) RegularItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := s.menu.ListItems(ctx, regularMenuSize)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

// ----- Owner profile -----

type UpdateRestaurantInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	IsActive    *bool   `json:"is_active"`
}

// UpdateProfile applies the provided fields; a new name also renews the slug
func (s *RestaurantService) UpdateProfile(ctx context.Context, restaurant *models.Restaurant, in UpdateRestaurantInput) (*models.Restaurant, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.Validation("Restaurant name must not be empty.")
		}
		fields["name"] = name
		fields["slug"] = slug.Make(name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Address != nil {
		fields["address"] = *in.Address
	}
	if in.City != nil {
		fields["city"] = *in.City
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}

	if len(fields) > 0 {
		if err := s.restaurants.Update(ctx, restaurant.ID, fields); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	updated, err := s.restaurants.FindByID(ctx, restaurant.ID)
	if err != nil {
		return nil, lookup(err, "Restaurant not found")
	}
	return updated, nil
}

// ----- Owner menu -----

func (s *RestaurantService) Menu(ctx context.Context, restaurant *models.Restaurant) ([]models.Category, error) {
	categories, err := s.menu.ListCategories(ctx, restaurant.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

func (s *RestaurantService) CreateCategory(ctx context.Context, restaurant *models.Restaurant, in CategoryInput) (*models.Category, error) {
	category := &models.Category{RestaurantID: restaurant.ID, Name: strings.TrimSpace(in.Name)}
	if category.Name == "" {
		return nil, apperror.Validation("Category name must not be empty.")
	}
	if err := s.menu.CreateCategory(ctx, category); err != nil {
		return nil, apperror.Internal(err)
	}
	return category, nil
}

type MenuItemInput struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
}

// CreateItem adds an item to one of the restaurant's own categories.
// Items are available unless stated otherwise.
func (s *RestaurantService) CreateItem(ctx context.Context, restaurant *models.Restaurant, in MenuItemInput) (*models.MenuItem, error) {
	if err := s.ownCategory(ctx, restaurant, in.CategoryID); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		RestaurantID: restaurant.ID,
		CategoryID:   in.CategoryID,
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Price:        round2(in.Price),
		IsAvailable:  in.IsAvailable == nil || *in.IsAvailable,
		ImageURL:     in.ImageURL,
	}
	if err := s.menu.CreateItem(ctx, item); err != nil {
		return nil, apperror.Internal(err)
	}
	return item, nil
}

type UpdateMenuItemInput struct {
	CategoryID  *uint    `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
}

// UpdateItem changes the menu only; existing order lines keep their snapshot
func (s *RestaurantService) UpdateItem(ctx context.Context, restaurant *models.Restaurant, itemID uint, in UpdateMenuItemInput) (*models.MenuItem, error) {
	item, err := s.ownItem(ctx, restaurant, itemID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.CategoryID != nil {
		if err := s.ownCategory(ctx, restaurant, *in.CategoryID); err != nil {
			return nil, err
		}
		fields["category_id"] = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperror.Validation("Menu item name must not be empty.")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, apperror.Validation("Price must be greater than zero.")
		}
		fields["price"] = round2(*in.Price)
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}

	if len(fields) > 0 {
		if err := s.menu.UpdateItem(ctx, item.ID, fields); err != nil {
			return nil, apperror.Internal(err)
		}
	}
	return s.ownItem(ctx, restaurant, itemID)
}

func (s *RestaurantService) DeleteItem(ctx context.Context, restaurant *models.Restaurant, itemID uint) error {
	item, err := s.ownItem(ctx, restaurant, itemID)
	if err != nil {
		return err
	}
	if err := s.menu.DeleteItem(ctx, item.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

type AvailabilityInput struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

func (s *RestaurantService) SetAvailability(ctx context.Context, restaurant *models.Restaurant, itemID uint, in AvailabilityInput) (*models.MenuItem, error) {
	item, err := s.ownItem(ctx, restaurant, itemID)
	if err != nil {
		return nil, err
	}
	if in.IsAvailable == nil {
		return nil, apperror.Validation("is_available is required")
	}
	if err := s.menu.UpdateItem(ctx, item.ID, map[string]any{"is_available": *in.IsAvailable}); err != nil {
		return nil, apperror.Internal(err)
	}
	item.IsAvailable = *in.IsAvailable
	return item, nil
}

func (s *RestaurantService) ownCategory(ctx context.Context, restaurant *models.Restaurant, categoryID uint) error {
	_, err := s.menu.FindCategory(ctx, restaurant.ID, categoryID)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.Validation("Invalid category.")
	}
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *RestaurantService) ownItem(ctx context.Context, restaurant *models.Restaurant, itemID uint) (*models.MenuItem, error) {
	item, err := s.menu.FindItem(ctx, itemID)
	if err != nil {
		return nil, lookup(err, "Menu item not found")
	}
	if item.RestaurantID != restaurant.ID {
		return nil, apperror.Forbidden("Unauthorized to modify this item.")
	}
	return item, nil
}
