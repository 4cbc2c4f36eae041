// Package seed loads the initial roles, accounts and demo restaurant.
// Running it again only fills in what is missing.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed default.yaml
var defaultData []byte

type Data struct {
	Users       []User       `yaml:"users"`
	Restaurants []Restaurant `yaml:"restaurants"`
	Rewards     []Reward     `yaml:"rewards"`
}

type User struct {
	Email    string            `yaml:"email"`
	Name     string            `yaml:"name"`
	Password string            `yaml:"password"`
	Roles    []models.RoleName `yaml:"roles"`
}

type Restaurant struct {
	Owner       string     `yaml:"owner"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Address     string     `yaml:"address"`
	City        string     `yaml:"city"`
	Verified    bool       `yaml:"verified"`
	Categories  []Category `yaml:"categories"`
}

type Category struct {
	Name  string `yaml:"name"`
	Items []Item `yaml:"items"`
}

type Item struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Price       float64 `yaml:"price"`
}

// Reward entries are only written for users whose ledger is still empty
type Reward struct {
	Email  string                   `yaml:"email"`
	Points int                      `yaml:"points"`
	Type   models.RewardTransaction `yaml:"type"`
	Reason string                   `yaml:"reason"`
}

// Load reads a seed file, or the embedded defaults when path is empty
func Load(path string) (*Data, error) {
	raw := defaultData
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

// Apply writes data in a single transaction
func Apply(ctx context.Context, db *gorm.DB, data *Data, hashCost int, log logrus.FieldLogger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		s := &seeder{
			users:       repository.NewUserRepository(tx),
			restaurants: repository.NewRestaurantRepository(tx),
			menu:        repository.NewMenuRepository(tx),
			rewards:     repository.NewRewardRepository(tx),
			hashCost:    hashCost,
			log:         log,
		}
		if err := s.users.EnsureRoles(ctx); err != nil {
			return err
		}
		for _, u := range data.Users {
			if err := s.user(ctx, u); err != nil {
				return err
			}
		}
		for _, r := range data.Restaurants {
			if err := s.restaurant(ctx, r); err != nil {
				return err
			}
		}
		return s.rewardLedger(ctx, data.Rewards)
	})
}

type seeder struct {
	users       *repository.UserRepository
	restaurants *repository.RestaurantRepository
	menu        *repository.MenuRepository
	rewards     *repository.RewardRepository
	hashCost    int
	log         logrus.FieldLogger
}

func (s *seeder) user(ctx context.Context, u User) error {
	exists, err := s.users.EmailExists(ctx, u.Email)
	if err != nil || exists {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", u.Email, err)
	}
	user := &models.User{Email: u.Email, Name: u.Name, PasswordHash: string(hash), Active: true}
	if err := s.users.Create(ctx, user, u.Roles...); err != nil {
		return fmt.Errorf("create user %s: %w", u.Email, err)
	}
	s.log.WithField("email", u.Email).Info("seeded user")
	return nil
}

func (s *seeder) restaurant(ctx context.Context, r Restaurant) error {
	owner, err := s.users.FindByEmail(ctx, r.Owner)
	if err != nil {
		return fmt.Errorf("restaurant %q owner %s: %w", r.Name, r.Owner, err)
	}

	restaurant, err := s.restaurants.FindByOwner(ctx, owner.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		restaurant = &models.Restaurant{
			OwnerID:     owner.ID,
			Name:        r.Name,
			Slug:        slug.Make(r.Name),
			Description: r.Description,
			Address:     r.Address,
			City:        r.City,
			IsVerified:  r.Verified,
			IsActive:    true,
		}
		if err := s.restaurants.Create(ctx, restaurant); err != nil {
			return fmt.Errorf("create restaurant %q: %w", r.Name, err)
		}
		s.log.WithField("restaurant", r.Name).Info("seeded restaurant")
	case err != nil:
		return err
	}

	existing, err := s.menu.ListCategories(ctx, restaurant.ID)
	if err != nil {
		return err
	}
	// the menu is only seeded into a restaurant that has none
	if len(existing) > 0 {
		return nil
	}
	for _, c := range r.Categories {
		category := &models.Category{RestaurantID: restaurant.ID, Name: c.Name}
		if err := s.menu.CreateCategory(ctx, category); err != nil {
			return fmt.Errorf("create category %q: %w", c.Name, err)
		}
		for _, it := range c.Items {
			item := &models.MenuItem{
				RestaurantID: restaurant.ID,
				CategoryID:   category.ID,
				Name:         it.Name,
				Description:  it.Description,
				Price:        it.Price,
				IsAvailable:  true,
			}
			if err := s.menu.CreateItem(ctx, item); err != nil {
				return fmt.Errorf("create menu item %q: %w", it.Name, err)
			}
		}
	}
	return nil
}

func (s *seeder) rewardLedger(ctx context.Context, entries []Reward) error {
	seeded := map[uint]bool{}
	for _, e := range entries {
		user, err := s.users.FindByEmail(ctx, e.Email)
		if err != nil {
			return fmt.Errorf("reward entry for %s: %w", e.Email, err)
		}
		if _, ok := seeded[user.ID]; !ok {
			history, err := s.rewards.History(ctx, user.ID)
			if err != nil {
				return err
			}
			seeded[user.ID] = len(history) == 0
		}
		if !seeded[user.ID] {
			continue
		}
		entry := &models.RewardPoint{
			UserID:          user.ID,
			Points:          e.Points,
			TransactionType: e.Type,
			Reason:          e.Reason,
		}
		if err := s.rewards.Append(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
