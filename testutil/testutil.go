// Package testutil provides an in-memory database and fixtures shared by the
// package tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user
const Password = "secret123"

var (
	passwordHash []byte
	sequence     atomic.Uint64
)

func init() {
	var err error
	passwordHash, err = bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
}

// NewDB opens a migrated in-memory SQLite database with the default roles
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	log, _ := NewLogger()
	db, err := config.OpenDB(config.DriverSQLite, ":memory:", log)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	require.NoError(t, repository.NewUserRepository(db).EnsureRoles(context.Background()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewLogger returns a logger that records entries instead of printing them
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// CreateUser inserts an active user holding roles
func CreateUser(t *testing.T, db *gorm.DB, email string, roles ...models.RoleName) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		Name:         email,
		Active:       true,
	}
	require.NoError(t, repository.NewUserRepository(db).Create(context.Background(), user, roles...))
	return user
}

// CreateRestaurant inserts an active restaurant owned by owner
func CreateRestaurant(t *testing.T, db *gorm.DB, owner *models.User, name string, verified bool) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		OwnerID:    owner.ID,
		Name:       name,
		Address:    "1 Test Street",
		City:       "Testville",
		IsVerified: verified,
		IsActive:   true,
	}
	require.NoError(t, repository.NewRestaurantRepository(db).Create(context.Background(), restaurant))
	return restaurant
}

func CreateCategory(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, name string) *models.Category {
	t.Helper()
	category := &models.Category{RestaurantID: restaurant.ID, Name: name}
	require.NoError(t, repository.NewMenuRepository(db).CreateCategory(context.Background(), category))
	return category
}

func CreateMenuItem(t *testing.T, db *gorm.DB, category *models.Category, name string, price float64, available bool) *models.MenuItem {
	t.Helper()
	item := &models.MenuItem{
		RestaurantID: category.RestaurantID,
		CategoryID:   category.ID,
		Name:         name,
		Price:        price,
		IsAvailable:  available,
	}
	require.NoError(t, repository.NewMenuRepository(db).CreateItem(context.Background(), item))
	return item
}

// CreateOrder inserts an order directly, bypassing the placement workflow.
// A zero createdAt means now.
func CreateOrder(t *testing.T, db *gorm.DB, customer *models.User, restaurant *models.Restaurant,
	status models.OrderStatus, total float64, createdAt time.Time) *models.Order {
	t.Helper()
	n := sequence.Add(1)
	order := &models.Order{
		UserID:       customer.ID,
		RestaurantID: restaurant.ID,
		TotalAmount:  total,
		Status:       status,
		OrderType:    models.OrderTakeaway,
		OTP:          "123456",
		QRPayload:    fmt.Sprintf("FIXTURE%013d", n),
		CreatedAt:    createdAt.UTC(),
	}
	require.NoError(t, repository.NewOrderRepository(db).Create(context.Background(), order))
	return order
}
