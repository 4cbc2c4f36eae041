package services

import (
	"testing"
	"time"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/testutil"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testNow is a fixed instant used for order timestamps
var testNow = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

type world struct {
	db   *gorm.DB
	log  *logrus.Logger
	hook *test.Hook

	admin, customer, otherCustomer, owner, rivalOwner *models.User

	restaurant, rival         *models.Restaurant
	mains                     *models.Category
	springRolls, burger, soup *models.MenuItem // soup is unavailable
	rivalDish                 *models.MenuItem
}

func newWorld(t *testing.T) *world {
	t.Helper()
	db := testutil.NewDB(t)
	log, hook := testutil.NewLogger()

	w := &world{db: db, log: log, hook: hook}
	w.admin = testutil.CreateUser(t, db, "admin@email.com", models.RoleAdmin)
	w.customer = testutil.CreateUser(t, db, "customer1@email.com", models.RoleCustomer)
	w.otherCustomer = testutil.CreateUser(t, db, "customer2@email.com", models.RoleCustomer)
	w.owner = testutil.CreateUser(t, db, "owner1@email.com", models.RoleOwner)
	w.rivalOwner = testutil.CreateUser(t, db, "owner2@email.com", models.RoleOwner)

	w.restaurant = testutil.CreateRestaurant(t, db, w.owner, "Owner One's Eatery", true)
	w.mains = testutil.CreateCategory(t, db, w.restaurant, "Main Courses")
	w.springRolls = testutil.CreateMenuItem(t, db, w.mains, "Spring Rolls", 5.99, true)
	w.burger = testutil.CreateMenuItem(t, db, w.mains, "House Burger", 12.99, true)
	w.soup = testutil.CreateMenuItem(t, db, w.mains, "Soup of the Day", 4.50, false)

	w.rival = testutil.CreateRestaurant(t, db, w.rivalOwner, "Rival Diner", true)
	rivalMains := testutil.CreateCategory(t, db, w.rival, "Mains")
	w.rivalDish = testutil.CreateMenuItem(t, db, rivalMains, "Rival Steak", 20, true)
	return w
}

func principal(u *models.User) *auth.Principal {
	return auth.NewPrincipal(u)
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, apperror.StatusOf(err), "error: %v", err)
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

type fixedCodes struct {
	otp, qr string
}

func (f fixedCodes) OTP() (string, error)       { return f.otp, nil }
func (f fixedCodes) QRPayload() (string, error) { return f.qr, nil }
