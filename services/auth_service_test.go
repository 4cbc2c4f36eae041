package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(w *world) (*AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(w.db, tokens, w.log).WithHashCost(bcrypt.MinCost), tokens
}

func TestLogin(t *testing.T) {
	w := newWorld(t)
	svc, tokens := newAuthService(w)
	ctx := context.Background()

	res, err := svc.Login(ctx, LoginInput{Email: " Customer1@Email.com ", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, w.customer.ID, res.User.ID)
	assert.Equal(t, []models.RoleName{models.RoleCustomer}, res.Roles)

	claims, err := tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, w.customer.ID, claims.UserID)

	_, err = svc.Login(ctx, LoginInput{Email: "customer1@email.com", Password: "wrong"})
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@email.com", Password: testutil.Password})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestLoginBlockedUser(t *testing.T) {
	w := newWorld(t)
	svc, _ := newAuthService(w)
	require.NoError(t, repository.NewUserRepository(w.db).SetActive(context.Background(), w.customer.ID, false))

	_, err := svc.Login(context.Background(), LoginInput{Email: "customer1@email.com", Password: testutil.Password})
	requireStatus(t, err, http.StatusForbidden)
}

func TestRegisterCustomer(t *testing.T) {
	w := newWorld(t)
	svc, _ := newAuthService(w)
	ctx := context.Background()

	user, err := svc.RegisterCustomer(ctx, RegisterCustomerInput{Email: "New@Email.com", Password: "secret1", Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "new@email.com", user.Email)
	assert.True(t, user.Active)

	stored, err := repository.NewUserRepository(w.db).FindByEmail(ctx, "new@email.com")
	require.NoError(t, err)
	assert.True(t, stored.HasRole(models.RoleCustomer))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	_, err = svc.RegisterCustomer(ctx, RegisterCustomerInput{Email: "new@email.com", Password: "secret1", Name: "Again"})
	requireStatus(t, err, http.StatusConflict)
}

func TestRegisterRestaurant(t *testing.T) {
	w := newWorld(t)
	svc, _ := newAuthService(w)
	ctx := context.Background()

	restaurant, err := svc.RegisterRestaurant(ctx, RegisterRestaurantInput{
		OwnerEmail:     "chef@email.com",
		Password:       "secret1",
		OwnerName:      "Chef",
		RestaurantName: "Chef's Table & Bar",
		Address:        "2 Side Street",
		City:           "Testville",
	})
	require.NoError(t, err)
	assert.False(t, restaurant.IsVerified)
	assert.True(t, restaurant.IsActive)
	assert.Equal(t, "chefs-table-and-bar", restaurant.Slug)

	owner, err := repository.NewUserRepository(w.db).FindByEmail(ctx, "chef@email.com")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, restaurant.OwnerID)
	assert.True(t, owner.HasRole(models.RoleOwner))

	_, err = svc.RegisterRestaurant(ctx, RegisterRestaurantInput{
		OwnerEmail: "chef@email.com", Password: "secret1", OwnerName: "Chef", RestaurantName: "Other",
		Address: "x", City: "y",
	})
	requireStatus(t, err, http.StatusConflict)
}

func TestRegisterRestaurantRollsBackOwner(t *testing.T) {
	w := newWorld(t)
	svc, _ := newAuthService(w)
	ctx := context.Background()

	require.NoError(t, w.db.Callback().Create().Before("gorm:create").Register("test:fail_restaurants", func(tx *gorm.DB) {
		if tx.Statement.Table == "restaurants" {
			_ = tx.AddError(errors.New("disk full"))
		}
	}))

	_, err := svc.RegisterRestaurant(ctx, RegisterRestaurantInput{
		OwnerEmail: "chef@email.com", Password: "secret1", OwnerName: "Chef", RestaurantName: "Chef's Table",
		Address: "2 Side Street", City: "Testville",
	})
	requireStatus(t, err, http.StatusInternalServerError)

	exists, err := repository.NewUserRepository(w.db).EmailExists(ctx, "chef@email.com")
	require.NoError(t, err)
	assert.False(t, exists, "owner account must not survive a failed restaurant insert")
	assert.NotEmpty(t, w.hook.AllEntries())
}

func TestUpdateProfile(t *testing.T) {
	w := newWorld(t)
	svc, _ := newAuthService(w)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, principal(w.customer), UpdateProfileInput{Name: "   "})
	requireStatus(t, err, http.StatusBadRequest)

	user, err := svc.UpdateProfile(ctx, principal(w.customer), UpdateProfileInput{Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, []models.RoleName{models.RoleCustomer}, user.RoleNames())
}
