package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db          *gorm.DB
	users       *repository.UserRepository
	restaurants *repository.RestaurantRepository
	tokens      *auth.TokenManager
	log         logrus.FieldLogger
	hashCost    int
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenManager, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		db:          db,
		users:       repository.NewUserRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		tokens:      tokens,
		log:         log,
		hashCost:    bcrypt.DefaultCost,
	}
}

// WithHashCost lowers the bcrypt cost, used by tests
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string            `json:"token"`
	User  *models.User      `json:"user"`
	Roles []models.RoleName `json:"roles"`
}

// Login verifies the credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Unauthenticated("Invalid credentials")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperror.Unauthenticated("Invalid credentials")
	}
	if !user.Active {
		return nil, apperror.Forbidden("This account has been blocked.")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &LoginResult{Token: token, User: user, Roles: user.RoleNames()}, nil
}

type RegisterCustomerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

// RegisterCustomer creates an active customer account
func (s *AuthService) RegisterCustomer(ctx context.Context, in RegisterCustomerInput) (*models.User, error) {
	email := normalizeEmail(in.Email)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(in.Name),
		Active:       true,
	}
	if err := s.users.Create(ctx, user, models.RoleCustomer); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Internal(err)
	}

	s.log.WithField("user_id", user.ID).Info("customer registered")
	return user, nil
}

type RegisterRestaurantInput struct {
	OwnerEmail     string `json:"owner_email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	OwnerName      string `json:"owner_name" binding:"required"`
	RestaurantName string `json:"restaurant_name" binding:"required"`
	Description    string `json:"description"`
	Address        string `json:"address" binding:"required"`
	City           string `json:"city" binding:"required"`
}

// RegisterRestaurant creates the owner account and an unverified restaurant
// in one transaction; neither survives if the other fails.
func (s *AuthService) RegisterRestaurant(ctx context.Context, in RegisterRestaurantInput) (*models.Restaurant, error) {
	email := normalizeEmail(in.OwnerEmail)
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("An account with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var restaurant *models.Restaurant
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owner := &models.User{
			Email:        email,
			PasswordHash: string(hash),
			Name:         strings.TrimSpace(in.OwnerName),
			Active:       true,
		}
		if err := s.users.WithTx(tx).Create(ctx, owner, models.RoleOwner); err != nil {
			return err
		}

		restaurant = &models.Restaurant{
			OwnerID:     owner.ID,
			Name:        strings.TrimSpace(in.RestaurantName),
			Slug:        slug.Make(in.RestaurantName),
			Description: in.Description,
			Address:     in.Address,
			City:        in.City,
			IsVerified:  false,
			IsActive:    true,
		}
		return s.restaurants.WithTx(tx).Create(ctx, restaurant)
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperror.Conflict("An account with this email already exists.")
		}
		s.log.WithError(err).WithField("email", email).Error("restaurant registration failed")
		return nil, &apperror.Error{Status: http.StatusInternalServerError, Message: "An internal error occurred during registration.", Err: err}
	}

	s.log.WithFields(logrus.Fields{"restaurant_id": restaurant.ID, "owner_id": restaurant.OwnerID}).
		Info("restaurant submitted for verification")
	return restaurant, nil
}

// Me reloads the caller with their roles
func (s *AuthService) Me(ctx context.Context, p *auth.Principal) (*models.User, error) {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, lookup(err, "User not found")
	}
	return user, nil
}

type UpdateProfileInput struct {
	Name string `json:"name"`
}

// UpdateProfile changes the caller's display name
func (s *AuthService) UpdateProfile(ctx context.Context, p *auth.Principal, in UpdateProfileInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.Validation("Name is a required field.")
	}
	if err := s.users.UpdateName(ctx, p.UserID, name); err != nil {
		return nil, apperror.Internal(err)
	}
	return s.Me(ctx, p)
}
