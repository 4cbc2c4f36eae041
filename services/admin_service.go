package services

import (
	"context"
	"errors"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AdminService moderates restaurants, reviews and user accounts
type AdminService struct {
	db          *gorm.DB
	restaurants *repository.RestaurantRepository
	users       *repository.UserRepository
	reviews     *repository.ReviewRepository
	reports     *repository.ReportRepository
	log         logrus.FieldLogger
}

func NewAdminService(db *gorm.DB, log logrus.FieldLogger) *AdminService {
	return &AdminService{
		db:          db,
		restaurants: repository.NewRestaurantRepository(db),
		users:       repository.NewUserRepository(db),
		reviews:     repository.NewReviewRepository(db),
		reports:     repository.NewReportRepository(db),
		log:         log,
	}
}

// ----- Restaurants -----

type RestaurantListing struct {
	ID         uint                    `json:"id"`
	Name       string                  `json:"name"`
	OwnerEmail string                  `json:"owner_email"`
	City       string                  `json:"city"`
	Status     models.RestaurantStatus `json:"status"`
}

// ListingOf summarises a restaurant for the admin views
func ListingOf(r *models.Restaurant) RestaurantListing {
	l := RestaurantListing{ID: r.ID, Name: r.Name, City: r.City, Status: r.Status()}
	if r.Owner != nil {
		l.OwnerEmail = r.Owner.Email
	}
	return l
}

func (s *AdminService) Restaurants(ctx context.Context) ([]RestaurantListing, error) {
	restaurants, err := s.restaurants.ListWithOwners(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]RestaurantListing, 0, len(restaurants))
	for i := range restaurants {
		out = append(out, ListingOf(&restaurants[i]))
	}
	return out, nil
}

// Verify requires the restaurant's owner account to exist
func (s *AdminService) Verify(ctx context.Context, p *auth.Principal, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Restaurant not found")
	}
	if restaurant.Owner == nil {
		return nil, apperror.Validation("Restaurant has no owner to verify.")
	}
	if err := s.restaurants.Update(ctx, id, map[string]any{"is_verified": true}); err != nil {
		return nil, apperror.Internal(err)
	}
	restaurant.IsVerified = true

	s.log.WithFields(logrus.Fields{"restaurant_id": id, "admin_id": p.UserID}).Info("restaurant verified")
	return restaurant, nil
}

// Block deactivates the restaurant's owner account; the restaurant is then
// reported as Blocked and the owner can no longer sign in.
func (s *AdminService) Block(ctx context.Context, p *auth.Principal, id uint) (*models.Restaurant, error) {
	return s.setOwnerActive(ctx, p, id, false)
}

func (s *AdminService) Unblock(ctx context.Context, p *auth.Principal, id uint) (*models.Restaurant, error) {
	return s.setOwnerActive(ctx, p, id, true)
}

func (s *AdminService) setOwnerActive(ctx context.Context, p *auth.Principal, id uint, active bool) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Restaurant not found")
	}
	if restaurant.Owner == nil {
		if active {
			return nil, apperror.Validation("Restaurant has no owner to unblock.")
		}
		return nil, apperror.Validation("Restaurant has no owner to block.")
	}
	if err := s.users.SetActive(ctx, restaurant.OwnerID, active); err != nil {
		return nil, lookup(err, "Owner not found")
	}
	restaurant.Owner.Active = active

	s.log.WithFields(logrus.Fields{
		"restaurant_id": id,
		"owner_id":      restaurant.OwnerID,
		"active":        active,
		"admin_id":      p.UserID,
	}).Info("restaurant owner access changed")
	return restaurant, nil
}

// DeleteRestaurant removes the restaurant and everything it owns in one
// transaction. Orders stay as history.
func (s *AdminService) DeleteRestaurant(ctx context.Context, p *auth.Principal, id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "Restaurant not found")
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.restaurants.WithTx(tx).Delete(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.NotFound("Restaurant not found")
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.log.WithFields(logrus.Fields{"restaurant_id": id, "admin_id": p.UserID}).Warn("restaurant deleted")
	return restaurant, nil
}

// ----- Reviews -----

func (s *AdminService) Reviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return reviews, nil
}

func (s *AdminService) DeleteReview(ctx context.Context, p *auth.Principal, id uint) error {
	if err := s.reviews.Delete(ctx, id); err != nil {
		return lookup(err, "Review not found")
	}
	s.log.WithFields(logrus.Fields{"review_id": id, "admin_id": p.UserID}).Info("review deleted")
	return nil
}

// ----- Users -----

// CustomerSummary is a customer account with lifetime order totals
type CustomerSummary struct {
	repository.CustomerStat
	IsBlocked bool `json:"is_blocked"`
}

// Customers lists every customer, including those who never ordered
func (s *AdminService) Customers(ctx context.Context) ([]CustomerSummary, error) {
	stats, err := s.reports.CustomerStats(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out := make([]CustomerSummary, 0, len(stats))
	for _, st := range stats {
		st.TotalSpent = round2(st.TotalSpent)
		out = append(out, CustomerSummary{CustomerStat: st, IsBlocked: !st.Active})
	}
	return out, nil
}

func (s *AdminService) BlockUser(ctx context.Context, p *auth.Principal, id uint) (*models.User, error) {
	if id == p.UserID {
		return nil, apperror.Validation("You cannot block your own account.")
	}
	return s.setUserActive(ctx, p, id, false)
}

func (s *AdminService) UnblockUser(ctx context.Context, p *auth.Principal, id uint) (*models.User, error) {
	return s.setUserActive(ctx, p, id, true)
}

func (s *AdminService) setUserActive(ctx context.Context, p *auth.Principal, id uint, active bool) (*models.User, error) {
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return nil, lookup(err, "User not found")
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, lookup(err, "User not found")
	}
	s.log.WithFields(logrus.Fields{"user_id": id, "active": active, "admin_id": p.UserID}).Info("user access changed")
	return user, nil
}
