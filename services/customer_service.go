package services

import (
	"context"
	"strings"

	"food-ordering-api/apperror"
	"food-ordering-api/auth"
	"food-ordering-api/models"
	"food-ordering-api/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CustomerService covers favorites, the reward ledger and reviews
type CustomerService struct {
	favorites   *repository.FavoriteRepository
	rewards     *repository.RewardRepository
	reviews     *repository.ReviewRepository
	orders      *repository.OrderRepository
	restaurants *repository.RestaurantRepository
	log         logrus.FieldLogger
}

func NewCustomerService(db *gorm.DB, log logrus.FieldLogger) *CustomerService {
	return &CustomerService{
		favorites:   repository.NewFavoriteRepository(db),
		rewards:     repository.NewRewardRepository(db),
		reviews:     repository.NewReviewRepository(db),
		orders:      repository.NewOrderRepository(db),
		restaurants: repository.NewRestaurantRepository(db),
		log:         log,
	}
}

// ----- Favorites -----

func (s *CustomerService) Favorites(ctx context.Context, p *auth.Principal) ([]RestaurantCard, error) {
	restaurants, err := s.favorites.ListRestaurants(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	cards, err := ratingCards(ctx, s.restaurants, restaurants)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cards, nil
}

// AddFavorite is a no-op when the restaurant is already a favorite
func (s *CustomerService) AddFavorite(ctx context.Context, p *auth.Principal, restaurantID uint) error {
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return lookup(err, "Restaurant not found")
	}
	if err := s.favorites.Add(ctx, p.UserID, restaurantID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// RemoveFavorite is a no-op when the restaurant is not a favorite
func (s *CustomerService) RemoveFavorite(ctx context.Context, p *auth.Principal, restaurantID uint) error {
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		return lookup(err, "Restaurant not found")
	}
	if err := s.favorites.Remove(ctx, p.UserID, restaurantID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// ----- Rewards -----

type Rewards struct {
	Balance int64                `json:"points_balance"`
	History []models.RewardPoint `json:"history"`
}

// Rewards reads the ledger; the balance is not kept from going negative
func (s *CustomerService) Rewards(ctx context.Context, p *auth.Principal) (*Rewards, error) {
	balance, err := s.rewards.Balance(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	history, err := s.rewards.History(ctx, p.UserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &Rewards{Balance: balance, History: history}, nil
}

// ----- Reviews -----

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// Review records the caller's rating of one of their completed orders. Each
// order can be reviewed once.
func (s *CustomerService) Review(ctx context.Context, p *auth.Principal, orderID uint, in ReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperror.Validation("Rating must be between 1 and 5.")
	}
	order, err := s.orders.FindForUser(ctx, p.UserID, orderID)
	if err != nil {
		return nil, lookup(err, "Order not found")
	}
	if order.Status != models.StatusCompleted {
		return nil, apperror.Validation("Only completed orders can be reviewed.")
	}

	exists, err := s.reviews.ExistsForOrder(ctx, order.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("Order #%d has already been reviewed.", order.ID)
	}

	review := &models.Review{
		UserID:       p.UserID,
		RestaurantID: order.RestaurantID,
		OrderID:      order.ID,
		Rating:       in.Rating,
		Comment:      strings.TrimSpace(in.Comment),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if repository.IsDuplicate(err) {
			return nil, apperror.Conflict("Order #%d has already been reviewed.", order.ID)
		}
		return nil, apperror.Internal(err)
	}

	s.log.WithFields(logrus.Fields{"review_id": review.ID, "order_id": order.ID, "rating": review.Rating}).
		Info("review submitted")
	return review, nil
}
