package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var associationOutcomes = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_association_requests_total",
		Help: "CreateAssociation calls by outcome",
	},
	[]string{"outcome"},
)

// CatalogService provides methods to interact with the restaurant and pizza catalog
type CatalogService interface {
	// ListRestaurants retrieves every restaurant in storage order
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	// GetRestaurant retrieves a restaurant by its ID
	GetRestaurant(ctx context.Context, id uint) (models.Restaurant, error)
	// CreateAssociation offers a pizza at a restaurant and returns the pizza
	CreateAssociation(ctx context.Context, req AssociationRequest) (models.Pizza, error)
	// DeleteRestaurant deletes a restaurant and the pizzas it offers
	DeleteRestaurant(ctx context.Context, id uint) error
	// ListPizzas retrieves every pizza in storage order
	ListPizzas(ctx context.Context) ([]models.Pizza, error)
	// CreateRestaurant inserts a restaurant
	CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error)
	// CreatePizza inserts a pizza
	CreatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error)
}

// catalogService is the implementation of the CatalogService interface
type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	if err := s.db.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

func (s *catalogService) GetRestaurant(ctx context.Context, id uint) (models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		if database.IsNotFound(err) {
			return models.Restaurant{}, ErrNotFound
		}
		return models.Restaurant{}, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return restaurant, nil
}

func (s *catalogService) CreateAssociation(ctx context.Context, req AssociationRequest) (models.Pizza, error) {
	if err := req.Validate(); err != nil {
		associationOutcomes.WithLabelValues("invalid").Inc()
		return models.Pizza{}, err
	}

	var pizza models.Pizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&pizza, *req.PizzaID).Error; err != nil {
			return lookupError(err, "pizza", *req.PizzaID)
		}
		if err := tx.First(&restaurant, *req.RestaurantID).Error; err != nil {
			return lookupError(err, "restaurant", *req.RestaurantID)
		}

		var existing int64
		if err := tx.Model(&models.RestaurantPizza{}).
			Where("pizza_id = ? AND restaurant_id = ?", pizza.ID, restaurant.ID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("count associations: %w", err)
		}
		if existing > 0 {
			return ErrDuplicateAssociation
		}

		association := models.RestaurantPizza{
			PizzaID:      pizza.ID,
			RestaurantID: restaurant.ID,
			Price:        *req.Price,
		}
		if err := tx.Create(&association).Error; err != nil {
			// A concurrent writer can insert the same pair after the count above
			if database.IsUniqueViolation(err) {
				return ErrDuplicateAssociation
			}
			return fmt.Errorf("create association: %w", err)
		}
		return nil
	})

	if err != nil {
		associationOutcomes.WithLabelValues(associationOutcome(err)).Inc()
		return models.Pizza{}, err
	}
	associationOutcomes.WithLabelValues("created").Inc()

	log.WithFields(log.Fields{
		"pizza_id":      pizza.ID,
		"restaurant_id": *req.RestaurantID,
		"price":         *req.Price,
	}).Info("Pizza offered at restaurant")
	return pizza, nil
}

func associationOutcome(err error) string {
	switch {
	case errors.Is(err, ErrReferenceNotFound):
		return "reference_not_found"
	case errors.Is(err, ErrDuplicateAssociation):
		return "duplicate"
	default:
		return "error"
	}
}

func lookupError(err error, kind string, id int) error {
	if database.IsNotFound(err) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrReferenceNotFound)
	}
	return fmt.Errorf("get %s %d: %w", kind, id, err)
}

func (s *catalogService) DeleteRestaurant(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, id).Error; err != nil {
			if database.IsNotFound(err) {
				return ErrNotFound
			}
			return fmt.Errorf("get restaurant %d: %w", id, err)
		}

		// Associations go with their restaurant, even on engines without FK enforcement
		removed := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.RestaurantPizza{})
		if removed.Error != nil {
			return fmt.Errorf("delete associations of restaurant %d: %w", id, removed.Error)
		}
		if err := tx.Delete(&restaurant).Error; err != nil {
			return fmt.Errorf("delete restaurant %d: %w", id, err)
		}

		log.WithFields(log.Fields{
			"restaurant_id":        restaurant.ID,
			"associations_removed": removed.RowsAffected,
		}).Info("Restaurant deleted")
		return nil
	})
}

func (s *catalogService) ListPizzas(ctx context.Context) ([]models.Pizza, error) {
	pizzas := []models.Pizza{}
	if err := s.db.WithContext(ctx).Order("id").Find(&pizzas).Error; err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	return pizzas, nil
}

func (s *catalogService) CreateRestaurant(ctx context.Context, restaurant models.Restaurant) (models.Restaurant, error) {
	if err := validateRestaurant(restaurant); err != nil {
		return models.Restaurant{}, err
	}
	restaurant.ID = 0
	if err := s.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.Restaurant{}, fmt.Errorf("restaurant %q: %w", restaurant.Name, ErrDuplicateName)
		}
		return models.Restaurant{}, fmt.Errorf("create restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *catalogService) CreatePizza(ctx context.Context, pizza models.Pizza) (models.Pizza, error) {
	if err := validatePizza(pizza); err != nil {
		return models.Pizza{}, err
	}
	pizza.ID = 0
	if err := s.db.WithContext(ctx).Create(&pizza).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return models.Pizza{}, fmt.Errorf("pizza %q: %w", pizza.Name, ErrDuplicateName)
		}
		return models.Pizza{}, fmt.Errorf("create pizza: %w", err)
	}
	return pizza, nil
}
