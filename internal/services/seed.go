package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	log "github.com/sirupsen/logrus"
)

// SampleCatalog is the catalog inserted into an empty database
type SampleCatalog struct {
	Pizzas      []models.Pizza
	Restaurants []models.Restaurant
}

// DefaultSampleCatalog returns the pizzas and restaurants used for local development
func DefaultSampleCatalog() SampleCatalog {
	return SampleCatalog{
		Pizzas: []models.Pizza{
			{Name: "Margherita", Ingredients: "Tomato Sauce, Mozzarella, Basil"},
			{Name: "Pepperoni", Ingredients: "Tomato Sauce, Mozzarella, Pepperoni"},
			{Name: "Vegetarian", Ingredients: "Tomato Sauce, Mozzarella, Bell Peppers, Olives"},
		},
		Restaurants: []models.Restaurant{
			{Name: "Sottocasa NYC", Location: "298 Atlantic Ave, Brooklyn, NY 11201"},
			{Name: "PizzArte", Location: "69 W 55th St, New York, NY 10019"},
		},
	}
}

// Seed inserts the sample catalog, skipping records whose name already exists.
// It returns the number of records created.
func Seed(ctx context.Context, service CatalogService, catalog SampleCatalog) (int, error) {
	created := 0
	for _, pizza := range catalog.Pizzas {
		_, err := service.CreatePizza(ctx, pizza)
		switch {
		case errors.Is(err, ErrDuplicateName):
			log.WithField("pizza", pizza.Name).Debug("Pizza already present, skipping")
		case err != nil:
			return created, fmt.Errorf("seed pizza %q: %w", pizza.Name, err)
		default:
			created++
		}
	}
	for _, restaurant := range catalog.Restaurants {
		_, err := service.CreateRestaurant(ctx, restaurant)
		switch {
		case errors.Is(err, ErrDuplicateName):
			log.WithField("restaurant", restaurant.Name).Debug("Restaurant already present, skipping")
		case err != nil:
			return created, fmt.Errorf("seed restaurant %q: %w", restaurant.Name, err)
		default:
			created++
		}
	}
	log.WithField("created", created).Info("Database seeded successfully")
	return created, nil
}
