package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/config"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/database"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/services"
	"github.com/joho/godotenv"
)

// Pizzas and restaurants have no HTTP route to create them; this script adds them out of band.
//
//	go run ./scripts -sample
//	go run ./scripts -pizza "Diavola" -ingredients "Tomato Sauce, Mozzarella, Salami"
//	go run ./scripts -restaurant "Da Michele" -location "Via Cesare Sersale 1"
func main() {
	sample := flag.Bool("sample", false, "Insert the sample catalog")
	pizzaName := flag.String("pizza", "", "Name of a pizza to create")
	ingredients := flag.String("ingredients", "", "Ingredients of the pizza")
	restaurantName := flag.String("restaurant", "", "Name of a restaurant to create")
	location := flag.String("location", "", "Location of the restaurant")
	flag.Parse()

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.InitDatabase(conf.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	ctx := context.Background()
	catalog := services.NewCatalogService(db)

	if *sample {
		created, err := services.Seed(ctx, catalog, services.DefaultSampleCatalog())
		if err != nil {
			log.Fatal("Failed to seed sample catalog:", err)
		}
		fmt.Printf("✓ Sample catalog seeded (%d new records)\n", created)
	}

	if *pizzaName != "" {
		pizza, err := catalog.CreatePizza(ctx, models.Pizza{Name: *pizzaName, Ingredients: *ingredients})
		reportCreated("pizza", *pizzaName, pizza.ID, err)
	}

	if *restaurantName != "" {
		restaurant, err := catalog.CreateRestaurant(ctx, models.Restaurant{Name: *restaurantName, Location: *location})
		reportCreated("restaurant", *restaurantName, restaurant.ID, err)
	}

	if !*sample && *pizzaName == "" && *restaurantName == "" {
		flag.Usage()
	}
}

func reportCreated(kind, name string, id uint, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrDuplicateName):
		fmt.Printf("A %s named '%s' already exists\n", kind, name)
	case errors.As(err, &verr):
		log.Fatalf("Invalid %s: %v", kind, verr)
	case err != nil:
		log.Fatalf("Failed to create %s: %v", kind, err)
	default:
		fmt.Printf("✓ Created %s '%s' (ID: %d)\n", kind, name, id)
	}
}
