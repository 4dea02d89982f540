package services

import (
	"context"
	"testing"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	service := NewCatalogService(setupTestDB(t))
	ctx := context.Background()
	catalog := DefaultSampleCatalog()

	created, err := Seed(ctx, service, catalog)
	require.NoError(t, err)
	assert.Equal(t, len(catalog.Pizzas)+len(catalog.Restaurants), created)

	created, err = Seed(ctx, service, catalog)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	pizzas, err := service.ListPizzas(ctx)
	require.NoError(t, err)
	assert.Len(t, pizzas, len(catalog.Pizzas))
}

func TestSeedStopsOnInvalidRecord(t *testing.T) {
	service := NewCatalogService(setupTestDB(t))

	_, err := Seed(context.Background(), service, SampleCatalog{
		Pizzas: []models.Pizza{{Name: "Nameless ingredients"}},
	})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}
