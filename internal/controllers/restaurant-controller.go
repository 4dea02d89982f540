package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	"github.com/franciscosanchezn/pizza-restaurant-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Response messages kept identical to the original API
const (
	msgRestaurantNotFound   = "restaurant not found"
	msgRestaurantDeleted    = "restaurant deleted"
	msgReferenceNotFound    = "Pizza or Restaurant not found"
	msgDuplicateAssociation = "RestaurantPizza with the same Pizza and Restaurant already exists"
)

// RestaurantController handles HTTP requests related to restaurants
type RestaurantController interface {
	// GetRestaurants retrieves all restaurants
	GetRestaurants(c *gin.Context)
	// GetRestaurant retrieves a restaurant by its ID
	GetRestaurant(c *gin.Context)
	// CreateRestaurantPizza offers a pizza at a restaurant
	CreateRestaurantPizza(c *gin.Context)
	// DeleteRestaurant deletes a restaurant by its ID
	DeleteRestaurant(c *gin.Context)
	// GetPizzas retrieves all pizzas
	GetPizzas(c *gin.Context)
}

type controller struct {
	service services.CatalogService
}

// NewRestaurantController creates a new instance of RestaurantController
func NewRestaurantController(service services.CatalogService) *controller {
	return &controller{service: service}
}

// RestaurantResponse is the public shape of a restaurant
type RestaurantResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// PizzaResponse is the public shape of a pizza
type PizzaResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Ingredients string `json:"ingredients"`
}

func toRestaurantResponse(r models.Restaurant) RestaurantResponse {
	return RestaurantResponse{ID: r.ID, Name: r.Name, Location: r.Location}
}

func toPizzaResponse(p models.Pizza) PizzaResponse {
	return PizzaResponse{ID: p.ID, Name: p.Name, Ingredients: p.Ingredients}
}

// GetRestaurants godoc
// @Summary Get all restaurants
// @Description Get every restaurant in storage order
// @Tags restaurants
// @Produce json
// @Success 200 {array} RestaurantResponse
// @Failure 500 {object} models.APIError
// @Router /restuarants [get]
func (c *controller) GetRestaurants(ctx *gin.Context) {
	restaurants, err := c.service.ListRestaurants(ctx.Request.Context())
	if err != nil {
		internalError(ctx, err, "Failed to retrieve restaurants")
		return
	}

	result := make([]RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		result = append(result, toRestaurantResponse(r))
	}
	ctx.JSON(http.StatusOK, result)
}

// GetRestaurant godoc
// @Summary Get restaurant by ID
// @Description Get a single restaurant by its ID
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 200 {object} RestaurantResponse
// @Failure 400 {object} models.APIError
// @Failure 404 {object} map[string]string
// @Router /restuarants/{id} [get]
func (c *controller) GetRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseID(ctx)
	if !ok {
		return
	}

	restaurant, err := c.service.GetRestaurant(ctx.Request.Context(), restaurantID)
	if errors.Is(err, services.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": msgRestaurantNotFound})
		return
	}
	if err != nil {
		internalError(ctx, err, "Failed to retrieve restaurant")
		return
	}
	ctx.JSON(http.StatusOK, toRestaurantResponse(restaurant))
}

// CreateRestaurantPizza godoc
// @Summary Offer a pizza at a restaurant
// @Description Link an existing pizza to an existing restaurant at a price between 1 and 100.
// @Description Responds with the pizza, not the created link.
// @Tags restaurants
// @Accept json
// @Produce json
// @Param association body services.AssociationRequest true "Price, pizza and restaurant"
// @Success 200 {object} PizzaResponse
// @Failure 400 {object} map[string]interface{} "Validation errors or duplicate association"
// @Failure 404 {object} map[string]string
// @Failure 500 {object} models.APIError
// @Router /restuarants [post]
func (c *controller) CreateRestaurantPizza(ctx *gin.Context) {
	req, err := bindAssociationRequest(ctx)
	if err == nil {
		var pizza models.Pizza
		pizza, err = c.service.CreateAssociation(ctx.Request.Context(), req)
		if err == nil {
			ctx.JSON(http.StatusOK, toPizzaResponse(pizza))
			return
		}
	}

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, services.ErrReferenceNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": msgReferenceNotFound})
	case errors.Is(err, services.ErrDuplicateAssociation):
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": []string{msgDuplicateAssociation}})
	default:
		internalError(ctx, err, "Failed to create restaurant pizza")
	}
}

// bindAssociationRequest decodes the body. A value of the wrong JSON type is
// reported on its field next to the outcome of the regular validation rules.
func bindAssociationRequest(ctx *gin.Context) (services.AssociationRequest, error) {
	var req services.AssociationRequest
	err := ctx.ShouldBindJSON(&req)
	if err == nil {
		return req, nil
	}

	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) || typeErr.Field == "" {
		verr := services.NewValidationError()
		verr.Add(services.SchemaField, services.MsgInvalidInput)
		return req, verr
	}

	verr := services.NewValidationError()
	var rulesErr *services.ValidationError
	if errors.As(req.Validate(), &rulesErr) {
		verr = rulesErr
	}
	message := services.MsgInvalidInteger
	if typeErr.Field == "price" {
		message = services.MsgInvalidNumber
	}
	verr.Set(typeErr.Field, message)
	return req, verr
}

// DeleteRestaurant godoc
// @Summary Delete a restaurant
// @Description Delete a restaurant by its ID. The pizzas it offered are unlinked, not deleted.
// @Tags restaurants
// @Produce json
// @Param id path int true "Restaurant ID"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} map[string]string
// @Failure 500 {object} models.APIError
// @Router /restuarants/{id} [delete]
func (c *controller) DeleteRestaurant(ctx *gin.Context) {
	restaurantID, ok := parseID(ctx)
	if !ok {
		return
	}

	err := c.service.DeleteRestaurant(ctx.Request.Context(), restaurantID)
	if errors.Is(err, services.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"message": msgRestaurantNotFound})
		return
	}
	if err != nil {
		internalError(ctx, err, "Failed to delete restaurant")
		return
	}
	// 204 carries no body; gin drops the message
	ctx.JSON(http.StatusNoContent, gin.H{"message": msgRestaurantDeleted})
}

// GetPizzas godoc
// @Summary Get all pizzas
// @Description Bound to PUT /restuarants/{id} for compatibility. The id is ignored and every pizza is returned.
// @Tags pizzas
// @Produce json
// @Param id path int true "Ignored"
// @Success 200 {array} PizzaResponse
// @Failure 500 {object} models.APIError
// @Router /restuarants/{id} [put]
func (c *controller) GetPizzas(ctx *gin.Context) {
	// TODO: replace with a real restaurant update once clients stop relying on this listing
	pizzas, err := c.service.ListPizzas(ctx.Request.Context())
	if err != nil {
		internalError(ctx, err, "Failed to retrieve pizzas")
		return
	}

	result := make([]PizzaResponse, 0, len(pizzas))
	for _, p := range pizzas {
		result = append(result, toPizzaResponse(p))
	}
	ctx.JSON(http.StatusOK, result)
}

// parseID reads the :id path parameter, responding 400 when it is not an unsigned integer
func parseID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrRestaurantInvalidID, "Invalid restaurant ID format"))
		return 0, false
	}
	return uint(id), true
}

func internalError(ctx *gin.Context, err error, message string) {
	_ = ctx.Error(err)
	log.WithError(err).Error(message)
	ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, message))
}
