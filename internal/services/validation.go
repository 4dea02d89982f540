package services

import (
	"fmt"
	"unicode/utf8"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
)

// Price bounds of an association, inclusive
const (
	MinPrice = 1.0
	MaxPrice = 100.0
)

// Column limits of the catalog tables
const (
	MaxNameLength        = 80
	MaxLocationLength    = 120
	MaxIngredientsLength = 120
)

// AssociationRequest is the input of CreateAssociation.
// Pointers distinguish a missing field from a zero value.
type AssociationRequest struct {
	Price        *float64 `json:"price"`
	PizzaID      *int     `json:"pizza_id"`
	RestaurantID *int     `json:"restaurant_id"`
}

type associationRule struct {
	field   string
	present func(AssociationRequest) bool
	valid   func(AssociationRequest) bool
}

var associationRules = []associationRule{
	{
		field:   "price",
		present: func(r AssociationRequest) bool { return r.Price != nil },
		valid:   func(r AssociationRequest) bool { return *r.Price >= MinPrice && *r.Price <= MaxPrice },
	},
	{
		field:   "pizza_id",
		present: func(r AssociationRequest) bool { return r.PizzaID != nil },
	},
	{
		field:   "restaurant_id",
		present: func(r AssociationRequest) bool { return r.RestaurantID != nil },
	},
}

// Validate checks the request against the association rules.
// It returns a *ValidationError or nil.
func (r AssociationRequest) Validate() error {
	verr := NewValidationError()
	for _, rule := range associationRules {
		switch {
		case !rule.present(r):
			verr.Add(rule.field, MsgMissingField)
		case rule.valid != nil && !rule.valid(r):
			verr.Add(rule.field, MsgInvalidValue)
		}
	}
	return verr.orNil()
}

type textRule struct {
	field  string
	value  string
	maxLen int
}

func validateText(rules ...textRule) error {
	verr := NewValidationError()
	for _, rule := range rules {
		switch {
		case rule.value == "":
			verr.Add(rule.field, MsgMissingField)
		case utf8.RuneCountInString(rule.value) > rule.maxLen:
			verr.Add(rule.field, fmt.Sprintf(MsgTooLong, rule.maxLen))
		}
	}
	return verr.orNil()
}

func validateRestaurant(restaurant models.Restaurant) error {
	return validateText(
		textRule{field: "name", value: restaurant.Name, maxLen: MaxNameLength},
		textRule{field: "location", value: restaurant.Location, maxLen: MaxLocationLength},
	)
}

func validatePizza(pizza models.Pizza) error {
	return validateText(
		textRule{field: "name", value: pizza.Name, maxLen: MaxNameLength},
		textRule{field: "ingredients", value: pizza.Ingredients, maxLen: MaxIngredientsLength},
	)
}
