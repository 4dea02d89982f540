package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssociationRequestValidate(t *testing.T) {
	assert.NoError(t, AssociationRequest{Price: ptr(50.0), PizzaID: ptr(1), RestaurantID: ptr(1)}.Validate())

	err := AssociationRequest{Price: ptr(101.0)}.Validate()
	assert.EqualError(t, err, "validation failed: pizza_id: Missing data for required field.; "+
		"price: Invalid value.; restaurant_id: Missing data for required field.")
}

func TestValidationErrorSetReplacesMessages(t *testing.T) {
	verr := NewValidationError()
	assert.True(t, verr.Empty())
	assert.NoError(t, verr.orNil())

	verr.Add("price", MsgMissingField)
	verr.Set("price", MsgInvalidNumber)

	assert.False(t, verr.Empty())
	assert.Equal(t, []string{MsgInvalidNumber}, verr.Fields["price"])
}
