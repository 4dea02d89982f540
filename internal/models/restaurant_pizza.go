package models

// RestaurantPizza links a pizza to a restaurant at a given price.
// A pizza can be offered at most once per restaurant.
type RestaurantPizza struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	PizzaID      uint    `gorm:"not null;uniqueIndex:idx_pizza_restaurant" json:"pizza_id"`
	RestaurantID uint    `gorm:"not null;uniqueIndex:idx_pizza_restaurant" json:"restaurant_id"`
	Price        float64 `gorm:"not null" json:"price"`

	Pizza      Pizza      `json:"-"`
	Restaurant Restaurant `json:"-"`
}

func (RestaurantPizza) TableName() string {
	return "restaurant_pizzas"
}
