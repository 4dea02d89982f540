package models

// Restaurant represents a restaurant that sells pizzas
type Restaurant struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Location string `gorm:"size:120;not null" json:"location"`

	Offerings []RestaurantPizza `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
