package models

// Pizza represents a pizza with its properties
type Pizza struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Ingredients string `gorm:"size:120;not null" json:"ingredients"`

	Offerings []RestaurantPizza `gorm:"foreignKey:PizzaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Pizza) TableName() string {
	return "pizzas"
}
