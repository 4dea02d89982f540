package controllers

import "github.com/gin-gonic/gin"

// RegisterRoutes binds the catalog routes.
// The "restuarants" spelling is part of the public API and must not be corrected.
func RegisterRoutes(router gin.IRouter, restaurants RestaurantController) {
	group := router.Group("/restuarants")
	{
		group.GET("", restaurants.GetRestaurants)
		group.GET("/:id", restaurants.GetRestaurant)
		group.POST("", restaurants.CreateRestaurantPizza)
		group.DELETE("/:id", restaurants.DeleteRestaurant)
		// Lists pizzas and ignores :id
		group.PUT("/:id", restaurants.GetPizzas)
	}
}
