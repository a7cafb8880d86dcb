package handlers

import (
	userRepoPkg "shopspotlight/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration. UserRepo rides along for the auth middleware.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	User      *UserHandler
	Shop      *ShopHandler
	Directory *DirectoryHandler
	Booking   *BookingHandler
	Favorite  *FavoriteHandler
	Weather   *WeatherHandler
	Storage   *StorageHandler
	Events    *EventsHandler
}
