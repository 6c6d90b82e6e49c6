package internal

import (
	"net/http"
	"nightlock/internal/controllers"
	"nightlock/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/status", http.HandlerFunc(apiController.Status))
	routers.Post("/activate", http.HandlerFunc(apiController.Activate))
	routers.Post("/unlock/phrase", http.HandlerFunc(apiController.SubmitPhrase))
	routers.Post("/unlock/advance", http.HandlerFunc(apiController.Advance))
	routers.Post("/unlock/answer", http.HandlerFunc(apiController.SubmitAnswer))
	routers.Get("/streak", http.HandlerFunc(apiController.GetStreak))
	routers.Get("/calendar", http.HandlerFunc(apiController.GetCalendar))
	routers.Post("/calendar/toggle", http.HandlerFunc(apiController.ToggleDay))
	routers.Post("/settings", http.HandlerFunc(apiController.UpdateSettings))
	return routers
}
