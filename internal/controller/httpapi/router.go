package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/bridal_booking/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter собирает HTTP маршруты поверх сервисов
func NewRouter(
	auth *service.AuthService,
	bookings *service.BookingService,
	adminKey string,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), CORS())

	ah := NewAuthHandler(auth, logger)
	bh := NewBookingHandler(bookings, logger)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/register", ah.Register)
		api.POST("/login", ah.Login)

		api.GET("/dresses", bh.ListDresses)
		api.GET("/dresses/:id", bh.GetDress)
		api.GET("/bookings/check-availability", bh.CheckAvailability)

		secured := api.Group("")
		secured.Use(AuthRequired(auth))
		{
			secured.POST("/bookings", bh.Create)
			secured.GET("/bookings/my", bh.ListMy)
			secured.PATCH("/bookings/:id/cancel", bh.Cancel)
		}

		admin := api.Group("")
		admin.Use(AdminRequired(adminKey))
		{
			admin.PATCH("/bookings/:id/confirm", bh.Confirm)
		}
	}

	return r
}
