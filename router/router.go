package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oshxona/restaurant-backend/controllers"
	"github.com/oshxona/restaurant-backend/middlewares"
	"github.com/oshxona/restaurant-backend/services"
)

func SetupRouter(db *gorm.DB, notifier services.Notifier, resetKV services.KVStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	signupOTP := services.NewLedgerOTPStore(db)
	resetOTP := services.NewCacheOTPStore(resetKV)

	authCtrl := controllers.NewAuthController(db, signupOTP, resetOTP)
	categoryCtrl := controllers.NewCategoryController(db)
	itemCtrl := controllers.NewItemController(db)
	hallCtrl := controllers.NewHallController(db)
	tableCtrl := controllers.NewTableController(db)
	bookingCtrl := controllers.NewBookingController(db)
	orderCtrl := controllers.NewOrderController(db, notifier)
	analyticsCtrl := controllers.NewAnalyticsController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/signup", authCtrl.Signup)
		public.POST("/verify-otp", authCtrl.VerifyOTP)
		public.POST("/login", authCtrl.Login)
		public.POST("/forgot-password", authCtrl.ForgotPassword)
		public.POST("/reset-password", authCtrl.ResetPassword)
		public.POST("/token/refresh", authCtrl.RefreshToken)
	}

	// Catalog and floor plan reads need no login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/categories/:cat_id", categoryCtrl.GetCategoryByID)
	r.GET("/items", itemCtrl.GetAllItems)
	r.GET("/items/:item_id", itemCtrl.GetItemByID)
	r.GET("/halls", hallCtrl.GetAllHalls)
	r.GET("/halls/:hall_id", hallCtrl.GetHallByID)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", authCtrl.Logout)
		auth.GET("/profile", authCtrl.GetProfile)

		// BOOKINGS (owner-scoped)
		auth.GET("/bookings", bookingCtrl.GetAllBookings)
		auth.POST("/bookings", bookingCtrl.CreateBooking)
		auth.GET("/bookings/:booking_id", bookingCtrl.GetBookingByID)
		auth.PUT("/bookings/:booking_id", bookingCtrl.UpdateBooking)
		auth.DELETE("/bookings/:booking_id", bookingCtrl.DeleteBooking)

		// ORDERS (owner-scoped)
		auth.GET("/orders", orderCtrl.GetAllOrders)
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		auth.PUT("/orders/:order_id", orderCtrl.UpdateOrderStatus)
		auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PUT("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		admin.POST("/items", itemCtrl.CreateItem)
		admin.PUT("/items/:item_id", itemCtrl.UpdateItem)
		admin.DELETE("/items/:item_id", itemCtrl.DeleteItem)

		admin.POST("/halls", hallCtrl.CreateHall)
		admin.PUT("/halls/:hall_id", hallCtrl.UpdateHall)
		admin.DELETE("/halls/:hall_id", hallCtrl.DeleteHall)

		admin.POST("/tables", tableCtrl.CreateTable)
		admin.PUT("/tables/:table_id", tableCtrl.UpdateTable)
		admin.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

		admin.GET("/analytics", analyticsCtrl.GetTopItems)
	}

	return r
}
