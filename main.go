package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/mail"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOTPIndexes(db); err != nil {
		log.Printf("otp index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCounters(db); err != nil {
		log.Printf("counter seed warning: %v", err)
	}

	mailer := mail.NewSMTPMailer(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUser,
		config.AppEnv.SMTPPass,
		config.AppEnv.MailFrom,
	)

	jwtSecret := config.AppEnv.JWTSecret
	accessTTL := config.AppEnv.AccessTokenTTL

	r := gin.Default()

	r.GET("/health", handlers.Health(db))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register(db, mailer))
		auth.POST("/verify-otp", handlers.VerifyOTP(db, jwtSecret, accessTTL))
		auth.POST("/resend-otp", handlers.ResendOTP(db, mailer))
		auth.POST("/login", handlers.Login(db, jwtSecret, accessTTL))
		auth.POST("/forgot-password", handlers.ForgotPassword(db, mailer))
		auth.POST("/verify-password-otp", handlers.VerifyPasswordOTP(db))
		auth.POST("/reset-password", handlers.ResetPassword(db))
		auth.POST("/silent-register", handlers.SilentRegister(db, jwtSecret, accessTTL))
	}

	users := r.Group("/api/users")
	users.Use(middleware.UserAuth(jwtSecret))
	{
		users.GET("/:id", handlers.GetUser(db))
		users.PUT("/:id", handlers.UpdateUser(db))
		users.DELETE("/:id", handlers.DeleteUser(db))
		users.POST("/:id/addresses", handlers.CreateUserAddress(db))
		users.PUT("/:id/addresses/:addressId", handlers.UpdateUserAddress(db))
		users.DELETE("/:id/addresses/:addressId", handlers.DeleteUserAddress(db))
	}

	products := r.Group("/api/products")
	{
		products.GET("", handlers.GetProducts(db))
		products.POST("/batch", handlers.BatchProducts(db))
		products.GET("/:id", handlers.GetProduct(db))
	}

	cart := r.Group("/api/cart")
	cart.Use(middleware.UserAuth(jwtSecret))
	{
		cart.GET("/:userId", handlers.GetCart(db))
		cart.POST("/:userId/items", handlers.AddCartItem(db))
		cart.PUT("/:userId/items/:itemId", handlers.UpdateCartItem(db))
		cart.DELETE("/:userId/items/:itemId", handlers.RemoveCartItem(db))
	}

	orders := r.Group("/api/orders")
	orders.Use(middleware.UserAuth(jwtSecret))
	{
		orders.POST("", handlers.CreateOrder(db))
		orders.GET("/user/:userId", handlers.ListUserOrders(db))
	}

	returns := r.Group("/api/returns")
	returns.Use(middleware.UserAuth(jwtSecret))
	{
		returns.POST("", handlers.CreateReturn(db))
		returns.GET("/user/:userId", handlers.ListUserReturns(db))
	}

	// /api/requests and /api/support are parallel surfaces over the same
	// unified collection; the support alias stays for the storefront.
	for _, prefix := range []string{"/api/requests", "/api/support"} {
		tickets := r.Group(prefix)
		{
			tickets.POST("", handlers.CreateRequest(db))
			tickets.GET("/:id", handlers.GetRequest(db))
			tickets.POST("/:id/messages", handlers.AddRequestMessage(db))
		}
	}

	r.GET("/api/categories", handlers.GetCategories(db))
	r.GET("/api/banners", handlers.GetBanners(db))

	r.POST("/api/admin/login", handlers.AdminLogin(
		config.AppEnv.AdminEmail,
		config.AppEnv.AdminPassword,
		jwtSecret,
		accessTTL,
	))

	admin := r.Group("/api")
	admin.Use(middleware.AdminAuth(jwtSecret))
	{
		admin.GET("/admin/stats", handlers.AdminStats(db))
		admin.GET("/admin/users", handlers.AdminListUsers(db))
		admin.GET("/admin/user-details/:id", handlers.AdminUserDetails(db))

		admin.GET("/orders", handlers.ListOrders(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))

		admin.GET("/returns/admin", handlers.ListReturns(db))
		admin.PUT("/returns/:id/status", handlers.UpdateReturnStatus(db))

		admin.GET("/requests", handlers.ListRequests(db))
		admin.PUT("/requests/:id/status", handlers.UpdateRequestStatus(db))
		admin.GET("/support", handlers.ListRequests(db))
		admin.PUT("/support/:id/status", handlers.UpdateRequestStatus(db))

		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.POST("/banners", handlers.CreateBanner(db))
		admin.PUT("/banners/:id", handlers.UpdateBanner(db))
		admin.DELETE("/banners/:id", handlers.DeleteBanner(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
