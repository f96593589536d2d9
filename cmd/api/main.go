package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ai"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/auth"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/billing"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/db"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/delivery"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/images"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ingest"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/menu"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/middleware"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/orders"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/servicereq"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/staff"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/storage"
	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/translate"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"R2_ACCESS_KEY",
		"R2_SECRET_KEY",
		"R2_BUCKET_NAME",
		"R2_ENDPOINT",
		"R2_PUBLIC_BASE_URL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── LOGGER + GIN ─────────────────────────
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("❌ zap init failed:", err)
	}
	defer logger.Sync()

	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(context.Background())
	if err != nil {
		log.Fatal("❌ R2 init failed:", err)
	}

	// ───────────────────────── REDIS (optional) ─────────────────────────
	var rdb *redis.Client
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal("❌ Bad REDIS_URL:", err)
		}
		rdb = redis.NewClient(opts)
		log.Println("✅ Redis cache enabled")
	}

	// ───────────────────────── AI ─────────────────────────
	aiClient := ai.NewOpenAIClient()
	if !aiClient.Configured() {
		log.Println("⚠️ OPENAI_API_KEY not set, AI endpoints will return 503")
	}

	// ───────────────────────── AUTH ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	authService := auth.NewService(userRepo)
	authHandler := auth.NewHandler(authService)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// ───────────────────────── REPOS ─────────────────────────
	restaurantRepo := restaurant.NewPostgresRepository(pgDB)
	menuRepo := menu.NewPostgresRepository(pgDB)
	orderRepo := orders.NewPostgresRepository(pgDB)
	serviceReqRepo := servicereq.NewPostgresRepository(pgDB)
	staffRepo := staff.NewPostgresRepository(pgDB)
	billingRepo := billing.NewPostgresRepository(pgDB)
	translateRepo := translate.NewPostgresRepository(pgDB)
	imageRepo := images.NewPostgresRepository(pgDB)
	ingestRepo := ingest.NewPostgresRepository(pgDB)

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	stripeClient := billing.NewStripeClient()
	billingService := billing.NewService(billingRepo, stripeClient, orderRepo, r2Client, authService)

	geocoder := delivery.NewNominatimClient()
	restaurantService := restaurant.NewService(restaurantRepo, billingService, r2Client, geocoder)

	menuService := menu.NewService(menuRepo, restaurantRepo, billingService)
	orderService := orders.NewService(orderRepo, restaurantService)
	serviceReqService := servicereq.NewService(serviceReqRepo, restaurantService)
	staffService := staff.NewService(staffRepo, restaurantRepo)
	assistant := staff.NewAssistant(aiClient, menuService)
	translateService := translate.NewService(aiClient, translateRepo, translate.NewCache(rdb))
	deliveryService := delivery.NewService(restaurantService, geocoder)
	imageService := images.NewService(imageRepo, aiClient, r2Client, billingService, restaurantRepo, billingService, menuRepo)
	ingestService := ingest.NewService(ingestRepo, aiClient, translateService, r2Client, restaurantRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	restaurantHandler := restaurant.NewHandler(restaurantService)
	menuHandler := menu.NewHandler(menuService, restaurantService)
	orderHandler := orders.NewHandler(orderService)
	serviceReqHandler := servicereq.NewHandler(serviceReqService)
	staffHandler := staff.NewHandler(staffService, assistant)
	billingHandler := billing.NewHandler(billingService, stripeClient, logger)
	translateHandler := translate.NewHandler(translateService)
	deliveryHandler := delivery.NewHandler(deliveryService)
	imageHandler := images.NewHandler(imageService)
	ingestHandler := ingest.NewHandler(ingestService)

	// ───────────────────────── PUBLIC ROUTES ─────────────────────────
	public := r.Group("/api")
	{
		public.GET("/public/menu/:restaurant_id", menuHandler.PublicMenu)
		public.POST("/orders", orderHandler.Create)
		public.GET("/orders/:id", orderHandler.Get)
		public.POST("/service-requests", serviceReqHandler.Create)
		public.POST("/delivery/calculate", deliveryHandler.Calculate)
		public.POST("/delivery/geocode", deliveryHandler.Geocode)
		public.POST("/translate", translateHandler.Translate)
		public.POST("/translate/batch", translateHandler.TranslateBatch)
		public.POST("/detect-language", translateHandler.DetectLanguage)
		public.GET("/translations/menu/:restaurant_id", translateHandler.GetMenuTranslations)
		public.GET("/pricing", billingHandler.Pricing)
		public.GET("/features", billingHandler.Features)
		public.POST("/staff/verify-pin", staffHandler.VerifyPIN)
		public.POST("/staff/ask", staffHandler.Ask)
		public.POST("/payments/upload-slip", billingHandler.UploadPaymentSlip)
		public.POST("/stripe/webhook", billingHandler.Webhook)
	}

	// ───────────────────────── PROTECTED ROUTES ─────────────────────────
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Restaurants
		api.GET("/restaurants", restaurantHandler.ListMy)
		api.POST("/restaurant", restaurantHandler.Create)
		api.PUT("/restaurant/:id", restaurantHandler.Update)
		api.DELETE("/restaurant/:id", restaurantHandler.Delete)
		api.POST("/user/set-restaurant", restaurantHandler.SetActive)
		api.GET("/user/profile", restaurantHandler.GetProfile)
		api.PUT("/user/profile", restaurantHandler.UpdateProfile)
		api.PUT("/restaurant/service-options", restaurantHandler.UpdateServiceOptions)
		api.GET("/restaurant/:id/payment-settings", restaurantHandler.GetPaymentSettings)
		api.PUT("/restaurant/:id/payment-settings", restaurantHandler.UpdatePaymentSettings)
		api.GET("/restaurant/:id/location", restaurantHandler.GetLocation)
		api.POST("/restaurant/update-location", restaurantHandler.UpdateLocation)

		// Customization
		api.GET("/customization/:id", restaurantHandler.GetCustomization)
		api.POST("/customization/theme-color", restaurantHandler.SetThemeColor)
		api.POST("/customization/logo", restaurantHandler.UploadLogo)
		api.POST("/customization/cover-image", restaurantHandler.UploadCover)
		api.DELETE("/customization/cover-image/:id", restaurantHandler.DeleteCover)

		// Menus
		api.POST("/menu", menuHandler.SaveItem)
		api.GET("/menus", menuHandler.ListItems)
		api.GET("/menu/:id", menuHandler.GetItem)
		api.PUT("/menu/:id", menuHandler.UpdateItem)
		api.DELETE("/menu/:id", menuHandler.DeleteItem)
		api.GET("/menu-stats", menuHandler.Stats)
		api.POST("/menus/copy-to-restaurant", menuHandler.CopyToRestaurant)
		api.GET("/best-sellers", menuHandler.GetBestSellers)
		api.POST("/best-sellers/update", menuHandler.UpdateBestSellers)
		api.POST("/best-sellers/update-all", menuHandler.UpdateAllBestSellers)
		api.POST("/menu/qr", menuHandler.QRCode)

		// Orders
		api.GET("/orders", orderHandler.List)
		api.PUT("/orders/:id/status", orderHandler.UpdateStatus)

		// Service requests
		api.GET("/service-requests", serviceReqHandler.List)
		api.PUT("/service-requests/:id/status", serviceReqHandler.UpdateStatus)

		// Staff
		api.POST("/staff/create", staffHandler.Create)
		api.GET("/staff/list", staffHandler.List)
		api.PUT("/staff/:id", staffHandler.Update)
		api.DELETE("/staff/:id", staffHandler.Delete)
		api.GET("/staff/activity", staffHandler.Activity)

		// Billing + subscriptions
		api.POST("/stripe/create-checkout-session", billingHandler.CreateCheckoutSession)
		api.POST("/stripe/verify-session", billingHandler.VerifySession)
		api.POST("/stripe/cancel-subscription", billingHandler.CancelSubscription)
		api.GET("/stripe/subscription/:id", billingHandler.GetSubscription)
		api.POST("/billing/create-portal-session", billingHandler.CreatePortalSession)
		api.POST("/payments/create-intent", billingHandler.CreateOrderIntent)
		api.POST("/payments/confirm", billingHandler.ConfirmOrderPayment)
		api.POST("/payments/refund", billingHandler.RefundOrder)
		api.POST("/payments/bank-transfer/confirm", billingHandler.ConfirmBankTransfer)

		// Trial + roles
		api.GET("/trial/status/:userId", billingHandler.TrialStatus)
		api.POST("/trial/initialize", billingHandler.InitializeTrial)
		api.GET("/user/role", billingHandler.GetRole)
		api.GET("/user/role/limits", billingHandler.RoleLimits)

		// Translations (menu cache writes)
		api.POST("/translations/menu/:restaurant_id", translateHandler.SaveMenuTranslations)
		api.DELETE("/translations/menu/:restaurant_id", translateHandler.DeleteMenuTranslations)
		api.DELETE("/translations/menu/:restaurant_id/:menu_id", translateHandler.DeleteMenuItemTranslations)

		// Image library + AI images
		api.GET("/images/library", imageHandler.Library)
		api.GET("/images/restaurant/:id", imageHandler.ByRestaurant)
		api.GET("/images/search", imageHandler.Search)
		api.GET("/images/recent", imageHandler.Recent)
		api.POST("/ai/generate-image", imageHandler.Generate)
		api.POST("/ai/enhance-image-upload", imageHandler.Enhance)
		api.POST("/ai/upload-image", imageHandler.Upload)

		// Menu ingestion
		api.POST("/ingest/menu", ingestHandler.Upload)
		api.GET("/ingest/menu/:id", ingestHandler.Get)
		api.GET("/ingest/restaurant/:id", ingestHandler.List)
		api.POST("/ingest/menu/:id/retry", ingestHandler.Retry)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/api")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.POST("/user/role", billingHandler.SetRole)
		admin.POST("/admin/users", billingHandler.CreateUser)
		admin.GET("/admin/users", billingHandler.ListUsers)
	}

	// ───────────────────────── WORKERS ─────────────────────────
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go ingestService.RunWorker(workerCtx, 5*time.Second)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if _, err := menuService.UpdateAllBestSellers(context.Background()); err != nil {
			logger.Error("best seller recompute", zap.Error(err))
		}
	}); err != nil {
		log.Fatal("❌ cron init failed:", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// ───────────────────────── HEALTH ─────────────────────────
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"ai_configured": aiClient.Configured(),
			"database":      pgDB.Ping(c.Request.Context()) == nil,
		})
	}
	r.GET("/", healthHandler)
	r.GET("/health", healthHandler)

	// ───────────────────────── START ─────────────────────────
	log.Println("🚀 API running at http://localhost:8000")
	r.Run(":8000")
}
