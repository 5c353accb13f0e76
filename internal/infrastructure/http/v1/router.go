// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"agriaccount/internal/core/sequence"
	"agriaccount/internal/domain/accounts"
	"agriaccount/internal/domain/agri"
	"agriaccount/internal/domain/auth"
	"agriaccount/internal/domain/bank"
	"agriaccount/internal/domain/documents/creditnote"
	"agriaccount/internal/domain/documents/receiptentry"
	"agriaccount/internal/domain/documents/settlement"
	"agriaccount/internal/domain/packing"
	"agriaccount/internal/domain/rules"
	"agriaccount/internal/domain/vendor"
	"agriaccount/internal/infrastructure/http/v1/handlers"
	"agriaccount/internal/infrastructure/http/v1/middleware"
	"agriaccount/internal/infrastructure/storage/postgres"
	"agriaccount/internal/infrastructure/storage/postgres/catalog_repo"
	"agriaccount/internal/infrastructure/storage/postgres/document_repo"
	"agriaccount/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// TxManager runs repository queries and transactions.
	TxManager *postgres.TxManager

	// Audit records document actions.
	Audit *postgres.AuditService

	// Logger for request logging.
	Logger *logger.Logger

	// JWTValidator for token validation.
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints.
	AuthService *auth.Service

	// CorsAllowedOrigins for browser clients. Empty disables CORS.
	CorsAllowedOrigins []string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	if len(cfg.CorsAllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CorsAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", middleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           5 * time.Minute,
		}))
	}

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Shared domain plumbing. The account directory, rule engine and
	// sequence generator feed every document service.
	directory := postgres.NewDirectory(cfg.TxManager)
	resolver := accounts.NewResolver(directory)
	engine := rules.NewEngine(postgres.NewRuleRepo(cfg.TxManager), resolver, directory)
	seq := sequence.NewGenerator(postgres.NewSequenceReader(cfg.TxManager))

	// API v1
	apiV1 := router.Group("/api/v1")
	{
		registerAuthRoutes(apiV1, cfg)

		protected := apiV1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerMasterRoutes(protected, cfg, seq)
		registerDocumentRoutes(protected, cfg, resolver, engine, seq)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	public := rg.Group("/auth")
	public.POST("/login", authHandler.Login)

	protected := rg.Group("/auth")
	protected.Use(middleware.Auth(cfg.JWTValidator))
	protected.GET("/me", authHandler.Me)
	protected.POST("/change-password", authHandler.ChangePassword)
	protected.POST("/register", middleware.RequireAdmin(), authHandler.Register)
}

// registerMasterRoutes registers grower group, farmer, vendor, bank and
// packing master endpoints.
func registerMasterRoutes(rg *gin.RouterGroup, cfg RouterConfig, seq *sequence.Generator) {
	baseHandler := handlers.NewBaseHandler()

	// --- AGRI MASTERS ---
	{
		groupRepo := catalog_repo.NewGrowerGroupRepo(cfg.TxManager)
		farmerRepo := catalog_repo.NewFarmerRepo(cfg.TxManager)
		lotRepo := catalog_repo.NewLotRepo(cfg.TxManager)
		service := agri.NewService(groupRepo, farmerRepo, lotRepo, seq, cfg.Audit)
		handler := handlers.NewAgriHandler(baseHandler, service)

		agriGroup := rg.Group("/agri")
		agriGroup.GET("/groups", handler.ListGroups)
		agriGroup.POST("/groups", handler.CreateGroup)
		agriGroup.GET("/groups/:id", handler.GetGroup)
		agriGroup.PUT("/groups/:id", handler.UpdateGroup)
		agriGroup.DELETE("/groups/:id", handler.DeleteGroup)
		agriGroup.GET("/groups/:id/lots", handler.ListGroupLots)

		agriGroup.GET("/farmers", handler.ListFarmers)
		agriGroup.POST("/farmers", handler.CreateFarmer)
		agriGroup.GET("/farmers/:id", handler.GetFarmer)
		agriGroup.PUT("/farmers/:id", handler.UpdateFarmer)
		agriGroup.DELETE("/farmers/:id", handler.DeleteFarmer)

		agriGroup.POST("/lots", handler.CreateLot)
		agriGroup.GET("/lots/:id", handler.GetLot)
		agriGroup.PUT("/lots/:id", handler.UpdateLot)
		agriGroup.DELETE("/lots/:id", handler.DeleteLot)
	}

	// --- VENDORS ---
	{
		repo := catalog_repo.NewVendorRepo(cfg.TxManager)
		service := vendor.NewService(repo, seq)
		handler := handlers.NewVendorHandler(baseHandler, service)

		vendors := rg.Group("/vendors")
		vendors.GET("", handler.List)
		vendors.POST("", handler.Create)
		vendors.GET("/search", handler.Search)
		vendors.GET("/:id", handler.Get)
		vendors.PUT("/:id", handler.Update)
		vendors.DELETE("/:id", handler.Delete)
	}

	// --- BANKS ---
	{
		repo := catalog_repo.NewBankRepo(cfg.TxManager)
		service := bank.NewService(repo)
		handler := handlers.NewBankHandler(baseHandler, service)

		banks := rg.Group("/banks")
		banks.GET("", handler.ListAccounts)
		banks.POST("", handler.CreateAccount)
		banks.GET("/ledgers", handler.ListLedgers)
		banks.GET("/master-groups", handler.ListMasterGroups)
		banks.GET("/:id", handler.GetAccount)
		banks.PUT("/:id", handler.UpdateAccount)
		banks.DELETE("/:id", handler.DeleteAccount)
	}

	// --- PACKING ---
	{
		repo := catalog_repo.NewPackingRepo(cfg.TxManager)
		service := packing.NewService(repo, seq)
		handler := handlers.NewPackingHandler(baseHandler, service)

		pk := rg.Group("/packing")
		pk.GET("/recipes", handler.ListRecipes)
		pk.POST("/recipes", handler.CreateRecipe)
		pk.GET("/recipes/:id", handler.GetRecipe)
		pk.PUT("/recipes/:id", handler.UpdateRecipe)
		pk.POST("/recipes/:id/special-rates", handler.SaveRecipeSpecialRate)

		pk.GET("/materials/search", handler.SearchMaterials)
		pk.GET("/materials/for-rate", handler.MaterialsForRate)
		pk.GET("/materials/:id/uom", handler.MaterialUOM)
		pk.GET("/uoms", handler.ListUOMs)

		pk.GET("/special-rates", handler.ListSpecialRates)
		pk.POST("/special-rates", handler.CreateSpecialRate)
		pk.GET("/special-rates/:id", handler.GetSpecialRate)
		pk.PUT("/special-rates/:id", handler.UpdateSpecialRate)
	}
}

// registerDocumentRoutes registers credit note, receipt voucher and
// payment settlement endpoints.
func registerDocumentRoutes(
	rg *gin.RouterGroup,
	cfg RouterConfig,
	resolver *accounts.Resolver,
	engine *rules.Engine,
	seq *sequence.Generator,
) {
	baseHandler := handlers.NewBaseHandler()

	// --- CREDIT NOTES ---
	{
		repo := document_repo.NewCreditNoteRepo(cfg.TxManager)
		service := creditnote.NewService(repo, resolver, engine, seq, cfg.Audit)
		handler := handlers.NewCreditNoteHandler(baseHandler, service)

		notes := rg.Group("/credit-notes")
		notes.GET("", handler.List)
		notes.POST("", handler.Create)
		notes.GET("/accounts", handler.SearchAccounts)
		notes.GET("/entry-profiles", handler.EntryProfiles)
		notes.GET("/infer-profile", handler.InferProfile)
		notes.GET("/:id", handler.Get)
		notes.PUT("/:id", handler.Update)
		notes.DELETE("/:id", handler.Delete)
		notes.POST("/:id/approve", handler.Approve)
		notes.POST("/:id/unapprove", handler.Unapprove)
	}

	// --- RECEIPT VOUCHERS ---
	{
		repo := document_repo.NewReceiptEntryRepo(cfg.TxManager)
		service := receiptentry.NewService(repo, resolver, engine, seq, cfg.Audit)
		handler := handlers.NewReceiptEntryHandler(baseHandler, service)

		vouchers := rg.Group("/receipt-vouchers")
		vouchers.GET("", handler.List)
		vouchers.POST("", handler.CreateVoucher)
		vouchers.GET("/accounts", handler.SearchAccounts)
		vouchers.GET("/entry-profiles", handler.EntryProfiles)
		vouchers.GET("/:voucherNo", handler.GetVoucher)
		vouchers.PUT("/:voucherNo", handler.UpdateVoucher)

		entries := rg.Group("/receipt-entries")
		entries.GET("/:id", handler.GetEntry)
		entries.DELETE("/:id", handler.Delete)
		entries.POST("/:id/approve", handler.Approve)
		entries.POST("/:id/unapprove", handler.Unapprove)
	}

	// --- PAYMENT SETTLEMENTS ---
	{
		repo := document_repo.NewSettlementRepo(cfg.TxManager)
		service := settlement.NewService(repo, resolver, engine, seq, cfg.Audit)
		handler := handlers.NewSettlementHandler(baseHandler, service)

		settlements := rg.Group("/settlements")
		settlements.GET("", handler.List)
		settlements.POST("", handler.CreateBatch)
		settlements.GET("/accounts", handler.SearchAccounts)
		settlements.GET("/entry-profiles", handler.EntryProfiles)
		settlements.GET("/batch/:paNumber", handler.GetBatch)
		settlements.PUT("/batch/:paNumber", handler.UpdateBatch)
		settlements.GET("/:id", handler.Get)
		settlements.DELETE("/:id", handler.Delete)
		settlements.POST("/:id/approve", handler.Approve)
		settlements.POST("/:id/unapprove", handler.Unapprove)
		settlements.POST("/:id/mark-paid", handler.MarkPaid)
	}
}
