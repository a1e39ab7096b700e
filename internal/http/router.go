package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/Pvt25072004/devops-lab-cicd/docs"
	"github.com/Pvt25072004/devops-lab-cicd/internal/ui"
)

// NewRouter creates and configures the gin engine with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	exposeErrors := cfg.ExposeErrors

	router := gin.New()
	router.Use(RequestLoggerMiddleware(log.Named("http")))
	router.Use(RecoveryMiddleware(log.Named("http"), exposeErrors))
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(cfg.CORSAllowOrigins))

	tmpl, err := ui.LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", ui.StaticFS(cfg.StaticPath))

	health := NewHealthController(cfg.Environment)
	booksController := NewBooksController(cfg.Books, exposeErrors)
	uiController := NewUIController(cfg.Books, exposeErrors)

	// Health endpoint
	router.GET("/health", health.Status)

	// Books API endpoints
	api := router.Group("/api")
	if cfg.RateLimitRPS > 0 {
		api.Use(NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	}
	api.GET("/books", booksController.GetAllBooks)
	api.GET("/books/:id", booksController.GetBook)
	api.POST("/books", booksController.CreateBook)
	api.PUT("/books/:id", booksController.UpdateBook)
	api.PATCH("/books/:id", booksController.UpdateBook)
	api.DELETE("/books/:id", booksController.DeleteBook)

	// Web pages
	router.GET("/", uiController.HomePage)

	web := router.Group("/books")
	if len(cfg.CSRFSecret) > 0 {
		web.Use(CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	web.GET("", uiController.BooksPage)
	web.GET("/new", uiController.NewBookPage)
	web.GET("/:id", uiController.BookPage)
	web.GET("/:id/edit", uiController.EditBookPage)
	web.POST("", uiController.CreateBook)
	web.PUT("/:id", uiController.UpdateBook)
	web.PATCH("/:id", uiController.UpdateBook)
	web.DELETE("/:id", uiController.DeleteBook)

	// API documentation
	if cfg.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.NoRoute(NoRouteHandler)

	return router, nil
}

// NewHandler wraps the router with the method override so that HTML forms
// can reach the PUT and DELETE routes.
func NewHandler(cfg RouterConfig) (http.Handler, error) {
	router, err := NewRouter(cfg)
	if err != nil {
		return nil, err
	}
	return MethodOverride(router), nil
}
