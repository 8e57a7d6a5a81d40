package main

import (
	"fmt"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/hugoferreira-ai/api-supply/internal/handler"
	"github.com/hugoferreira-ai/api-supply/internal/middleware"
	"github.com/hugoferreira-ai/api-supply/internal/model"
	"github.com/hugoferreira-ai/api-supply/internal/repository"
	"github.com/hugoferreira-ai/api-supply/internal/service"
	"github.com/hugoferreira-ai/api-supply/pkg/config"
	"github.com/hugoferreira-ai/api-supply/pkg/database"
	"github.com/hugoferreira-ai/api-supply/pkg/jwtutil"
	"github.com/hugoferreira-ai/api-supply/pkg/logger"
	"github.com/hugoferreira-ai/api-supply/prometheus"
)

func main() {
	// Load configuration
	conf, err := config.Load("supply")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.InitLogger(&logger.LogConfig{
		Level:       conf.Log.Level,
		Environment: conf.Server.Env,
		ServiceName: conf.ServiceName,
	})
	if err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	// Initialize database connection
	db, err := database.InitDB(&conf.DB)
	if err != nil {
		log.Fatal("Failed to initialize database")
	}

	// Run migrations
	err = database.MigrateModels(db,
		&model.Plano{},
		&model.Cliente{},
		&model.Loja{},
		&model.LojaOwner{},
		&model.User{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database models")
	}

	// Repositories
	planoRepo := repository.NewPlanoRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	lojaRepo := repository.NewLojaRepository(db)
	ownerRepo := repository.NewLojaOwnerRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Services
	planoSvc := service.NewPlanoService(planoRepo)
	limiteSvc := service.NewLimiteService(planoSvc)
	clienteSvc := service.NewClienteService(clienteRepo, planoSvc)
	lojaSvc := service.NewLojaService(lojaRepo, ownerRepo, clienteRepo, userRepo, limiteSvc)

	// Handlers
	clienteHandler := handler.NewClienteHandler(clienteSvc, planoSvc)
	lojaHandler := handler.NewLojaHandler(lojaSvc)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize JWT utility
	jwt := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      conf.JWT.SigningKey,
		ExpirationHours: conf.JWT.ExpirationHours,
	})
	auth := middleware.JWTAuthMiddleware(jwt)

	// Initialize Echo framework
	e := echo.New()

	// Apply middleware
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.Middleware())
	e.Use(prometheus.Middleware())

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	e.GET("/health", healthHandler.Check)

	// Cliente routes — reads are public, writes require a token
	clientes := e.Group("/clientes")
	clientes.GET("", clienteHandler.List)
	clientes.GET("/planos-disponiveis", clienteHandler.GetPlanosDisponiveis)
	clientes.GET("/plano/:planoId", clienteHandler.GetPlanoInfo)
	clientes.GET("/:id", clienteHandler.Get)
	clientes.POST("", clienteHandler.Create, auth)
	clientes.PUT("/:id", clienteHandler.Update, auth)
	clientes.DELETE("/:id", clienteHandler.Delete, auth)

	// Loja routes
	lojas := e.Group("/lojas")
	lojas.GET("", lojaHandler.List)
	lojas.GET("/:id", lojaHandler.Get)
	lojas.POST("", lojaHandler.Create, auth)
	lojas.PUT("/:id", lojaHandler.Update, auth)
	lojas.DELETE("/:id", lojaHandler.Delete, auth)

	// Start server
	log.Info("Starting supply service on port " + conf.Server.Port)
	e.Logger.Fatal(e.Start(":" + conf.Server.Port))
}
