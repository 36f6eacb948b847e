package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sambathreasmey/library-management-system/internal/auth"
	"github.com/sambathreasmey/library-management-system/internal/config"
	"github.com/sambathreasmey/library-management-system/internal/handlers"
	"github.com/sambathreasmey/library-management-system/internal/repository"
	"github.com/sambathreasmey/library-management-system/internal/services"
	xhttp "github.com/sambathreasmey/library-management-system/pkg/http"
	"github.com/sambathreasmey/library-management-system/pkg/logger"
	"github.com/sambathreasmey/library-management-system/pkg/pg"
	"github.com/sambathreasmey/library-management-system/pkg/prom"
	"github.com/sambathreasmey/library-management-system/pkg/redis"
	"github.com/sambathreasmey/library-management-system/pkg/token"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport (tcp for now)
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RequestIDMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().AppDebugMetricsAddr != "" {
		if err := prom.Create(config.Get().AppName, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
		}
		go prom.ListenAndServer(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
	}

	tokens := token.NewManager(config.Get().JwtSecret, config.Get().JwtAccessTTL, config.Get().JwtRefreshTTL)
	guard := auth.NewGuard(tokens, redisAdap)

	// repositories
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	gameRepo := repository.NewGameRepository(db)
	bankRepo := repository.NewBankRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// services
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	bookService := services.NewBookService(bookRepo)
	customerService := services.NewCustomerService(customerRepo)
	gameService := services.NewGameService(gameRepo)
	bankService := services.NewBankService(bankRepo)
	transactionService := services.NewTransactionService(transactionRepo, customerRepo, bankRepo, gameRepo)
	reportService := services.NewReportService(transactionRepo)
	dashboardService := services.NewDashboardService(transactionRepo, customerRepo, userRepo, redisAdap, config.Get().DashboardCacheTTL)
	healthService := services.NewHealthService(db)

	if err := authService.SeedAdmin(context.Background()); err != nil {
		logger.Error("failed seeding admin account", "error", err)
		return
	}

	// handlers
	authHandler := handlers.NewAuthHandler(authService, guard,
		config.Get().JwtAccessTTL, config.Get().JwtRefreshTTL, config.Get().JwtCookieSecure)
	tableHandler := handlers.NewTableHandler(bookService, userService, customerService, gameService, bankService, transactionService)
	bookHandler := handlers.NewBookHandler(bookService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	gameHandler := handlers.NewGameHandler(gameService)
	bankHandler := handlers.NewBankHandler(bankService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, customerService, bankService, gameService, dashboardService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(healthService)

	handlers.RegisterAuthRoutes(s.Router, authHandler)
	handlers.RegisterTableRoutes(s.Router, guard, tableHandler)
	handlers.RegisterBookRoutes(s.Router, guard, bookHandler)
	handlers.RegisterUserRoutes(s.Router, guard, userHandler)
	handlers.RegisterCustomerRoutes(s.Router, guard, customerHandler)
	handlers.RegisterGameRoutes(s.Router, guard, gameHandler)
	handlers.RegisterBankRoutes(s.Router, guard, bankHandler)
	handlers.RegisterTransactionRoutes(s.Router, guard, transactionHandler)
	handlers.RegisterReportRoutes(s.Router, guard, reportHandler)
	handlers.RegisterDashboardRoutes(s.Router, guard, dashboardHandler)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("starting http server",
			"addr", config.Get().HttpListenAddr,
			"version", version, "commit", commit, "build_date", date)
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
