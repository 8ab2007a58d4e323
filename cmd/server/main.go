package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/config"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/db"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/handlers"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/logger"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/middleware"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/models"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/backoffice"
	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/i18n"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "server",
	Short:   "Varejo da Sorte admin and backoffice API",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return logger.Setup(logger.LogConfig{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
			Output: os.Stdout,
		})
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the admin pages and the JSON API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func() error { return nil })
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo clients, invoices and vouchers into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(func() error {
			result, err := services.SeedDemoData(db.DB)
			if err != nil {
				return err
			}
			if result.Skipped {
				fmt.Println("Database already has clients, nothing seeded")
				return nil
			}
			fmt.Printf("Seeded %d clients, %d invoices, %d vouchers\n", result.Clients, result.Invoices, result.Vouchers)
			return nil
		})
	},
}

var cfg *config.Config

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		os.Exit(1)
	}
}

// withDatabase opens and migrates the database around fn
func withDatabase(fn func() error) error {
	if err := db.Initialize(cfg); err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	return fn()
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("server")

	if err := i18n.Load(); err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	return withDatabase(func() error {
		services.InitializeStorage(cfg)
		backoffice.Initialize(cfg)
		middleware.InitAssetVersions()

		if cfg.APIKey == "" {
			log.Warn().Msg("API_KEY is not set; the admin pages cannot reach the API")
		}

		e := newServer(cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			log.Info().Str("port", cfg.ServerPort).Str("api", cfg.APIBaseURL).Msg("Server starting")
			if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Server stopped")
				stop()
			}
		}()

		<-ctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})
}

func newServer(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(echomiddleware.RequestID())
	e.Use(logger.RequestLogger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, middleware.APIKeyHeader},
	}))
	e.Use(middleware.Locale(cfg))
	e.Use(middleware.CSPNonce())
	e.Use(middleware.CSRF(cfg.IsProduction()))
	e.Use(middleware.Toasts())

	// Make config available to handlers
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("config", cfg)
			return next(c)
		}
	})

	// Static files
	e.Static("/static", "static")

	// Backoffice JSON API
	api := e.Group("/api")
	skipAdmin := middleware.IsAdminKeyRequest(cfg)
	api.Use(middleware.APIRateLimiter.MiddlewareWithSkipper(skipAdmin))
	api.Use(middleware.RequireAPIKey(cfg))
	api.Use(middleware.APIKeyRateLimiter.MiddlewareWithSkipper(skipAdmin))
	{
		api.GET("/clients", handlers.APIListClientsHandler)
		api.GET("/invoices", handlers.APIListInvoicesHandler)
		api.POST("/invoices", handlers.APICreateInvoiceHandler)
		api.GET("/dashboard/stats", handlers.APIDashboardStatsHandler)
	}

	// Admin pages (CSRF skips /api)
	e.GET("/", handlers.HomeHandler)
	e.GET("/dashboard", handlers.DashboardHandler)
	e.GET("/invoices", handlers.InvoicesPageHandler)
	e.GET("/invoices/new", handlers.NewInvoicePageHandler)
	e.POST("/invoices", handlers.CreateInvoiceHandler, middleware.FormRateLimiter.Middleware())
	e.POST("/invoices/export", handlers.ExportInvoicesHandler, middleware.FormRateLimiter.Middleware())
	e.GET("/exports/*", handlers.DownloadExportHandler)

	// HTMX fragments
	e.GET("/htmx/dashboard/stats", handlers.DashboardStatsHTMX)
	e.GET("/htmx/invoices", handlers.InvoiceTableHTMX)
	e.GET("/htmx/invoices/form", handlers.InvoiceFormHTMX)

	return e
}
