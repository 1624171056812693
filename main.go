package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"

	"yenesuq/internal/backend"
	"yenesuq/internal/handlers"
	"yenesuq/internal/middleware"
	"yenesuq/internal/services"
	"yenesuq/internal/storage"
	"yenesuq/pkg/events"
)

func loadConfig() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("BACKEND_BASE_URL", backend.DefaultBaseURL)
	viper.SetDefault("STORAGE_DRIVER", "sqlite")
	viper.SetDefault("STORAGE_DSN", "yenesuq.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("SERVICE_FEE", services.DefaultServiceFee)
	viper.SetDefault("BANK_ACCOUNT_HOLDER", "Belay Morde Tadesse")
	viper.SetDefault("BANK_ACCOUNTS",
		"Zemen Bank:1294111208405016,Dashen Bank:013200107145100,BOA:39587254,CBE:1000642508141,TeleBirr:0919465620")
	viper.AutomaticEnv()
}

// bankAccounts parses the configured "Name:Account" pairs.
func bankAccounts(raw string) []services.BankAccount {
	var accounts []services.BankAccount
	for _, pair := range strings.Split(raw, ",") {
		name, account, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		accounts = append(accounts, services.BankAccount{Name: name, Account: account})
	}
	return accounts
}

func openStore() (storage.Store, error) {
	driver := viper.GetString("STORAGE_DRIVER")
	if driver == "memory" {
		return storage.NewMemoryStore(), nil
	}
	return storage.Open(driver, viper.GetString("STORAGE_DSN"))
}

// NewApp wires the storefront: local store, backend client, event publisher,
// services and handlers. mqClient may be nil when publishing is disabled.
func NewApp(store storage.Store, client backend.Client, mqClient *events.Client) *fiber.App {
	baseURL := viper.GetString("BACKEND_BASE_URL")

	// Services
	authService := services.NewAuthService(store, client)
	cartService := services.NewCartService(store, mqClient)
	catalogService := services.NewCatalogService(client, baseURL)
	checkoutService := services.NewCheckoutService(store, client, cartService, mqClient, viper.GetFloat64("SERVICE_FEE"))
	paymentService := services.NewPaymentService(store, client, mqClient,
		bankAccounts(viper.GetString("BANK_ACCOUNTS")), viper.GetString("BANK_ACCOUNT_HOLDER"))
	orderService := services.NewOrderService(client, authService)
	accountService := services.NewAccountService(store, client, authService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	orderHandler := handlers.NewOrderHandler(orderService)
	accountHandler := handlers.NewAccountHandler(accountService)

	app := fiber.New()
	app.Use(logger.New())

	api := app.Group("/api")

	// Public screens
	authHandler.RegisterRoutes(api)
	catalogHandler.RegisterRoutes(api)
	cartHandler.RegisterRoutes(api)
	checkoutHandler.RegisterRoutes(api)
	paymentHandler.RegisterRoutes(api)

	// Token-gated screens
	api.Use("/orders", middleware.TokenRequired(authService))
	api.Use("/account", middleware.TokenRequired(authService))
	orderHandler.RegisterRoutes(api)
	accountHandler.RegisterRoutes(api)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// logStorefrontEvent records every event delivered on the storefront queue.
func logStorefrontEvent(msg amqp.Delivery) error {
	log.Printf("Event %s received: %s", msg.Type, msg.Body)
	return nil
}

func main() {
	loadConfig()

	store, err := openStore()
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	var mqClient *events.Client
	if rabbitMQURL := viper.GetString("RABBITMQ_URL"); rabbitMQURL != "" {
		mqClient, err = events.NewClient(events.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()

		if err := mqClient.Consume(logStorefrontEvent); err != nil {
			log.Fatalf("Failed to start event consumer: %v", err)
		}
	} else {
		log.Println("RABBITMQ_URL not set; event publishing disabled.")
	}

	client := backend.NewHTTPClient(viper.GetString("BACKEND_BASE_URL"))
	app := NewApp(store, client, mqClient)

	// Log cart writes through the store subscription; the badge endpoint
	// reads the count on demand instead of polling.
	unsubscribe := store.Subscribe(func(key string) {
		if key == storage.KeyCart {
			log.Println("Cart contents changed")
		}
	})
	defer unsubscribe()

	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting storefront on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down storefront...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Storefront gracefully stopped")
}
