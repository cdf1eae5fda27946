package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func main() {
	// Initialize OpenTelemetry
	tp, err := initTracer()
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	mp, err := initMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down meter: %v", err)
		}
	}()

	// Initialize database
	dbPool, err := initDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbPool.Close()

	// Migração explícita, uma vez por deploy, nunca implícita no import
	if err := Migrate(context.Background(), dbPool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Payment gateway (Midtrans Snap sandbox por padrão)
	gateway := NewSnapClient(
		getEnv("MIDTRANS_BASE_URL", "https://app.sandbox.midtrans.com"),
		getEnv("MIDTRANS_SERVER_KEY", ""),
	)

	// Initialize dependencies
	userRepository := NewUserRepository(dbPool)
	categoryRepository := NewCategoryRepository(dbPool)
	itemRepository := NewItemRepository(dbPool)
	cartRepository := NewCartRepository(dbPool)
	orderRepository := NewOrderRepository(dbPool)
	commentRepository := NewCommentRepository(dbPool)

	tracer := tp.Tracer("marketplace-api")
	userHandler := NewUserHandler(NewUserUseCase(userRepository))
	categoryHandler := NewCategoryHandler(NewCategoryUseCase(categoryRepository))
	itemHandler := NewItemHandler(NewItemUseCase(itemRepository, userRepository))
	cartHandler := NewCartHandler(NewCartUseCase(cartRepository, itemRepository, userRepository))
	orderHandler := NewOrderHandler(NewOrderUseCase(orderRepository, itemRepository, userRepository, gateway), tracer)
	commentHandler := NewCommentHandler(NewCommentUseCase(commentRepository, itemRepository, userRepository))

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.RecoveryWithWriter(gin.DefaultWriter, func(c *gin.Context, recovered interface{}) {
		log.Printf("🚨 PANIC RECOVERED: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))

	// Todo origin, método e header liberados, como o frontend legado espera
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		AllowCredentials: false,
	}))

	r.Use(otelgin.Middleware(getEnv("SERVICE_NAME", "marketplace-api")))

	// Health check
	r.GET("/health", HealthCheck)

	// Users
	r.POST("/register", userHandler.Register)
	r.GET("/users", userHandler.ListUsers)

	// Categories
	r.POST("/categories", categoryHandler.CreateCategory)
	r.GET("/categories", categoryHandler.ListCategories)

	// Items
	r.POST("/items", itemHandler.CreateItem)
	r.GET("/items", itemHandler.ListItems)
	r.GET("/items/:id", itemHandler.GetItem)
	r.PUT("/items/:id", itemHandler.UpdateItem)
	r.DELETE("/items/:id", itemHandler.DeleteItem)

	// Orders
	r.POST("/orders", orderHandler.CreateOrder)
	r.GET("/orders", orderHandler.ListOrders)
	r.GET("/orders/:id", orderHandler.GetOrder)
	r.PUT("/orders/:id", orderHandler.UpdateOrder)
	r.DELETE("/orders/:id", orderHandler.DeleteOrder)

	// Carts
	r.POST("/carts", cartHandler.CreateCartEntry)
	r.GET("/carts", cartHandler.ListCartEntries)
	r.GET("/carts/:id", cartHandler.GetCartEntry)
	r.PUT("/carts/:id", cartHandler.UpdateCartEntry)
	r.DELETE("/carts/:id", cartHandler.DeleteCartEntry)

	// Comments
	r.POST("/comments", commentHandler.CreateComment)
	r.GET("/comments", commentHandler.ListComments)
	r.GET("/comments/:id", commentHandler.GetComment)
	r.PUT("/comments/:id", commentHandler.UpdateComment)
	r.DELETE("/comments/:id", commentHandler.DeleteComment)

	port := getEnv("PORT", "8080")
	log.Printf("🚀 Marketplace API listening on port %s", port)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func initDB() (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DATABASE_USER", "root"),
		getEnv("DATABASE_PASSWORD", "pass"),
		getEnv("DATABASE_HOST", "localhost"),
		getEnv("DATABASE_PORT", "5432"),
		getEnv("DATABASE_NAME", "commerce"),
	)

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// Configure connection pool
	config.MaxConns = 10
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Wait for database to be ready
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			log.Println("✅ Connected to commerce database with connection pool")
			return pool, nil
		}
		log.Printf("⏳ Waiting for database... (%d/30)", i+1)
		time.Sleep(1 * time.Second)
	}

	pool.Close()
	return nil, fmt.Errorf("failed to connect to database after 30 attempts")
}

func initTracer() (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(otlpEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", "marketplace-api")),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(tp)

	return tp, nil
}

func initMetrics() (*sdkmetric.MeterProvider, error) {
	ctx := context.Background()

	otlpEndpoint := getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	exporter, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(otlpEndpoint),
		otlpmetrichttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(getEnv("SERVICE_NAME", "marketplace-api")),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	return mp, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
