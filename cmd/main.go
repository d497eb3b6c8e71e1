package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/create_booking"
	deleteRulesHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/delete_rules"
	estimateCostHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/estimate_cost"
	findResourcesHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/find_resources"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_client_bookings"
	getClientHistoryHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_client_history"
	getRulesHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_rules"
	getTenantBookingsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_tenant_bookings"
	getTimelineHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_timeline"
	updateBookingStatusHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/update_booking_status"
	updateRulesHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/update_rules"
	validateBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/validate_booking"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/config"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/resource"
	rulesRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/rules"
	clientServiceClient "github.com/m04kA/SMC-BookingEngine/internal/integrations/clientservice"
	"github.com/m04kA/SMC-BookingEngine/internal/scheduling"
	bookingsService "github.com/m04kA/SMC-BookingEngine/internal/service/bookings"
	resourcesService "github.com/m04kA/SMC-BookingEngine/internal/service/resources"
	rulesService "github.com/m04kA/SMC-BookingEngine/internal/service/rules"
	clientHistoryUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/client_history"
	createBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
	estimateCostUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/estimate_cost"
	findResourcesUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/find_resources"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	getTimelineUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_timeline"
	validateBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-BookingEngine/internal/verticals"
	"github.com/m04kA/SMC-BookingEngine/migrations"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("SCHED_CONFIG")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingEngine...")
	log.Info("Configuration loaded from %s", configPath)

	// Профиль вертикали задает категории, умолчания правил и часовой пояс интерпретации
	profile, err := verticals.Get(cfg.Engine.Vertical)
	if err != nil {
		log.Fatal("Unknown vertical %q: %v", cfg.Engine.Vertical, err)
	}
	location, err := cfg.Engine.Location()
	if err != nil {
		log.Fatal("Invalid timezone %q: %v", cfg.Engine.Timezone, err)
	}
	log.Info("Vertical %s loaded (%d categories, timezone=%s)",
		profile.Name, len(profile.Categories()), location)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB, metricsCollector)

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect("postgres"); err != nil {
			log.Fatal("Failed to set migration dialect: %v", err)
		}
		if err := goose.Up(wrappedDB.Raw(), "."); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Инициализируем интеграционных клиентов
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ClientService=%s timeout=%ds)",
		cfg.ClientService.URL, cfg.ClientService.Timeout)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	resourceRepository := resourceRepo.NewRepository(wrappedDB)
	rulesRepository := rulesRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	clock := &scheduling.RealTimeProvider{}

	rulesSvc := rulesService.NewService(rulesRepository, profile, clock, log)
	resourcesSvc := resourcesService.NewService(resourceRepository, log)
	if cfg.Cache.TTLSeconds > 0 {
		rulesSvc.WithCache(cfg.Cache.Size, cfg.Cache.TTL())
		resourcesSvc.WithCache(cfg.Cache.Size, cfg.Cache.TTL())
		log.Info("Tenant caches enabled (size=%d, ttl=%s)", cfg.Cache.Size, cfg.Cache.TTL())
	}
	bookingSvc := bookingsService.NewService(bookingRepository, rulesSvc, clock, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		resourcesSvc,
		clientClient,
		metricsCollector,
		log,
	)
	findResourcesUseCase := findResourcesUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		resourcesSvc,
		clientClient,
		log,
	)
	validateBookingUseCase := validateBookingUC.NewUseCase(
		rulesSvc,
		resourcesSvc,
		clientClient,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		rulesSvc,
		resourcesSvc,
		clientClient,
		txMgr,
		metricsCollector,
		log,
	)
	estimateCostUseCase := estimateCostUC.NewUseCase(rulesSvc, resourcesSvc, log)
	getTimelineUseCase := getTimelineUC.NewUseCase(bookingRepository, resourcesSvc, log)
	clientHistoryUseCase := clientHistoryUC.NewUseCase(bookingRepository, rulesSvc, clientClient, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	findResources := findResourcesHandler.NewHandler(findResourcesUseCase, location, log)
	validateBooking := validateBookingHandler.NewHandler(validateBookingUseCase, location, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	estimateCost := estimateCostHandler.NewHandler(estimateCostUseCase, log)
	getTimeline := getTimelineHandler.NewHandler(getTimelineUseCase, log)
	getClientHistory := getClientHistoryHandler.NewHandler(clientHistoryUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getRules := getRulesHandler.NewHandler(rulesSvc, log)
	updateRules := updateRulesHandler.NewHandler(rulesSvc, log)
	deleteRules := deleteRulesHandler.NewHandler(rulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerSecond,
			cfg.RateLimit.Burst,
			cfg.RateLimit.MaxClients,
			metricsCollector,
		)
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// ============================================================
	// PUBLIC ROUTES (X-User-ID опционален, нужен только для персональной цены)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)

	// --- Планирование ---
	public.HandleFunc("/tenants/{tenantId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/tenants/{tenantId}/resources/search", findResources.Handle).Methods(http.MethodPost)
	public.HandleFunc("/tenants/{tenantId}/bookings/validate", validateBooking.Handle).Methods(http.MethodPost)
	public.HandleFunc("/tenants/{tenantId}/estimate", estimateCost.Handle).Methods(http.MethodPost)

	// --- Правила бронирования ---
	public.HandleFunc("/tenants/{tenantId}/rules", getRules.Handle).Methods(http.MethodGet)

	// --- Просмотр бронирований ---
	public.HandleFunc("/tenants/{tenantId}/bookings", getTenantBookings.Handle).Methods(http.MethodGet)
	public.HandleFunc("/tenants/{tenantId}/clients/{clientId}/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	public.HandleFunc("/tenants/{tenantId}/clients/{clientId}/history", getClientHistory.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/{bookingId}/timeline", getTimeline.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/tenants/{tenantId}/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Управление правилами ---
	protected.HandleFunc("/tenants/{tenantId}/rules", updateRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/tenants/{tenantId}/rules", deleteRules.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
