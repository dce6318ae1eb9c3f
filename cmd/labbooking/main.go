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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	bookingWindowHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/booking_window"
	cancelBookingHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/cancel_booking"
	createSlotHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/create_slot"
	deleteSlotHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/delete_slot"
	getBookingHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/get_booking"
	getSettingsHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/get_user_bookings"
	listSlotsHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/list_slots"
	markNoShowHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/mark_no_show"
	reserveBookingHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/reserve_booking"
	submitSamplesHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/submit_samples"
	updateSettingsHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/update_settings"
	updateSlotHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/update_slot"
	weeklyReportHandler "github.com/chemlab-portal/booking-service/internal/api/handlers/weekly_report"
	"github.com/chemlab-portal/booking-service/internal/api/middleware"
	"github.com/chemlab-portal/booking-service/internal/config"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	settingsRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/settings"
	slotRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/slot"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	bookingsService "github.com/chemlab-portal/booking-service/internal/service/bookings"
	settingsService "github.com/chemlab-portal/booking-service/internal/service/settings"
	slotsService "github.com/chemlab-portal/booking-service/internal/service/slots"
	reserveSlotUC "github.com/chemlab-portal/booking-service/internal/usecase/reserve_slot"
	submitSamplesUC "github.com/chemlab-portal/booking-service/internal/usecase/submit_samples"
	weeklyReportUC "github.com/chemlab-portal/booking-service/internal/usecase/weekly_report"
	"github.com/chemlab-portal/booking-service/pkg/dbmetrics"
	"github.com/chemlab-portal/booking-service/pkg/logger"
	"github.com/chemlab-portal/booking-service/pkg/metrics"
	"github.com/chemlab-portal/booking-service/pkg/simpletxmanager"
	"github.com/chemlab-portal/booking-service/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting lab booking service...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository     *slotRepo.Repository
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
		userRepository     *userRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		userRepository,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(slotRepository, userRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, userRepository, log)

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		slotRepository,
		bookingRepository,
		settingsRepository,
		txMgr,
		log,
	)
	submitSamplesUseCase := submitSamplesUC.NewUseCase(
		bookingRepository,
		slotRepository,
		log,
	)
	weeklyReportUseCase := weeklyReportUC.NewUseCase(
		bookingRepository,
		userRepository,
		log,
	)

	// Инициализируем handlers
	listSlots := listSlotsHandler.NewHandler(slotSvc, log)
	bookingWindow := bookingWindowHandler.NewHandler(settingsSvc, log)
	reserveBooking := reserveBookingHandler.NewHandler(reserveSlotUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	submitSamples := submitSamplesHandler.NewHandler(submitSamplesUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	createSlot := createSlotHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	weeklyReport := weeklyReportHandler.NewHandler(weeklyReportUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание слотов лаборатории
	api.HandleFunc("/slots", listSlots.Handle).Methods(http.MethodGet)

	// Текущее состояние окна бронирования
	api.HandleFunc("/booking-window", bookingWindow.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.NewAuth(cfg.Auth.JWTSecret, log))

	// Лимитер на создание бронирований - защита от скриптового перехвата слотов
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)

	// --- Бронирования ---
	protected.Handle("/bookings",
		rateLimiter.Limit(http.HandlerFunc(reserveBooking.Handle))).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/samples", submitSamples.Handle).Methods(http.MethodPost)

	// История бронирований студента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("/admin").Subrouter()

	admin.HandleFunc("/slots", createSlot.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/slots/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/reports/weekly", weeklyReport.Handle).Methods(http.MethodGet)

	// CORS для фронтенда портала
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
