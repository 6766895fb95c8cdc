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

	blockDateHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/block_date"
	cancelBookingHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/create_booking"
	findConflictsHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/find_conflicts"
	getBookingHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/get_booking"
	getDayScheduleHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/get_day_schedule"
	getScheduleConfigHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/get_schedule_config"
	getUserBookingsHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/get_user_bookings"
	listBlockedDatesHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/list_blocked_dates"
	listBookingsHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/list_bookings"
	selectionSessionsHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/selection_sessions"
	unblockDateHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/unblock_date"
	updateBookingStatusHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/update_booking_status"
	updateScheduleConfigHandler "github.com/m04kA/EVT-SchedulingService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/EVT-SchedulingService/internal/api/middleware"
	"github.com/m04kA/EVT-SchedulingService/internal/config"
	blockedDateRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/blockeddate"
	bookingRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/booking"
	scheduleConfigRepo "github.com/m04kA/EVT-SchedulingService/internal/infra/storage/scheduleconfig"
	notifierClient "github.com/m04kA/EVT-SchedulingService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/EVT-SchedulingService/internal/service/bookings"
	scheduleService "github.com/m04kA/EVT-SchedulingService/internal/service/schedule"
	"github.com/m04kA/EVT-SchedulingService/internal/service/selectionmgr"
	createBookingUC "github.com/m04kA/EVT-SchedulingService/internal/usecase/create_booking"
	findConflictsUC "github.com/m04kA/EVT-SchedulingService/internal/usecase/find_conflicts"
	getDayScheduleUC "github.com/m04kA/EVT-SchedulingService/internal/usecase/get_day_schedule"
	"github.com/m04kA/EVT-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/EVT-SchedulingService/pkg/logger"
	"github.com/m04kA/EVT-SchedulingService/pkg/metrics"
	"github.com/m04kA/EVT-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/EVT-SchedulingService/pkg/txmanager"
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

	log.Info("Starting EVT-SchedulingService...")
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

	// Инициализируем клиента сервиса уведомлений
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	log.Info("Notifier client initialized (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		blockedDateRepository *blockedDateRepo.Repository
		configRepository      *scheduleConfigRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		blockedDateRepository = blockedDateRepo.NewRepository(wrappedDB)
		configRepository = scheduleConfigRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		blockedDateRepository = blockedDateRepo.NewRepository(db)
		configRepository = scheduleConfigRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(configRepository, blockedDateRepository, log)

	// Инициализируем use cases
	getDayScheduleUseCase := getDayScheduleUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		configRepository,
		log,
	)

	findConflictsUseCase := findConflictsUC.NewUseCase(
		bookingRepository,
		configRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		blockedDateRepository,
		configRepository,
		notifier,
		txMgr,
		log,
	)

	// Менеджер интерактивных сессий выбора слотов
	selectionManager := selectionmgr.NewManager(
		getDayScheduleUseCase,
		configRepository,
		&getDayScheduleUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getDaySchedule := getDayScheduleHandler.NewHandler(getDayScheduleUseCase, log)
	findConflicts := findConflictsHandler.NewHandler(findConflictsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(scheduleSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(scheduleSvc, log)
	blockDate := blockDateHandler.NewHandler(scheduleSvc, log)
	unblockDate := unblockDateHandler.NewHandler(scheduleSvc, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(scheduleSvc, log)
	selectionSessions := selectionSessionsHandler.NewHandler(selectionManager, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание на день со слотами доступности
	api.HandleFunc("/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/{date}", getDaySchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/{date}/conflicts", findConflicts.Handle).Methods(http.MethodGet)

	// Заблокированные даты для календаря
	api.HandleFunc("/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)

	// Интерактивные сессии выбора слотов
	api.HandleFunc("/selection/sessions", selectionSessions.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/selection/sessions/{sessionId}", selectionSessions.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/selection/sessions/{sessionId}", selectionSessions.HandleClose).Methods(http.MethodDelete)
	api.HandleFunc("/selection/sessions/{sessionId}/events", selectionSessions.HandleEvent).Methods(http.MethodPost)
	api.HandleFunc("/selection/sessions/{sessionId}/refresh", selectionSessions.HandleRefresh).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/schedule/config", updateScheduleConfig.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/blocked-dates", blockDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{date}", unblockDate.Handle).Methods(http.MethodDelete)

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
