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

	createBookingHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/delete_booking"
	getAvailableDaysHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/get_available_days"
	getAvailableSlotsHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/get_booking"
	getBookingsHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/get_bookings"
	getSettingsHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/get_settings"
	updateBookingHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/update_booking"
	updateSettingsHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/update_settings"
	watchSettingsHandler "github.com/m04kA/TDS-BookingService/internal/api/handlers/watch_settings"
	"github.com/m04kA/TDS-BookingService/internal/api/middleware"
	"github.com/m04kA/TDS-BookingService/internal/config"
	bookingRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/TDS-BookingService/internal/infra/storage/settings"
	smsgateClient "github.com/m04kA/TDS-BookingService/internal/integrations/smsgate"
	bookingsService "github.com/m04kA/TDS-BookingService/internal/service/bookings"
	settingsService "github.com/m04kA/TDS-BookingService/internal/service/settings"
	createBookingUC "github.com/m04kA/TDS-BookingService/internal/usecase/create_booking"
	getAvailableDaysUC "github.com/m04kA/TDS-BookingService/internal/usecase/get_available_days"
	getAvailableSlotsUC "github.com/m04kA/TDS-BookingService/internal/usecase/get_available_slots"
	updateBookingUC "github.com/m04kA/TDS-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/TDS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/TDS-BookingService/pkg/logger"
	"github.com/m04kA/TDS-BookingService/pkg/metrics"
	"github.com/m04kA/TDS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/TDS-BookingService/pkg/txmanager"
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

	log.Info("Starting TDS-BookingService...")
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

	// Инициализируем клиент SMS провайдера
	smsClient := smsgateClient.NewClient(
		cfg.SMSGate.URL,
		cfg.SMSGate.APIKey,
		time.Duration(cfg.SMSGate.Timeout)*time.Second,
		log,
	)
	log.Info("SMS gate client initialized (url=%s, timeout=%ds)", cfg.SMSGate.URL, cfg.SMSGate.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		log,
	)

	settingsWatcher := settingsService.NewWatcher()
	settingsSvc := settingsService.NewService(
		settingsRepository,
		settingsWatcher,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		smsClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		log,
	)

	getAvailableDaysUseCase := getAvailableDaysUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		log,
	)

	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDays := getAvailableDaysHandler.NewHandler(getAvailableDaysUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	watchSettings := watchSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Прокидываем идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Liveness endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (виджет записи, без аутентификации)
	// ============================================================

	// Создание заявки
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Доступность дней месяца для календаря
	api.HandleFunc("/availability/days", getAvailableDays.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/availability/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Чтение настроек календаря
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (админка, требуют X-Staff-ID header)
	// ============================================================

	staff := api.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffAuth(log))

	// --- Заявки ---
	// Список заявок с фильтрацией
	staff.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)

	// Получение заявки по ID
	staff.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Частичное редактирование заявки
	staff.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)

	// Мягкое удаление заявки
	staff.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Настройки ---
	// Обновление настроек календаря
	staff.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)

	// SSE поток изменений настроек
	staff.HandleFunc("/settings/events", watchSettings.Handle).Methods(http.MethodGet)

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
