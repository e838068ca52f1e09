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

	approveBookingHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/approve_booking"
	cancelBookingHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/get_booking"
	getGuestBookingsHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/get_guest_bookings"
	getPropertyBookingsHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/get_property_bookings"
	quotePriceHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/quote_price"
	reopenPaymentHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/reopen_payment"
	runSweepsHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/run_sweeps"
	submitPaymentHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/submit_payment"
	verifyPaymentHandler "github.com/stayhub/StayHub-BookingService/internal/api/handlers/verify_payment"
	"github.com/stayhub/StayHub-BookingService/internal/api/middleware"
	"github.com/stayhub/StayHub-BookingService/internal/config"
	bookingRepo "github.com/stayhub/StayHub-BookingService/internal/infra/storage/booking"
	guestServiceClient "github.com/stayhub/StayHub-BookingService/internal/integrations/guestservice"
	propertyServiceClient "github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/internal/scheduler"
	bookingsService "github.com/stayhub/StayHub-BookingService/internal/service/bookings"
	pricingService "github.com/stayhub/StayHub-BookingService/internal/service/pricing"
	checkAvailabilityUC "github.com/stayhub/StayHub-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/stayhub/StayHub-BookingService/internal/usecase/create_booking"
	runSweepsUC "github.com/stayhub/StayHub-BookingService/internal/usecase/run_sweeps"
	"github.com/stayhub/StayHub-BookingService/pkg/dbmetrics"
	"github.com/stayhub/StayHub-BookingService/pkg/logger"
	"github.com/stayhub/StayHub-BookingService/pkg/metrics"
	"github.com/stayhub/StayHub-BookingService/pkg/simpletxmanager"
	"github.com/stayhub/StayHub-BookingService/pkg/txmanager"
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

	log.Info("Starting StayHub-BookingService...")
	log.Info("Configuration loaded from config.toml")

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

	// Инициализируем интеграционных клиентов
	propertyClient := propertyServiceClient.NewClient(
		cfg.PropertyService.URL,
		time.Duration(cfg.PropertyService.Timeout)*time.Second,
		log,
	)
	guestClient := guestServiceClient.NewClient(
		cfg.GuestService.URL,
		time.Duration(cfg.GuestService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PropertyService=%s timeout=%ds, GuestService=%s timeout=%ds)",
		cfg.PropertyService.URL, cfg.PropertyService.Timeout, cfg.GuestService.URL, cfg.GuestService.Timeout)

	// Инициализируем репозиторий и transaction manager (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		bookingRepository *bookingRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	paymentWindow := time.Duration(cfg.Booking.PaymentWindowMinutes) * time.Minute
	timeProvider := &bookingsService.RealTimeProvider{}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		propertyClient,
		timeProvider,
		paymentWindow,
		log,
	)
	pricingSvc := pricingService.NewService(
		propertyClient,
		cfg.Booking.Currency,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.New(
		bookingRepository,
		propertyClient,
		guestClient,
		txMgr,
		&createBookingUC.RealTimeProvider{},
		paymentWindow,
		cfg.Booking.Currency,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository,
		propertyClient,
		log,
	)
	// Типизированный nil *metrics.Metrics не должен попасть в интерфейс
	var sweepMetrics runSweepsUC.MetricsRecorder
	if cfg.Metrics.Enabled {
		sweepMetrics = metricsCollector
	}
	runSweepsUseCase := runSweepsUC.New(
		bookingRepository,
		&runSweepsUC.RealTimeProvider{},
		sweepMetrics,
		log,
	)

	// Инициализируем handlers
	quotePrice := quotePriceHandler.NewHandler(pricingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	approveBooking := approveBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	submitPayment := submitPaymentHandler.NewHandler(bookingSvc, log)
	verifyPayment := verifyPaymentHandler.NewHandler(bookingSvc, log)
	reopenPayment := reopenPaymentHandler.NewHandler(bookingSvc, log)
	getGuestBookings := getGuestBookingsHandler.NewHandler(bookingSvc, log)
	getPropertyBookings := getPropertyBookingsHandler.NewHandler(bookingSvc, log)
	runSweeps := runSweepsHandler.NewHandler(runSweepsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Служебный запуск фоновых переходов (для cron и тестовых окружений)
	r.HandleFunc("/internal/sweeps", runSweeps.Handle).Methods(http.MethodPost)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расчёт стоимости проживания
	api.HandleFunc("/bookings/quote", quotePrice.Handle).Methods(http.MethodPost)

	// Проверка доступности дат
	api.HandleFunc("/properties/{propertyId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Подтверждение бронирования хостом
	protected.HandleFunc("/bookings/{bookingId}/approve", approveBooking.Handle).Methods(http.MethodPatch)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Оплата ---
	// Регистрация оплаты гостем
	protected.HandleFunc("/bookings/{bookingId}/payment", submitPayment.Handle).Methods(http.MethodPost)

	// Проверка оплаты хостом
	protected.HandleFunc("/bookings/{bookingId}/payment/verify", verifyPayment.Handle).Methods(http.MethodPatch)

	// Повторное открытие окна оплаты после отклонённого платежа
	protected.HandleFunc("/bookings/{bookingId}/payment/reopen", reopenPayment.Handle).Methods(http.MethodPatch)

	// --- Истории бронирований ---
	// История бронирований гостя
	protected.HandleFunc("/guests/{guestId}/bookings", getGuestBookings.Handle).Methods(http.MethodGet)

	// Бронирования объекта размещения (для хоста и менеджеров)
	protected.HandleFunc("/properties/{propertyId}/bookings", getPropertyBookings.Handle).Methods(http.MethodGet)

	// Запускаем планировщик фоновых переходов
	var sweepScheduler *scheduler.Scheduler
	if cfg.Booking.SweepEnabled {
		sweepInterval := time.Duration(cfg.Booking.SweepIntervalSeconds) * time.Second
		sweepScheduler = scheduler.New(runSweepsUseCase, sweepInterval, log)
		sweepScheduler.Start()
		log.Info("Sweep scheduler started (interval=%s)", sweepInterval)
	}

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

	// Останавливаем планировщик
	if sweepScheduler != nil {
		sweepScheduler.Stop()
		log.Info("Sweep scheduler stopped")
	}

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
