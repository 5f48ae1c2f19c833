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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createAppointmentHandler "github.com/ekicare/ekicare-api/internal/api/handlers/create_appointment"
	createCheckoutSessionHandler "github.com/ekicare/ekicare-api/internal/api/handlers/create_checkout_session"
	deleteAppointmentHandler "github.com/ekicare/ekicare-api/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/ekicare/ekicare-api/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/ekicare/ekicare-api/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/ekicare/ekicare-api/internal/api/handlers/get_calendar"
	getWorkingHoursHandler "github.com/ekicare/ekicare-api/internal/api/handlers/get_working_hours"
	listAppointmentsHandler "github.com/ekicare/ekicare-api/internal/api/handlers/list_appointments"
	stripeWebhookHandler "github.com/ekicare/ekicare-api/internal/api/handlers/stripe_webhook"
	updateAppointmentHandler "github.com/ekicare/ekicare-api/internal/api/handlers/update_appointment"
	updateWorkingHoursHandler "github.com/ekicare/ekicare-api/internal/api/handlers/update_working_hours"
	verifyPaymentHandler "github.com/ekicare/ekicare-api/internal/api/handlers/verify_payment"
	"github.com/ekicare/ekicare-api/internal/api/middleware"
	"github.com/ekicare/ekicare-api/internal/config"
	"github.com/ekicare/ekicare-api/internal/domain"
	"github.com/ekicare/ekicare-api/internal/infra/cache"
	appointmentRepo "github.com/ekicare/ekicare-api/internal/infra/storage/appointment"
	billingRepo "github.com/ekicare/ekicare-api/internal/infra/storage/billing"
	equideRepo "github.com/ekicare/ekicare-api/internal/infra/storage/equide"
	profileRepo "github.com/ekicare/ekicare-api/internal/infra/storage/profile"
	"github.com/ekicare/ekicare-api/internal/integrations/mailer"
	"github.com/ekicare/ekicare-api/internal/integrations/stripe"
	appointmentsService "github.com/ekicare/ekicare-api/internal/service/appointments"
	billingService "github.com/ekicare/ekicare-api/internal/service/billing"
	profileService "github.com/ekicare/ekicare-api/internal/service/profile"
	createAppointmentUC "github.com/ekicare/ekicare-api/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/ekicare/ekicare-api/internal/usecase/get_available_slots"
	getCalendarUC "github.com/ekicare/ekicare-api/internal/usecase/get_calendar"
	updateAppointmentUC "github.com/ekicare/ekicare-api/internal/usecase/update_appointment"
	"github.com/ekicare/ekicare-api/pkg/dbmetrics"
	"github.com/ekicare/ekicare-api/pkg/logger"
	"github.com/ekicare/ekicare-api/pkg/metrics"
	"github.com/ekicare/ekicare-api/pkg/otelx"
	"github.com/ekicare/ekicare-api/pkg/txmanager"
	"github.com/ekicare/ekicare-api/pkg/types"
)

const (
	configPath        = "config.toml"
	stripeTimeout     = 10 * time.Second
	rateLimitKeyspace = "ekicare:ratelimit:"
)

func main() {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting ekicare-api...")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := otelx.Setup(ctx, otelx.Config{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		SampleRatio:  cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to set up tracing: %v", err)
	}

	// Les collecteurs existent toujours, ils ne sont exposés que si les métriques sont activées.
	registerer := prometheus.Registerer(prometheus.NewRegistry())
	if cfg.Metrics.Enabled {
		registerer = prometheus.DefaultRegisterer
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}
	metricsCollector := metrics.NewWithRegisterer(cfg.Metrics.ServiceName, registerer)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (%s)", cfg.Database.Target())

	stopMetricsCh := make(chan struct{})
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Repositories
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	profileRepository := profileRepo.NewRepository(wrappedDB)
	equideRepository := equideRepo.NewRepository(wrappedDB)
	billingRepository := billingRepo.NewRepository(wrappedDB)

	// Intégrations
	mailClient := mailer.NewClient(mailer.Config{
		Enabled:  cfg.Mail.Enabled,
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, log)
	mailClient.Start(ctx)
	defer mailClient.Close()
	log.Info("Mailer initialized (enabled=%t)", mailClient.Enabled())

	stripeClient := stripe.NewClient(stripe.Config{
		SecretKey:        cfg.Stripe.SecretKey,
		WebhookSecret:    cfg.Stripe.WebhookSecret,
		PriceID:          cfg.Stripe.PriceID,
		SiteURL:          cfg.Stripe.SiteURL,
		WebhookTolerance: time.Duration(cfg.Stripe.WebhookTolerance) * time.Second,
		Timeout:          stripeTimeout,
	}, log)
	if !cfg.Stripe.Enabled() {
		log.Warn("Stripe is not configured, billing endpoints will fail")
	}

	rules, err := bookingRules(cfg.Booking)
	if err != nil {
		log.Fatal("Invalid booking configuration: %v", err)
	}

	// Services
	workingHoursCache := cache.NewWorkingHoursCache(
		time.Duration(cfg.Cache.WorkingHoursTTL)*time.Second,
		time.Duration(cfg.Cache.CleanupInterval)*time.Second,
	)
	profileSvc := profileService.NewService(profileRepository, workingHoursCache, rules.DefaultDay, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		profileRepository,
		equideRepository,
		txManager,
		metricsCollector,
		log,
	)
	billingSvc := billingService.NewService(
		stripeClient,
		profileRepository,
		billingRepository,
		txManager,
		metricsCollector,
		log,
	)

	// Use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		profileRepository,
		equideRepository,
		profileSvc,
		txManager,
		mailClient,
		metricsCollector,
		rules,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		profileRepository,
		txManager,
		mailClient,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(appointmentRepository, profileSvc, rules, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(profileSvc, log)

	// Handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getWorkingHours := getWorkingHoursHandler.NewHandler(profileSvc, log)
	updateWorkingHours := updateWorkingHoursHandler.NewHandler(profileSvc, log)
	createCheckoutSession := createCheckoutSessionHandler.NewHandler(billingSvc, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(billingSvc, log)
	verifyPayment := verifyPaymentHandler.NewHandler(billingSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.Recoverer(log))
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	if cfg.RateLimit.Enabled {
		proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid trusted proxies: %v", err)
		}
		limiter, closeLimiter := newRateLimiter(ctx, cfg, log)
		defer closeLimiter()
		api.Use(middleware.RateLimit(limiter, proxies, log))
	}

	// ============================================================
	// ROUTES PUBLIQUES
	// ============================================================

	api.HandleFunc("/pros/{proId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proId}/calendar", getCalendar.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proId}/working-hours", getWorkingHours.Handle).Methods(http.MethodGet)

	// Signé par Stripe, pas par l'utilisateur
	api.HandleFunc("/stripe/webhook", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// ROUTES PROTÉGÉES (access token Supabase)
	// ============================================================

	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.CookieName, log)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.Auth)

	// --- Rendez-vous ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}", deleteAppointment.Handle).Methods(http.MethodDelete)

	// --- Profil professionnel ---
	protected.HandleFunc("/profile/working-hours", updateWorkingHours.Handle).Methods(http.MethodPut)

	// --- Facturation ---
	protected.HandleFunc("/stripe/checkout", createCheckoutSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/auth/verify-payment", verifyPayment.Handle).Methods(http.MethodPost)

	var handler http.Handler = http.MaxBytesHandler(r, cfg.Server.MaxBodyBytes)
	handler = otelhttp.NewHandler(handler, cfg.Metrics.ServiceName)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// bookingRules convertit la section booking en règles du domaine
func bookingRules(cfg config.BookingConfig) (domain.BookingRules, error) {
	start, err := types.NewTimeStringFromString(cfg.DefaultDayStart)
	if err != nil {
		return domain.BookingRules{}, fmt.Errorf("default_day_start: %w", err)
	}
	end, err := types.NewTimeStringFromString(cfg.DefaultDayEnd)
	if err != nil {
		return domain.BookingRules{}, fmt.Errorf("default_day_end: %w", err)
	}

	day := domain.DaySchedule{Active: true, Start: start, End: end}
	if err := day.Validate(); err != nil {
		return domain.BookingRules{}, err
	}

	return domain.BookingRules{
		DefaultDuration: cfg.DefaultDuration,
		MinDuration:     cfg.MinDuration,
		MaxDuration:     cfg.MaxDuration,
		DefaultDay:      day,
	}, nil
}

// newRateLimiter partage une fenêtre fixe via Redis si configuré,
// sinon garde un token bucket par client en mémoire
func newRateLimiter(ctx context.Context, cfg *config.Config, log *logger.Logger) (middleware.Limiter, func()) {
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("Redis unreachable at %s, rate limiting fails open until it recovers: %v", cfg.Redis.Addr, err)
		}
		log.Info("Rate limiting via Redis (%d req / %ds)", cfg.RateLimit.WindowLimit, cfg.RateLimit.WindowSeconds)

		limiter := middleware.NewRedisLimiter(
			rdb,
			cfg.RateLimit.WindowLimit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			rateLimitKeyspace,
		)
		return limiter, func() {
			if err := rdb.Close(); err != nil {
				log.Error("Failed to close redis client: %v", err)
			}
		}
	}

	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	limiter := middleware.NewMemoryLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, window)
	go limiter.Cleanup(ctx, window)
	log.Info("Rate limiting in memory (%.1f req/s, burst %d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	return limiter, func() {}
}
