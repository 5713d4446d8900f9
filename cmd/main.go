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

	acceptRequestHandler "github.com/mph199/eduvite-backend/internal/api/handlers/accept_request"
	adminBookingsHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_bookings"
	adminEventsHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_events"
	adminFeedbackHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_feedback"
	adminSettingsHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_settings"
	adminSlotsHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_slots"
	adminTeachersHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_teachers"
	adminUsersHandler "github.com/mph199/eduvite-backend/internal/api/handlers/admin_users"
	authHandler "github.com/mph199/eduvite-backend/internal/api/handlers/auth"
	createRequestHandler "github.com/mph199/eduvite-backend/internal/api/handlers/create_request"
	declineRequestHandler "github.com/mph199/eduvite-backend/internal/api/handlers/decline_request"
	publicHandler "github.com/mph199/eduvite-backend/internal/api/handlers/public"
	reserveSlotHandler "github.com/mph199/eduvite-backend/internal/api/handlers/reserve_slot"
	teacherAreaHandler "github.com/mph199/eduvite-backend/internal/api/handlers/teacher_area"
	verifyEmailHandler "github.com/mph199/eduvite-backend/internal/api/handlers/verify_email"
	"github.com/mph199/eduvite-backend/internal/api/middleware"
	"github.com/mph199/eduvite-backend/internal/app"
	"github.com/mph199/eduvite-backend/internal/auth"
	"github.com/mph199/eduvite-backend/internal/config"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	feedbackRepo "github.com/mph199/eduvite-backend/internal/infra/storage/feedback"
	requestRepo "github.com/mph199/eduvite-backend/internal/infra/storage/request"
	settingsRepo "github.com/mph199/eduvite-backend/internal/infra/storage/settings"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
	userRepo "github.com/mph199/eduvite-backend/internal/infra/storage/user"
	accountsService "github.com/mph199/eduvite-backend/internal/service/accounts"
	eventsService "github.com/mph199/eduvite-backend/internal/service/events"
	feedbackService "github.com/mph199/eduvite-backend/internal/service/feedback"
	requestsService "github.com/mph199/eduvite-backend/internal/service/requests"
	slotsService "github.com/mph199/eduvite-backend/internal/service/slots"
	teachersService "github.com/mph199/eduvite-backend/internal/service/teachers"
	acceptRequestUC "github.com/mph199/eduvite-backend/internal/usecase/accept_request"
	autoAssignUC "github.com/mph199/eduvite-backend/internal/usecase/auto_assign"
	createRequestUC "github.com/mph199/eduvite-backend/internal/usecase/create_request"
	createTeacherUC "github.com/mph199/eduvite-backend/internal/usecase/create_teacher"
	generateSlotsUC "github.com/mph199/eduvite-backend/internal/usecase/generate_slots"
	reserveSlotUC "github.com/mph199/eduvite-backend/internal/usecase/reserve_slot"
	verifyEmailUC "github.com/mph199/eduvite-backend/internal/usecase/verify_email"
	"github.com/mph199/eduvite-backend/pkg/dbmetrics"
	"github.com/mph199/eduvite-backend/pkg/logger"
	"github.com/mph199/eduvite-backend/pkg/metrics"
	"github.com/mph199/eduvite-backend/pkg/txmanager"
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

	log.Info("Starting eduvite-backend...")
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

	// Применяем миграции
	migrator, err := app.NewMigrator(db)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	if version, err := migrator.Version(context.Background()); err == nil {
		log.Info("Database schema at version %d", version)
	}

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	var txBeginner dbmetrics.TxBeginner = dbmetrics.SQLBeginner{DB: db}

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txBeginner = wrappedDB
		log.Info("Database metrics collection started")
	}

	teacherRepository := teacherRepo.NewRepository(executor)
	eventRepository := eventRepo.NewRepository(executor)
	slotRepository := slotRepo.NewRepository(executor)
	requestRepository := requestRepo.NewRepository(executor)
	userRepository := userRepo.NewRepository(executor)
	settingsRepository := settingsRepo.NewRepository(executor)
	feedbackRepository := feedbackRepo.NewRepository(executor)

	txMgr := txmanager.NewTransactionManager(txBeginner)

	// Инициализируем почту и токены
	mail := mailer.New(mailer.Config{
		Host:          cfg.Mail.Host,
		Port:          cfg.Mail.Port,
		Username:      cfg.Mail.Username,
		Password:      cfg.Mail.Password,
		From:          cfg.Mail.From,
		BaseURL:       cfg.Mail.BaseURL,
		SubjectPrefix: cfg.Mail.SubjectPrefix,
	}, log)
	if mail.IsConfigured() {
		log.Info("Mailer configured (host=%s, from=%s)", cfg.Mail.Host, cfg.Mail.From)
	} else {
		log.Warn("Mailer not configured, emails will be skipped")
	}

	tokenIssuer := auth.NewTokenIssuer(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
	)

	// Инициализируем сервисы
	teachersSvc := teachersService.NewService(
		teacherRepository,
		slotRepository,
		txMgr,
		cfg.Booking.TeacherEmailDomain,
		log,
	)
	eventsSvc := eventsService.NewService(
		eventRepository,
		slotRepository,
		settingsRepository,
		log,
	)
	slotsSvc := slotsService.NewService(
		slotRepository,
		teacherRepository,
		eventRepository,
		mail,
		log,
	)
	requestsSvc := requestsService.NewService(requestRepository, log)
	feedbackSvc := feedbackService.NewService(feedbackRepository, log)
	accountsSvc := accountsService.NewService(
		userRepository,
		tokenIssuer,
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
		log,
	)

	// Инициализируем use cases
	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		slotRepository,
		eventRepository,
		teacherRepository,
		mail,
		log,
	)
	createRequestUseCase := createRequestUC.NewUseCase(
		requestRepository,
		eventRepository,
		teacherRepository,
		mail,
		log,
	)
	verifyEmailUseCase := verifyEmailUC.NewUseCase(
		slotRepository,
		requestRepository,
		teacherRepository,
		mail,
		time.Duration(cfg.Booking.VerificationTTLHours)*time.Hour,
		log,
	)
	acceptRequestUseCase := acceptRequestUC.NewUseCase(
		requestRepository,
		slotRepository,
		teacherRepository,
		settingsRepository,
		mail,
		log,
	)
	autoAssignUseCase := autoAssignUC.NewUseCase(
		requestRepository,
		acceptRequestUseCase,
		time.Duration(cfg.Booking.AutoAssignGraceHours)*time.Hour,
		log,
	)
	generateSlotsUseCase := generateSlotsUC.NewUseCase(
		slotRepository,
		teacherRepository,
		eventRepository,
		settingsRepository,
		txMgr,
		log,
	)
	createTeacherUseCase := createTeacherUC.NewUseCase(
		teachersSvc,
		generateSlotsUseCase,
		accountsSvc,
		log,
	)

	// Инициализируем handlers
	pub := publicHandler.NewHandler(teachersSvc, slotsSvc, eventsSvc, teacherRepository, slotRepository, log)
	authH := authHandler.NewHandler(accountsSvc, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	createRequest := createRequestHandler.NewHandler(createRequestUseCase, log)
	verifyEmail := verifyEmailHandler.NewHandler(verifyEmailUseCase, log)
	acceptRequest := acceptRequestHandler.NewHandler(acceptRequestUseCase, log)
	declineRequest := declineRequestHandler.NewHandler(requestsSvc, log)
	teacherArea := teacherAreaHandler.NewHandler(
		teachersSvc,
		slotsSvc,
		requestsSvc,
		autoAssignUseCase,
		eventsSvc,
		feedbackSvc,
		accountsSvc,
		log,
	)
	adminTeachers := adminTeachersHandler.NewHandler(teachersSvc, createTeacherUseCase, generateSlotsUseCase, accountsSvc, log)
	adminEvents := adminEventsHandler.NewHandler(eventsSvc, generateSlotsUseCase, log)
	adminSlots := adminSlotsHandler.NewHandler(slotsSvc, log)
	adminBookings := adminBookingsHandler.NewHandler(slotsSvc, log)
	adminUsers := adminUsersHandler.NewHandler(accountsSvc, log)
	adminSettings := adminSettingsHandler.NewHandler(eventsSvc, log)
	adminFeedback := adminFeedbackHandler.NewHandler(feedbackSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/health", pub.Health).Methods(http.MethodGet)
	api.HandleFunc("/teachers", pub.Teachers).Methods(http.MethodGet)
	api.HandleFunc("/slots", pub.Slots).Methods(http.MethodGet)
	api.HandleFunc("/events/active", pub.ActiveEvent).Methods(http.MethodGet)
	api.HandleFunc("/events/upcoming", pub.UpcomingEvents).Methods(http.MethodGet)

	// Прямая запись, запросы на запись и подтверждение email
	api.HandleFunc("/bookings", reserveSlot.Handle).Methods(http.MethodPost)
	api.HandleFunc("/booking-requests", createRequest.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/verify/{token}", verifyEmail.Handle).Methods(http.MethodGet)

	// Вход и выход
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authH.Logout).Methods(http.MethodPost, http.MethodDelete)

	// ============================================================
	// AUTHENTICATED ROUTES (любой залогиненный пользователь)
	// ============================================================

	authed := api.PathPrefix("").Subrouter()
	authed.Use(middleware.Authenticate(tokenIssuer, log))

	authed.HandleFunc("/auth/verify", authH.Verify).Methods(http.MethodGet)
	authed.HandleFunc("/admin/settings", adminSettings.Get).Methods(http.MethodGet)

	// ============================================================
	// TEACHER ROUTES (учитель или админ)
	// ============================================================

	teacher := api.PathPrefix("/teacher").Subrouter()
	teacher.Use(middleware.Authenticate(tokenIssuer, log))
	teacher.Use(middleware.RequireTeacher)

	teacher.HandleFunc("/info", teacherArea.Info).Methods(http.MethodGet)
	teacher.HandleFunc("/slots", teacherArea.Slots).Methods(http.MethodGet)
	teacher.HandleFunc("/bookings", teacherArea.Bookings).Methods(http.MethodGet)
	teacher.HandleFunc("/bookings/{slotId}/accept", teacherArea.ConfirmBooking).Methods(http.MethodPut)
	teacher.HandleFunc("/bookings/{slotId}", teacherArea.CancelBooking).Methods(http.MethodDelete)
	teacher.HandleFunc("/requests", teacherArea.Requests).Methods(http.MethodGet)
	teacher.HandleFunc("/requests/{id}/accept", acceptRequest.Handle).Methods(http.MethodPut)
	teacher.HandleFunc("/requests/{id}/decline", declineRequest.Handle).Methods(http.MethodPut)
	teacher.HandleFunc("/password", teacherArea.ChangePassword).Methods(http.MethodPut)
	teacher.HandleFunc("/feedback", teacherArea.Feedback).Methods(http.MethodPost)
	teacher.HandleFunc("/room", teacherArea.Room).Methods(http.MethodPut)

	// ============================================================
	// ADMIN ROUTES
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Authenticate(tokenIssuer, log))
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/teachers", adminTeachers.List).Methods(http.MethodGet)
	admin.HandleFunc("/teachers", adminTeachers.Create).Methods(http.MethodPost)
	admin.HandleFunc("/teachers/{id}", adminTeachers.Update).Methods(http.MethodPut)
	admin.HandleFunc("/teachers/{id}", adminTeachers.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/teachers/{id}/reset-login", adminTeachers.ResetLogin).Methods(http.MethodPut)
	admin.HandleFunc("/teachers/{id}/generate-slots", adminTeachers.GenerateSlots).Methods(http.MethodPost)

	admin.HandleFunc("/events", adminEvents.List).Methods(http.MethodGet)
	admin.HandleFunc("/events", adminEvents.Create).Methods(http.MethodPost)
	admin.HandleFunc("/events/{id}", adminEvents.Update).Methods(http.MethodPut)
	admin.HandleFunc("/events/{id}", adminEvents.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/events/{id}/stats", adminEvents.Stats).Methods(http.MethodGet)
	admin.HandleFunc("/events/{id}/generate-slots", adminEvents.GenerateSlots).Methods(http.MethodPost)

	admin.HandleFunc("/slots", adminSlots.List).Methods(http.MethodGet)
	admin.HandleFunc("/slots", adminSlots.Create).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{id}", adminSlots.Update).Methods(http.MethodPut)
	admin.HandleFunc("/slots/{id}", adminSlots.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/bookings", adminBookings.List).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{slotId}", adminBookings.Cancel).Methods(http.MethodDelete)

	admin.HandleFunc("/users", adminUsers.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", adminUsers.UpdateRole).Methods(http.MethodPatch)
	admin.HandleFunc("/users/{id}", adminUsers.Delete).Methods(http.MethodDelete)

	admin.HandleFunc("/settings", adminSettings.Update).Methods(http.MethodPut)

	admin.HandleFunc("/feedback", adminFeedback.List).Methods(http.MethodGet)
	admin.HandleFunc("/feedback/{id}", adminFeedback.Delete).Methods(http.MethodDelete)

	// Запускаем фоновое автоназначение просроченных заявок
	schedulerCtx, cancelScheduler := context.WithCancel(context.Background())
	defer cancelScheduler()

	scheduler := app.NewScheduler(
		autoAssignUseCase,
		time.Duration(cfg.Booking.AutoAssignIntervalMin)*time.Minute,
		log,
	)
	scheduler.Start(schedulerCtx)

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

	scheduler.Stop()

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
