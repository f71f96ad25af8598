// @title Eventory API
// @version 1.0
// @description Event management for colleges: catalog, registrations, attendance, feedback and reports.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventory/config"
	_ "eventory/docs"
	"eventory/internal/adapters/auth"
	"eventory/internal/adapters/email"
	delivery "eventory/internal/delivery/http"
	"eventory/internal/delivery/http/controllers"
	"eventory/internal/metrics"
	"eventory/internal/repository/postgres"
	"eventory/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	startCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := postgres.Open(startCtx, cfg.DBUrl)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}

	m := metrics.New()
	timeout := cfg.RequestTimeout

	// Repositories
	tx := postgres.NewTransactor(db)
	collegeRepo := postgres.NewCollegeRepository(db)
	studentRepo := postgres.NewStudentRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	attendanceRepo := postgres.NewAttendanceRepository(db)
	feedbackRepo := postgres.NewFeedbackRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	// Services
	emailSvc := services.NewEmailService(mailer, email.NewTemplateRenderer())
	collegeSvc := services.NewCollegeService(collegeRepo, timeout)
	studentSvc := services.NewStudentService(studentRepo, collegeRepo, timeout)
	eventSvc := services.NewEventService(tx, eventRepo, collegeRepo, timeout)
	registrationSvc := services.NewRegistrationService(tx, eventRepo, studentRepo, collegeRepo, registrationRepo, emailSvc, m, logger, timeout)
	attendanceSvc := services.NewAttendanceService(eventRepo, studentRepo, registrationRepo, attendanceRepo, m, timeout)
	feedbackSvc := services.NewFeedbackService(tx, eventRepo, studentRepo, feedbackRepo, attendanceRepo, m, timeout)
	reportSvc := services.NewReportService(reportRepo, timeout)

	mux := delivery.NewRouter(delivery.RouterDeps{
		Logger:        logger,
		Verifier:      auth.NewJWTVerifier(cfg.JWTSecret, cfg.JWTIssuer),
		DB:            db,
		Metrics:       m.Handler(),
		Colleges:      controllers.NewCollegeController(logger, collegeSvc),
		Students:      controllers.NewStudentController(logger, studentSvc),
		Events:        controllers.NewEventController(logger, eventSvc),
		Registrations: controllers.NewRegistrationController(logger, registrationSvc),
		Attendance:    controllers.NewAttendanceController(logger, attendanceSvc),
		Feedback:      controllers.NewFeedbackController(logger, feedbackSvc),
		Reports:       controllers.NewReportController(logger, reportSvc),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           delivery.NewHandler(mux, logger, cfg.CORSAllowedOrigins, m.Instrument),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
