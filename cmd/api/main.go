package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"ortus-club/internal/bot"
	"ortus-club/internal/models/config"
	"ortus-club/internal/repository"
	"ortus-club/internal/repository/memory"
	"ortus-club/internal/repository/postgres"
	attendance_service "ortus-club/internal/service/attendance"
	cleaning_service "ortus-club/internal/service/cleaning"
	photoreport_service "ortus-club/internal/service/photoreport"
	report_service "ortus-club/internal/service/report"
	schedule_service "ortus-club/internal/service/schedule"
	session_service "ortus-club/internal/service/session"
	"ortus-club/internal/timing"
	"ortus-club/internal/web"
	database "ortus-club/pkg"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			func(cfg *config.Config) *time.Location { return cfg.Location },
			timing.SystemClock,
			web.NewValidator,
			newRepositories,
			newNotifier,

			session_service.NewTrainingSessionService,
			attendance_service.NewAttendanceService,
			photoreport_service.NewPhotoReportService,
			report_service.NewTimingReportService,
			cleaning_service.NewCleaningReportService,
			schedule_service.NewScheduleService,

			web.NewHandler,
			func(cfg *config.Config) *web.TokenVerifier { return web.NewTokenVerifier(cfg.Auth.JWTSecret) },
			newRouter,
			newServer,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		fx.Invoke(func(*http.Server) {}),
	).Run()
}

func newConfig() (*config.Config, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return config.AppConfig, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newRepositories(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*repository.Repositories, error) {
	if cfg.Storage == "memory" {
		logger.Warn("используется хранилище в памяти, данные не сохраняются")
		return memory.Open().Repositories(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return postgres.NewRepositories(db, cfg.Location), nil
}

// newNotifier - без BOT_TOKEN уведомления отключены
func newNotifier(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (bot.Notifier, error) {
	if cfg.Bot.Token == "" {
		logger.Warn("BOT_TOKEN не задан, уведомления в Telegram отключены")
		return bot.Nop{}, nil
	}

	telegramBot, err := bot.NewBot(cfg.Bot, cfg.Location, logger)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := telegramBot.Start(ctx); err != nil {
					logger.Error("бот остановлен с ошибкой", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return telegramBot, nil
}

func newRouter(h *web.Handler, verifier *web.TokenVerifier, repos *repository.Repositories, cfg *config.Config, logger *zap.Logger) http.Handler {
	return web.NewRouter(h, verifier, repos.Users, cfg.HTTP, logger)
}

func newServer(lc fx.Lifecycle, cfg *config.Config, handler http.Handler, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("ошибка запуска HTTP сервера: %w", err)
			}
			logger.Info("HTTP сервер запущен",
				zap.String("addr", srv.Addr),
				zap.String("env", cfg.Environment),
			)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP сервер остановлен с ошибкой", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			logger.Info("остановка HTTP сервера")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
