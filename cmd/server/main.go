package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	ifund "github.com/ifund-app/ifund"
	"github.com/ifund-app/ifund/internal/config"
	"github.com/ifund-app/ifund/internal/handler"
	"github.com/ifund-app/ifund/internal/jobs"
	"github.com/ifund-app/ifund/internal/middleware"
	"github.com/ifund-app/ifund/internal/repository"
	"github.com/ifund-app/ifund/internal/service"
	"github.com/ifund-app/ifund/internal/telegram"
	"github.com/ifund-app/ifund/internal/web"
)

func main() {
	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	migrationsFS, err := fs.Sub(ifund.MigrationsFS, "migrations")
	if err != nil {
		slog.Error("failed to load embedded migrations", "error", err)
		os.Exit(1)
	}
	if err := repository.RunMigrations(cfg.DatabaseURL, migrationsFS); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	queries := repository.New(pool)

	userService := service.NewUserService(pool, queries)
	ledgerService := service.NewLedgerService(pool, queries)
	taskService := service.NewTaskService(pool, queries, cfg.ChatTaskCooldown)
	withdrawalService := service.NewWithdrawalService(pool, queries)
	codeService := service.NewCodeService(queries)
	solvencyService := service.NewSolvencyService(queries)
	captcha := web.NewCaptchaVerifier(cfg.CaptchaSecret, cfg.CaptchaMinScore)

	app := fiber.New(fiber.Config{
		AppName:               "ifund",
		DisableStartupMessage: true,
	})
	webHandler := web.New(web.Deps{
		Cfg:         cfg,
		Users:       userService,
		Ledger:      ledgerService,
		Tasks:       taskService,
		Withdrawals: withdrawalService,
		Codes:       codeService,
		Solvency:    solvencyService,
		Captcha:     captcha,
	})
	webHandler.Register(app)

	go func() {
		slog.Info("starting http server", "addr", cfg.HTTPAddr)
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			slog.Error("http server stopped", "error", err)
			stop()
		}
	}()

	runner, err := jobs.New(solvencyService, queries)
	if err != nil {
		slog.Error("failed to create job runner", "error", err)
		os.Exit(1)
	}
	runner.Start()
	defer runner.Shutdown()

	if cfg.ChatEnabled() {
		runBot(ctx, cfg, userService, taskService, queries)
	} else {
		slog.Info("chat channel disabled, no bot token configured")
		<-ctx.Done()
	}

	if err := app.Shutdown(); err != nil {
		slog.Error("http server shutdown", "error", err)
	}
	slog.Info("stopped gracefully")
}

// runBot starts the Telegram long-poll loop and blocks until ctx ends.
func runBot(ctx context.Context, cfg *config.Config, userService *service.UserService, taskService *service.TaskService, queries *repository.Queries) {
	var h *handler.Handler

	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			if h == nil || update.Message == nil {
				return
			}
			if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
				return
			}
			h.HandleText(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	h = handler.New(handler.Deps{
		Bot:         b,
		UserService: userService,
		TaskService: taskService,
		Queries:     queries,
		Pacer:       telegram.NewPacer(),
	})
	h.Register()

	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)
}
