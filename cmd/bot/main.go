package main

import (
	"os"
	"os/signal"
	"syscall"

	"work-pattern-bot/internal/analytics"
	"work-pattern-bot/internal/config"
	"work-pattern-bot/internal/handler"
	"work-pattern-bot/internal/repository"
	"work-pattern-bot/internal/service"
	"work-pattern-bot/pkg/telegram"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const settingsCacheSize = 10_000

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.SetLevel(cfg.LogLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logrus.WithFields(logrus.Fields{
		"database":    cfg.DatabaseURL,
		"window_days": cfg.AnalysisWindowDays,
		"timezone":    cfg.Location.String(),
		"workers":     cfg.TeamAnalysisWorkers,
	}).Info("Config initialized")

	// Инициализируем SQLite базу данных
	gormLogLevel := logger.Warn
	if cfg.LogLevel >= logrus.DebugLevel {
		gormLogLevel = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
		Logger:                                   logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to get database instance")
	}

	// Включаем поддержку внешних ключей (требуется для SQLite)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.WithError(err).Warn("Failed to enable foreign keys")
	}

	userRepo, err := repository.NewGormUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create user repository")
	}

	workSessionRepo, err := repository.NewGormWorkSessionRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create work session repository")
	}

	settingsRepo, err := repository.NewGormSettingsRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create settings repository")
	}
	cachedSettings := repository.NewCachedSettingsRepository(settingsRepo, cfg.SettingsCacheTTL, settingsCacheSize)

	userService := service.NewUserService(userRepo)
	workSessionService := service.NewWorkSessionService(workSessionRepo)
	settingsService := service.NewSettingsService(cachedSettings, cfg.AnalysisWindowDays)
	patternService := service.NewPatternService(
		workSessionService,
		settingsService,
		userRepo,
		analytics.NewAnalyzer(analytics.WithLocation(cfg.Location)),
		cfg.TeamAnalysisWorkers,
	)

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.WithError(err).Warn("Failed to initialize admin")
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramDebug)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create Telegram client")
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		userService,
		workSessionService,
		settingsService,
		patternService,
		cfg,
	)

	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(updates)
		close(done)
	}()

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	// Дожидаемся обработки уже полученных обновлений
	client.Stop()
	<-done

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database")
	}

	logrus.Info("Bot stopped gracefully")
}
