package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SportEvents/internal/api"
	"SportEvents/internal/cache"
	"SportEvents/internal/config"
	"SportEvents/internal/database"
	"SportEvents/internal/migrations"
	"SportEvents/internal/repository"
	"SportEvents/internal/scheduler"
	"SportEvents/internal/service"

	"github.com/gin-gonic/gin"
	goosedb "github.com/pressly/goose/v3/database"
	"github.com/sirupsen/logrus"
)

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logger := newLogger(cfg.Log)
	logger.Info("配置文件加载成功")

	// 3. 连接 PostgreSQL（库不存在则先创建再连）
	db, err := database.Open(cfg.Database, cfg.Production(), logger)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatalf("获取SQL DB失败: %v", err)
	}
	logger.Info("PostgreSQL连接成功")

	// 4. 执行数据库迁移
	if err := migrations.Up(context.Background(), sqlDB, goosedb.DialectPostgres, logger); err != nil {
		logger.Fatalf("数据库迁移失败: %v", err)
	}

	// 5. 组装服务
	eventRepo := repository.NewEventRepository(db)
	summaryCache := cache.NewMemoryCache(cfg.Cache.CleanupInterval)
	eventsService := service.NewEventsService(eventRepo, summaryCache, logger)
	statusSync := service.NewStatusSyncService(eventRepo, eventsService, logger, nil)

	// 6. 定时任务：过期的 ACTIVE 赛事置为 FINISHED
	sched := scheduler.New(logger)
	if cfg.Scheduler.Enabled {
		err := sched.Register("status_sync", cfg.Scheduler.StatusSyncCron, func(ctx context.Context) error {
			_, err := statusSync.Run(ctx)
			return err
		})
		if err != nil {
			logger.Fatalf("%v", err)
		}
		sched.Start()
	} else {
		logger.Warn("定时状态同步已禁用")
	}

	// 7. 路由
	gin.SetMode(cfg.Server.Mode)
	router, err := api.NewRouter(cfg.Server, api.NewEventHandler(eventsService, logger), logger)
	if err != nil {
		logger.Fatalf("初始化路由失败: %v", err)
	}
	logger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Infof("服务启动成功: http://localhost:%d/api", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("启动服务失败: %v", err)
		}
	}()

	// 8. 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("收到退出信号，正在关闭服务…")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("关闭HTTP服务失败")
	}
	if err := sched.Stop(ctx); err != nil {
		logger.WithError(err).Warn("等待定时任务结束超时")
	}
	if err := sqlDB.Close(); err != nil {
		logger.WithError(err).Warn("关闭数据库连接失败")
	}
	logger.Info("服务已停止")
}
