package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/morningcall/internal/alarm"
	"github.com/morningcall/internal/config"
	"github.com/morningcall/internal/db"
	"github.com/morningcall/internal/handler"
	"github.com/morningcall/internal/logger"
	"github.com/morningcall/internal/memo"
	"github.com/morningcall/internal/notify"
	"github.com/morningcall/internal/router"
	"github.com/morningcall/internal/sound"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}

	// 铃声库：确保目录存在并安装默认铃声
	library := sound.NewLibrary(cfg.SoundDir, zlog)
	if err := library.EnsureDir(); err != nil {
		zlog.Fatal("failed to prepare sound library", zap.Error(err))
	}
	player := sound.NewManager(library, zlog)

	// 通知注册表与响铃路由
	registry := notify.NewLocal(cfg.NotifyAllowed, zlog)
	responder := alarm.NewResponder(registry, player,
		time.Duration(cfg.SnoozeMinutes)*time.Minute,
		time.Duration(cfg.RingSeconds)*time.Second,
		zlog)
	registry.SetFiredHandler(responder.HandleFired)

	// 闹钟服务
	store := alarm.NewStore(db.DB, zlog)
	scheduler := alarm.NewScheduler(registry, zlog)
	alarms := alarm.NewService(store, scheduler, registry, library, zlog)

	// 启动时把持久化状态与通知队列对账
	if err := alarms.Restore(); err != nil {
		zlog.Error("restore alarms failed", zap.Error(err))
	}

	// 语音备忘录
	memoStorage := memo.NewDiskStorage(cfg.MemoDir, cfg.MemoURLPath)
	memos := memo.NewService(db.DB, memoStorage, library, zlog)

	api := handler.NewAPI(alarms, responder, library, player, memos, zlog)
	r := router.SetupRouter(api, cfg.MemoURLPath, cfg.MemoDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 通知运行循环
	go registry.Run(ctx)

	server := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		zlog.Info("server listening", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
		os.Exit(1)
	}
	zlog.Info("server stopped")
}
