// NoteDrop 笔记服务后端
// 提供JWT认证的笔记、标签与提及管理API
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notedrop/notedrop/config"
	"github.com/notedrop/notedrop/internal/auth"
	"github.com/notedrop/notedrop/internal/database"
	"github.com/notedrop/notedrop/internal/handler"
	"github.com/notedrop/notedrop/internal/logger"
	"github.com/notedrop/notedrop/internal/middleware"
	"github.com/notedrop/notedrop/internal/router"
	"github.com/notedrop/notedrop/internal/service/note"
	"github.com/notedrop/notedrop/internal/service/tag"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置加载失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:    cfg.Log.Level,
		Format:   cfg.Log.Format,
		Output:   cfg.Log.Output,
		FilePath: cfg.Log.FilePath,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Errorf("数据库初始化失败: %v", err)
		os.Exit(1)
	}
	logger.Info("数据库初始化完成")

	tokens := auth.NewTokenService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenTTL)*time.Hour,
		time.Duration(cfg.Auth.RefreshTokenTTL)*time.Hour,
	)
	extractor := auth.NewTokenExtractor(cfg.Auth.CookieName)
	authMW := middleware.NewAuthMiddleware(extractor, tokens)

	registry := tag.NewRegistry(db)
	noteService := note.NewNoteService(db, registry)

	engine := router.Setup(authMW, router.Handlers{
		Note: handler.NewNoteHandler(noteService),
		Tag:  handler.NewTagHandler(registry),
		Auth: handler.NewAuthHandler(tokens, cfg.Auth.DevLogin),
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Infof("服务启动，监听端口 %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("服务启动失败: %v", err)
			os.Exit(1)
		}
	}()

	// 等待退出信号并优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("收到退出信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("服务关闭失败: %v", err)
		os.Exit(1)
	}
	logger.Info("服务已关闭")
}
