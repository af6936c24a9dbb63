package main

import (
	"FootballManager/internal/game/app"
	"FootballManager/internal/game/infra/persistence/memory"
	"FootballManager/internal/game/infra/persistence/mongodb"
	gamemysql "FootballManager/internal/game/infra/persistence/mysql"
	"FootballManager/internal/game/interfaces"
	"FootballManager/internal/shared/gameconfig/coach"
	"FootballManager/internal/shared/gameconfig/player"
	"FootballManager/internal/shared/infrastructure/db"
	"FootballManager/internal/shared/infrastructure/mongo"
	"FootballManager/internal/shared/logs"
	"FootballManager/internal/shared/serverconfig"
	transporthttp "FootballManager/internal/shared/transport/http"
	"FootballManager/modules/kit/randx"
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	// 加载游戏静态数据
	player.Load()
	coach.Load()

	src := newRandSource(serverconfig.Conf.Game.Seed)
	repo, cleanup := newSaveRepo(serverconfig.Conf.Game.Storage)
	defer cleanup()

	gameModule := interfaces.New(repo, src, logs.Logger())

	host := serverconfig.Conf.HTTPServer.Host
	if host == "" {
		host = "0.0.0.0"
	}
	addr := fmt.Sprintf("%s:%d", host, serverconfig.Conf.HTTPServer.Port)

	httpServer := transporthttp.NewHttpServer(addr, nil, logs.Logger())
	gameModule.Register(httpServer.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("game server started", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

func newRandSource(seed int64) randx.Source {
	if seed != 0 {
		logs.Info("using fixed rand seed", zap.Int64("seed", seed))
		return randx.NewSeeded(seed)
	}
	return randx.New()
}

// newSaveRepo 按配置选择存档仓储实现，返回仓储与资源清理函数。
func newSaveRepo(storage string) (app.SaveRepo, func()) {
	switch storage {
	case "mongodb":
		client, err := mongo.Open(serverconfig.Conf.MongoDB, logs.L())
		if err != nil {
			logs.Fatal("open mongodb failed", zap.Error(err))
		}
		repo := mongodb.NewSaveRepo(client.Database(serverconfig.Conf.MongoDB.Database))
		return repo, func() { _ = client.Disconnect(context.Background()) }
	case "mysql":
		gormDB, err := db.Open(serverconfig.Conf.MySQL)
		if err != nil {
			logs.Fatal("open db failed", zap.Error(err))
		}
		return gamemysql.NewSaveRepo(gormDB), func() {}
	default:
		logs.Info("using in-memory save repo", zap.String("storage", storage))
		return memory.NewSaveRepo(), func() {}
	}
}
