package main

import (
	"flag"
	"fmt"

	"chkobba-service/internal/api"
	"chkobba-service/internal/config"
	"chkobba-service/internal/middleware"
	"chkobba-service/internal/service"
	"chkobba-service/internal/ws"
	"chkobba-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "path to config file")
	flag.Parse()

	config.LoadConfig(configPath)

	logger.InitLogger(config.GlobalConfig.Server.Mode)
	defer logger.Log.Sync()

	logger.Log.Info("Starting server...", zap.String("mode", config.GlobalConfig.Server.Mode))

	services := service.NewContainer(config.GlobalConfig)
	wsHandler := ws.NewHandler(services.Game, config.GlobalConfig.Game.UsernameMaxLen)

	if config.GlobalConfig.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	api.RegisterRoutes(r, services, wsHandler)

	addr := fmt.Sprintf(":%s", config.GlobalConfig.Server.Port)
	logger.Log.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}
