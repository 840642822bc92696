package service

import (
	"chkobba-service/internal/config"
	"chkobba-service/internal/service/game"
)

type Container struct {
	Game *game.Service
}

func NewContainer(cfg *config.Config) *Container {
	return &Container{
		Game: game.NewService(game.Config{
			RoomCodeLength: cfg.Game.RoomCodeLength,
		}),
	}
}
