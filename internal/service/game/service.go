package game

import (
	"sync"

	appErr "chkobba-service/pkg/errors"
	"chkobba-service/pkg/logger"
	"chkobba-service/pkg/utils/random"

	"go.uber.org/zap"
)

// Config carries the tunables the registry needs.
type Config struct {
	RoomCodeLength int
}

// Service is the room registry. Constructed once at process start and
// injected into the transport layer; rooms live only in memory and vanish
// when their last player departs.
type Service struct {
	cfg   Config
	rooms sync.Map // code -> *Room
}

func NewService(cfg Config) *Service {
	if cfg.RoomCodeLength <= 0 {
		cfg.RoomCodeLength = 6
	}
	return &Service{cfg: cfg}
}

// CreateRoom allocates a collision-free room code, creates the room and
// joins the host as its first member.
func (s *Service) CreateRoom(hostID, username string, opts RoomOptions) (*Room, error) {
	for {
		code := random.Code(s.cfg.RoomCodeLength)
		room := NewRoom(code, opts)
		if _, loaded := s.rooms.LoadOrStore(code, room); loaded {
			continue
		}
		if err := room.AddPlayer(hostID, username); err != nil {
			s.rooms.Delete(code)
			return nil, err
		}
		logger.Log.Info("room created",
			zap.String("roomCode", code),
			zap.String("mode", string(opts.Mode)),
		)
		return room, nil
	}
}

func (s *Service) GetRoom(code string) (*Room, error) {
	if v, ok := s.rooms.Load(code); ok {
		return v.(*Room), nil
	}
	return nil, appErr.ErrRoomNotFound
}

func (s *Service) RemoveRoom(code string) {
	if _, ok := s.rooms.LoadAndDelete(code); ok {
		logger.Log.Info("room removed", zap.String("roomCode", code))
	}
}
