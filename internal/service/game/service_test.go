package game

import (
	"errors"
	"strings"
	"testing"

	appErr "chkobba-service/pkg/errors"
	"chkobba-service/pkg/utils/random"
)

func TestCreateRoomJoinsHost(t *testing.T) {
	svc := NewService(Config{RoomCodeLength: 6})

	room, err := svc.CreateRoom("host-1", "alice", RoomOptions{Mode: Mode2v2, TargetScore: 21})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	if len(room.Code()) != 6 {
		t.Fatalf("expected a 6-char code, got %q", room.Code())
	}
	for _, ch := range room.Code() {
		if !strings.ContainsRune(random.Alphabet(), ch) {
			t.Fatalf("code %q contains %q outside the unambiguous alphabet", room.Code(), ch)
		}
	}
	if room.PlayerCount() != 1 || !room.IsHost("host-1") {
		t.Fatalf("host should be the sole member")
	}

	found, err := svc.GetRoom(room.Code())
	if err != nil || found != room {
		t.Fatalf("registry lookup failed: %v", err)
	}
}

func TestGetRoomUnknownCode(t *testing.T) {
	svc := NewService(Config{})

	if _, err := svc.GetRoom("ZZZZZZ"); !errors.Is(err, appErr.ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRemoveRoom(t *testing.T) {
	svc := NewService(Config{})

	room, err := svc.CreateRoom("host-1", "alice", RoomOptions{})
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	svc.RemoveRoom(room.Code())
	if _, err := svc.GetRoom(room.Code()); !errors.Is(err, appErr.ErrRoomNotFound) {
		t.Fatalf("expected the room to vanish, got %v", err)
	}
}

func TestCreateRoomCodesAreUnique(t *testing.T) {
	svc := NewService(Config{RoomCodeLength: 6})

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := svc.CreateRoom("host", "alice", RoomOptions{})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[room.Code()] {
			t.Fatalf("duplicate live room code %q", room.Code())
		}
		seen[room.Code()] = true
	}
}
