package errors

import "errors"

// Validation failures surfaced to the acting session. All are recoverable:
// the client corrects the precondition and resends. Checked with errors.Is.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrNameTaken        = errors.New("username already taken in this room")
	ErrUsernameRequired = errors.New("username is required")
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNotHost          = errors.New("only the host can perform this action")
	ErrNotYourTurn      = errors.New("it isn't your turn")
	ErrCardNotInHand    = errors.New("card not in hand")
	ErrGameNotRunning   = errors.New("game is not running")
	ErrInvalidMode      = errors.New("unsupported mode")
	ErrRosterTooLarge   = errors.New("too many players for this mode")
	ErrRosterIncomplete = errors.New("need the full roster to start")
	ErrSettingsLocked   = errors.New("settings can only be changed from the lobby")
	ErrAlreadyHost      = errors.New("you are already the host")
	ErrSelfKick         = errors.New("host cannot kick themselves")
	ErrPlayerNotFound   = errors.New("player not found")
)
