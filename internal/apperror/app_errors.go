package apperror

import "errors"

var (
	ErrOutOfRange       = errors.New("step is out of history range")
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrInvalidMark      = errors.New("invalid mark")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrUnknownIntent    = errors.New("unknown intent")
	ErrSessionNotFound  = errors.New("game session not found")
	ErrEmptySessionID   = errors.New("session id is empty")
)
