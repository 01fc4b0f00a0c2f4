package domain

import "errors"

var (
	ErrNameTaken     = errors.New("username is already taken")
	ErrAlreadyJoined = errors.New("session already joined")
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrSelfChannel   = errors.New("cannot open a direct channel with yourself")

	ErrNameEmpty        = errors.New("username empty")
	ErrNameTooLong      = errors.New("username too long")
	ErrRoomEmpty        = errors.New("room empty")
	ErrRoomTooLong      = errors.New("room name too long")
	ErrGroupNameEmpty   = errors.New("group name empty")
	ErrGroupNameTooLong = errors.New("group name too long")
)
