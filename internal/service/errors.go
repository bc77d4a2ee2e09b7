package service

import "errors"

var (
	ErrBoardNotFound    = errors.New("board not found")
	ErrColumnNotFound   = errors.New("column not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrBoardNameTaken   = errors.New("board name already taken")
	ErrDocumentNotFound = errors.New("document not found")

	// ErrColumnBoardMismatch guards the invariant that a task's column always
	// belongs to the task's board.
	ErrColumnBoardMismatch = errors.New("column does not belong to board")

	// ErrProvider wraps any completion provider failure, transport errors and
	// malformed payloads alike.
	ErrProvider = errors.New("completion provider failed")
)
