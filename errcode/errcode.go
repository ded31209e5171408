package errcode

import "fmt"

// Err is a business error carrying a stable code. The code keeps its meaning
// across releases; the message is free to change.
type Err struct {
	code int32
	msg  string
}

func NewErr(code int32, msg string) *Err {
	return &Err{code: code, msg: msg}
}

func (e *Err) Error() string {
	return fmt.Sprintf("%d:%s", e.code, e.msg)
}

func (e *Err) Code() int32 {
	return e.code
}

func (e *Err) Msg() string {
	return e.msg
}

const CustomCode = 10000

// NewCustomErr wraps a plain message into a business error without a
// dedicated code.
func NewCustomErr(msg string) *Err {
	return NewErr(CustomCode, msg)
}

var (
	NoErr         = NewErr(200, "success")
	ErrUnexpected = NewErr(500, "internal server error")

	ErrInvalidParams = NewErr(10001, "invalid params")
	ErrUnauthorized  = NewErr(10002, "unauthorized")
	ErrTokenExpired  = NewErr(10003, "token expired")
	ErrNotFound      = NewErr(10004, "resource not found")

	ErrUserNotFound      = NewErr(20001, "user not found")
	ErrUserExists        = NewErr(20002, "user already exists")
	ErrInsufficientToken = NewErr(20003, "insufficient tokens")

	ErrTaskNotFound    = NewErr(21001, "task not found")
	ErrTaskNotAssigned = NewErr(21002, "task not assigned to user")
	ErrTaskTerminal    = NewErr(21003, "task already completed or failed")
	ErrInvalidProgress = NewErr(21004, "progress exceeds task max progress")
	ErrTaskStarted     = NewErr(21005, "task already started")

	ErrBadgeNotFound = NewErr(22001, "badge not found")

	ErrClubNotFound     = NewErr(23001, "club not found")
	ErrAlreadyFollowing = NewErr(23002, "user already follows a club")
	ErrNotFollowing     = NewErr(23003, "user does not follow a club")

	ErrFanGroupNotFound = NewErr(24001, "fan group not found")
	ErrAlreadyMember    = NewErr(24002, "user already belongs to a fan group")
	ErrNotMember        = NewErr(24003, "user does not belong to a fan group")

	ErrEventNotFound     = NewErr(25001, "event not found")
	ErrEventFull         = NewErr(25002, "event is full")
	ErrAlreadyRegistered = NewErr(25003, "user already registered for event")
	ErrNotRegistered     = NewErr(25004, "user not registered for event")

	ErrGameNotFound = NewErr(26001, "game not found")
)
