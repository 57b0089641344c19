package service

import "errors"

var (
	ErrInternal        = errors.New("internal server error")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
)

var (
	ErrUserAlreadyExists    = newError(ErrInvalidArgument, "user already exists")
	ErrInvalidCredentials   = newError(ErrUnauthorized, "invalid credentials")
	ErrUserNotFound         = newError(ErrNotFound, "user not found")
	ErrCannotFollowYourself = newError(ErrInvalidArgument, "cannot follow yourself")
	ErrPostNotFound         = newError(ErrNotFound, "post not found")
	ErrTitleRequired        = newError(ErrInvalidArgument, "title is required")
	ErrContentRequired      = newError(ErrInvalidArgument, "content is required")
	ErrUnknownTag           = newError(ErrInvalidArgument, "one or more tags do not exist")
	ErrTagNotFound          = newError(ErrNotFound, "tag not found")
	ErrTagNameRequired      = newError(ErrInvalidArgument, "tag name is required")
	ErrTagAlreadyExists     = newError(ErrInvalidArgument, "tag already exists")
	ErrTagInUse             = newError(ErrConflict, "cannot delete tag that is being used in posts")
	ErrCommentNotFound      = newError(ErrNotFound, "comment not found")
	ErrParentNotFound       = newError(ErrNotFound, "parent comment not found")
	ErrParentOnOtherPost    = newError(ErrInvalidArgument, "parent comment belongs to another post")
	ErrReplyTooDeep         = newError(ErrInvalidArgument, "replies are limited to two levels")
)

// Error carries a user-facing message while matching its kind with errors.Is.
type Error struct {
	kind    error
	message string
}

func newError(kind error, message string) *Error {
	return &Error{kind: kind, message: message}
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) Unwrap() error {
	return e.kind
}
