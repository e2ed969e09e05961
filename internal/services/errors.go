package services

import "errors"

// ErrForbidden is returned when a requester is neither the resource
// author nor an administrator.
var ErrForbidden = errors.New("not authorized to modify this resource")

// ErrNoUpdates is returned when an update payload changes nothing.
var ErrNoUpdates = errors.New("no update data provided")

// ErrUserInactive is returned when a non-active user requests their
// own post list.
var ErrUserInactive = errors.New("user is not active")
