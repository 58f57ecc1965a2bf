package store

import (
	"errors"
	"strings"
)

// Failure kinds returned by engine operations. Callers match with errors.Is;
// anything not wrapping one of these is a storage failure, fatal to the
// current operation only.
var (
	// ErrNotFound: a referenced user/category/product/order/list/item id
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument: non-positive quantity or amount, empty required
	// name, price not greater than zero.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict: duplicate username/email/category name, category delete
	// while products reference it, or a state conflict such as mutating a
	// non-pending order or an inactive list.
	ErrConflict = errors.New("conflict")

	// ErrEmptyList: conversion attempted on a list with no items or on a
	// list that was already converted.
	ErrEmptyList = errors.New("shopping list has no items")

	// ErrAuthFailed: credential mismatch. Unknown username and wrong
	// password are indistinguishable to the caller.
	ErrAuthFailed = errors.New("invalid username or password")
)

// isConstraintErr reports whether err is a SQLite constraint violation.
// The modernc driver surfaces these only as text through database/sql.
func isConstraintErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
