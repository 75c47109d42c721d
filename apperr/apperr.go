// Package apperr defines the business error taxonomy and its mapping onto
// HTTP status codes. Handlers compare with errors.Is and surface the
// message through the response envelope.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrCrossShopCart     = errors.New("You can add items only from one shop!")
	ErrOutOfStock        = errors.New("Item not in stock!")
	ErrInsufficientStock = errors.New("Not sufficient item!")
	ErrDuplicateRequest  = errors.New("This item has already been requested!")
	ErrOrderNotFound     = errors.New("Order not found!")
	ErrUserNotFound      = errors.New("User not found!")
	ErrNotFound          = errors.New("Resource not found!")
	ErrUnauthorized      = errors.New("Please Authenticate")
	ErrEmptyCart         = errors.New("Cart is empty!")
	ErrItemGone          = errors.New("Item no longer sold by this shop!")
)

// InsufficientStock names the offending item, matching the message the
// original clients expect. errors.Is still matches ErrInsufficientStock.
func InsufficientStock(itemName string) error {
	return fmt.Errorf("%w %s not in stock", ErrInsufficientStock, itemName)
}

// Status maps a business error to the HTTP status it should surface with.
// Unknown errors are treated as internal.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrNotFound):
		return http.StatusBadRequest
	case errors.Is(err, ErrCrossShopCart),
		errors.Is(err, ErrOutOfStock),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrDuplicateRequest),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrItemGone):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsBusiness reports whether err belongs to the 4xx taxonomy, as opposed
// to an unexpected failure that should propagate as a 5xx.
func IsBusiness(err error) bool {
	return Status(err) != http.StatusInternalServerError
}
