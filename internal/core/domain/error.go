package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound    = errors.New("data not found")
	ErrNoUpdatedData   = errors.New("no data to update")
	ErrConflictingData = errors.New("data conflicts with existing data in unique column")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Authority errors.
	ErrTokenCreation              = errors.New("error creating token")
	ErrExpiredToken               = errors.New("access token has expired")
	ErrInvalidToken               = errors.New("access token is invalid")
	ErrInvalidCredentials         = errors.New("invalid username or password")
	ErrEmptyAuthorizationHeader   = errors.New("authorization header is not provided")
	ErrInvalidAuthorizationHeader = errors.New("authorization header format is invalid")
	ErrInvalidAuthorizationType   = errors.New("authorization type is not supported")
	ErrUnauthorized               = errors.New("user is unauthorized to access the resource")
	ErrForbidden                  = errors.New("user is forbidden to access the resource")

	// * Business errors.
	ErrOrderDelivered        = errors.New("order is already delivered")
	ErrStatusSkip            = errors.New("order status may only advance one step forward")
	ErrPaymentPolicy         = errors.New("payment status does not satisfy the delivery method policy")
	ErrProofRequired         = errors.New("a proof reference must be attached")
	ErrWeightRequired        = errors.New("a weight value or an explicit no-weight mark is required")
	ErrCarrierNotAllowed     = errors.New("carrier is not allowed for the delivery method")
	ErrStorePickupAssign     = errors.New("store-pickup orders are not assigned to logistics")
	ErrCollectedAmount       = errors.New("cash order requires a positive collected amount")
	ErrInvoiceNotOutstanding = errors.New("invoice has no outstanding cash for this courier")
	ErrEmptyReceipt          = errors.New("money receipt must cover at least one invoice")
)
