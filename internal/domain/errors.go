package domain

import "errors"

var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrEditConflict            = errors.New("edit conflict")
	ErrSeatsUnavailable        = errors.New("seat(s) are no longer available")
	ErrSeatsNotFound           = errors.New("some of the requested seats were not found for the show")
	ErrHoldExpired             = errors.New("your seat hold has expired, please select your seats again")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrCancellationWindow      = errors.New("booking can no longer be cancelled this close to the show")
	ErrPaymentDeclined         = errors.New("payment was declined")
	ErrReferenceCollision      = errors.New("booking reference already exists")
	ErrUserAlreadyExists       = errors.New("user already exists")
)
