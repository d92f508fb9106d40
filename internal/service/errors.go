package service

import "errors"

var (
	// ErrInvalidCustomerID is returned when a customer ID is empty.
	ErrInvalidCustomerID = errors.New("invalid customer id")

	// ErrInvalidDriverID is returned when a driver ID is empty.
	ErrInvalidDriverID = errors.New("invalid driver id")

	// ErrInvalidRideID is returned when a ride ID is empty.
	ErrInvalidRideID = errors.New("invalid ride id")

	// ErrInvalidLocationID is returned when a location ID is empty.
	ErrInvalidLocationID = errors.New("invalid location id")

	// ErrInvalidCategoryID is returned when a category ID is empty.
	ErrInvalidCategoryID = errors.New("invalid category id")

	// ErrMissingFields is returned when required request fields are absent.
	ErrMissingFields = errors.New("missing required fields")

	// ErrInvalidRoute is returned when pickup or destination is empty.
	ErrInvalidRoute = errors.New("pickup and destination are required")

	// ErrInvalidDriverStatus is returned for an unknown driver status value.
	ErrInvalidDriverStatus = errors.New("invalid driver status")

	// ErrRatingOutOfRange is returned when a rating is not in [1,5].
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")

	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid payment amount")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the caller may not act on the resource.
	ErrForbidden = errors.New("operation not permitted for caller")

	// ErrAccountBlocked is returned when a blocked account attempts an action.
	ErrAccountBlocked = errors.New("account is blocked")

	// ErrNoDriverAvailable is returned when no driver can be assigned.
	ErrNoDriverAvailable = errors.New("no driver available")

	// ErrLocationUnavailable is returned when tickets cannot be issued for
	// the location or category right now.
	ErrLocationUnavailable = errors.New("location or category unavailable")

	// ErrRideNotPending is returned when accepting a ride not in PENDING state.
	ErrRideNotPending = errors.New("ride not in pending state")

	// ErrRideTerminal is returned for any transition on a completed or
	// cancelled ride.
	ErrRideTerminal = errors.New("ride already completed or cancelled")

	// ErrDriverBusy is returned when the accepting driver is already on a trip.
	ErrDriverBusy = errors.New("driver already on a trip")

	// ErrDriverNotAssigned is returned when a driver acts on a ride assigned
	// to someone else.
	ErrDriverNotAssigned = errors.New("driver not assigned to this ride")

	// ErrAlreadyPaid is returned when a ride already has a payment.
	ErrAlreadyPaid = errors.New("ride already paid")

	// ErrSequencerContention is returned when ticket issuance keeps losing
	// the race for the next number.
	ErrSequencerContention = errors.New("could not allocate ticket number, try again")
)
