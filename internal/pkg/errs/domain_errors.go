package errs

// Sentinel errors shared between the command and query sides. Sentinels
// owned by a single usecase package stay in that package.
var (
	ErrBookingNotFound = New("booking not found")
	ErrHotelMismatch   = New("booking does not belong to this hotel")

	ErrDomainValidation = New("domain validation error")

	ErrRemoteOperationFailed = New("remote service operation failed")
)
