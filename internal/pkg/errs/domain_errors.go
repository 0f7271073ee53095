package errs

import (
	"errors"

	cr "github.com/cockroachdb/errors"
)

// Error taxonomy. Every business-rule violation is marked with exactly one
// of these categories so handlers can map it to a status without knowing
// the specific rule that fired.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("subsystem unavailable")
)

// Specific sentinels, each carrying its category mark.
var (
	ErrRentalNotFound        = Category(cr.New("rental not found"), ErrNotFound)
	ErrArticleNotFound       = Category(cr.New("article not found"), ErrNotFound)
	ErrUserNotFound          = Category(cr.New("user not found"), ErrNotFound)
	ErrIncidentNotFound      = Category(cr.New("incident not found"), ErrNotFound)
	ErrNotificationNotFound  = Category(cr.New("notification not found"), ErrNotFound)
	ErrDeliveryPointNotFound = Category(cr.New("delivery point not found"), ErrNotFound)

	ErrNotParticipant = Category(cr.New("user is not a participant of this rental"), ErrForbidden)
	ErrOwnArticle     = Category(cr.New("owners cannot rent their own article"), ErrForbidden)

	ErrBookingOverlap  = Category(cr.New("article is already booked for the requested interval"), ErrConflict)
	ErrArticleBlackout = Category(cr.New("article is blocked for the requested interval"), ErrConflict)
	ErrInvalidState    = Category(cr.New("rental state does not allow this transition"), ErrConflict)
	ErrPaymentExpired  = Category(cr.New("reservation expired before payment"), ErrConflict)

	ErrInvalidInterval    = Category(cr.New("invalid rental interval"), ErrValidation)
	ErrArticleUnavailable = Category(cr.New("article is not published for rental"), ErrValidation)
	ErrBadOTP             = Category(cr.New("one-time code is invalid"), ErrValidation)
	ErrWindowNotProposed  = Category(cr.New("window is not among the proposed ones"), ErrValidation)
	ErrRetainedOutOfRange = Category(cr.New("retained amount must be above zero and below the deposit"), ErrValidation)
	ErrNoteRequired       = Category(cr.New("a note is required"), ErrValidation)
	ErrChatDisabled       = Category(cr.New("chat is not enabled for this rental"), ErrValidation)
	ErrMessageRejected    = Category(cr.New("message violates the chat content policy"), ErrValidation)

	ErrChatCooldown = Category(cr.New("sending too fast, wait a moment"), ErrRateLimited)

	ErrDatabaseOperationFailed = cr.New("database operation failed")
)

// Category attaches a taxonomy mark to err; errors.Is(err, category)
// holds for the result.
func Category(err error, category error) error {
	return cr.Mark(err, category)
}

// CodedError carries a machine-readable code (and optional detail) for
// clients that need more than a status, e.g. ADMIN_FORBIDDEN or
// PROFILE_INCOMPLETE.
type CodedError struct {
	Code   string
	Msg    string
	Detail any
	mark   error
}

func NewCoded(category error, code, msg string, detail any) *CodedError {
	return &CodedError{Code: code, Msg: msg, Detail: detail, mark: category}
}

func (e *CodedError) Error() string { return e.Msg }

func (e *CodedError) Is(target error) bool { return errors.Is(e.mark, target) }
