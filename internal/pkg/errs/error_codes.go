/*
Package errs provides custom error types and application-level error code constants.

These error codes identify specific business or protocol errors both
internally within the server and in notices sent to clients.
*/
package errs

// 1xxx: Session and Naming Errors
const (
	// ErrNameTaken indicates that the candidate display name is already registered.
	ErrNameTaken = 1001

	// ErrSessionKicked indicates that the connection was closed by an administrator.
	ErrSessionKicked = 1002

	// ErrRateLimited indicates that the session exceeded its message rate budget.
	ErrRateLimited = 1003
)

// 2xxx: Routing Errors
const (
	// ErrMalformedWhisper indicates a whisper line missing the ':' separator.
	ErrMalformedWhisper = 2001

	// ErrRecipientNotFound indicates a whisper target that is not currently registered.
	ErrRecipientNotFound = 2002

	// ErrTargetNotFound indicates an administrative kick/whisper target that does not match any session.
	ErrTargetNotFound = 2003
)

// 3xxx: Persistence Errors
const (
	// ErrJournalIO indicates a failure while appending to or reading the chat journal.
	ErrJournalIO = 3001
)

// 4xxx: HTTP Surface Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 4001

	// ErrRateLimitExceeded indicates that the request rate exceeded the configured limit.
	ErrRateLimitExceeded = 4002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified internal server error.
	ErrUnknown = 5000
)
