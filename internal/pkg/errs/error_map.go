/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError template, used
to standardize client notices and HTTP responses.
*/
package errs

import "net/http"

// errorMap stores the CustomError template for every application error code.
// Messages containing printf placeholders are filled in by NewError details.
var errorMap = map[int]CustomError{
	// 1xxx: Session and Naming Errors
	ErrNameTaken:     {Code: ErrNameTaken, Message: "Enter another name -- already exists/ not allowed"},
	ErrSessionKicked: {Code: ErrSessionKicked, Message: "Connection closed... reason: KICKED"},
	ErrRateLimited:   {Code: ErrRateLimited, Message: "You are sending messages too fast. Slow down."},

	// 2xxx: Routing Errors
	ErrMalformedWhisper:  {Code: ErrMalformedWhisper, Message: "Invalid whisper format. Use: @name1,name2:message"},
	ErrRecipientNotFound: {Code: ErrRecipientNotFound, Message: "Recipient not found: %s"},
	ErrTargetNotFound:    {Code: ErrTargetNotFound, Message: "Client '%s' not found."},

	// 3xxx: Persistence Errors
	ErrJournalIO: {Code: ErrJournalIO, Message: "Chat history is temporarily unavailable."},

	// 4xxx: HTTP Surface Errors
	ErrInvalidParams:     {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrRateLimitExceeded: {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
