package core

// error_messages.go maps errors to stable codes for support reference.
//
// Hosts show users a code plus a localized message and action looked up
// by Key in the i18n catalogs ("messages.<key>", "actions.<key>").
//
// # Row Range Errors (RNG001-RNG099)
//
//	RNG001 - invalid_range_format: a token is not "N" or "N-M" with N, M >= 1
//	RNG002 - backwards_range: a token's first row is after its last row
//
// Both carry the offending token in Value.
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - invalid_table: columns are unnamed, duplicated, or uneven
//	TBL002 - step_not_found: no step has the requested ID
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - file_too_large: request body exceeds RENDER_MAX_UPLOAD_SIZE
//	FILE002 - invalid_csv: the upload is not a readable CSV
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - bad_request: the body could not be decoded
//
// # Auth Errors (AUTH001-AUTH099)
//
//	AUTH001 - missing_api_key: REQUIRE_API_KEY is set and X-API-Key is absent
//	AUTH002 - invalid_api_key: X-API-Key matches none of API_KEYS
//
// # Capacity Errors
//
//	RND001  - render_busy: every render slot stayed busy for RENDER_MAX_WAIT_TIME
//	RATE001 - rate_limited: the client exceeded RATE_LIMIT_REQUESTS_PER_MINUTE
//
// # Default Error (ERR000)
//
//	ERR000 - unknown: check the server logs for the original error

import (
	"errors"

	"github.com/JonMunkholm/droprows/internal/rowrange"
	"github.com/JonMunkholm/droprows/internal/store"
	"github.com/JonMunkholm/droprows/internal/table"
)

var (
	// ErrFileTooLarge is returned by hosts when an upload exceeds the limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrRateLimited is returned by hosts when a client is throttled.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrBadRequest wraps request bodies that could not be decoded.
	ErrBadRequest = errors.New("bad request")

	// ErrMissingAPIKey and ErrInvalidAPIKey are returned by API key auth.
	ErrMissingAPIKey = errors.New("missing API key")
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// UserMessage identifies what went wrong in a form hosts can localize.
type UserMessage struct {
	Code  string // Error code for support reference
	Key   string // Catalog key without the "messages."/"actions." prefix
	Kind  string // rowrange.ErrorKind for parse errors, empty otherwise
	Value string // Offending token for parse errors
}

// IsUserFacing reports whether the message describes a problem with the
// caller's input rather than an internal failure.
func (m UserMessage) IsUserFacing() bool {
	return m.Code != "" && m.Code != unknownMessage.Code
}

// errorRule pairs a matcher with the message it produces.
type errorRule struct {
	target error
	msg    UserMessage
}

// sentinelRules are checked in order with errors.Is.
var sentinelRules = []errorRule{
	{table.ErrInvalidTable, UserMessage{Code: "TBL001", Key: "invalid_table"}},
	{store.ErrStepNotFound, UserMessage{Code: "TBL002", Key: "step_not_found"}},
	{ErrFileTooLarge, UserMessage{Code: "FILE001", Key: "file_too_large"}},
	{table.ErrInvalidCSV, UserMessage{Code: "FILE002", Key: "invalid_csv"}},
	{ErrBadRequest, UserMessage{Code: "REQ001", Key: "bad_request"}},
	{ErrMissingAPIKey, UserMessage{Code: "AUTH001", Key: "missing_api_key"}},
	{ErrInvalidAPIKey, UserMessage{Code: "AUTH002", Key: "invalid_api_key"}},
	{ErrTooManyRenders, UserMessage{Code: "RND001", Key: "render_busy"}},
	{ErrRateLimited, UserMessage{Code: "RATE001", Key: "rate_limited"}},
}

var unknownMessage = UserMessage{Code: "ERR000", Key: "unknown"}

// MapError classifies err. A nil error yields the zero UserMessage;
// anything unrecognized yields ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var pe *rowrange.ParseError
	if errors.As(err, &pe) {
		msg := UserMessage{Kind: string(pe.Kind), Value: pe.Value, Key: string(pe.Kind)}
		switch pe.Kind {
		case rowrange.InvalidRangeFormat:
			msg.Code = "RNG001"
		case rowrange.BackwardsRange:
			msg.Code = "RNG002"
		default:
			return unknownMessage
		}
		return msg
	}

	for _, rule := range sentinelRules {
		if errors.Is(err, rule.target) {
			return rule.msg
		}
	}
	return unknownMessage
}
