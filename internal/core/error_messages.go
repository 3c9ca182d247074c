// Package core provides the census normalization, merge and query layer.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Census errors are mapped by kind first; anything else falls back to
// case-insensitive pattern matching on the error text.
//
// # Census Errors (CEN001-CEN099)
//
//	CEN001 - File problem: The census file could not be opened or read
//	         Action: Check that the path exists and points to a .csv file
//	         Kind: KindFileAccess
//
//	CEN002 - Wrong delimiter or header: The file does not match the expected columns
//	         Action: Use comma-separated values with the documented header row
//	         Kind: KindDecode
//
//	CEN003 - No census data: Nothing has been loaded yet
//	         Action: Load a census file before sorting or exporting
//	         Kind: KindEmptyData
//
//	CEN004 - Unsupported country: Only INDIA and US datasets are supported
//	         Action: Choose india or us
//	         Kind: KindUnsupportedCountry
//
//	CEN005 - Unknown view: The view key is not in the catalogue
//	         Patterns: "unknown view"
//
//	CEN006 - Invalid ordering: The sort field, direction or metric is not recognised
//	         Patterns: "unknown sort field", "unknown sort direction",
//	         "unknown compare metric", "unknown compare mode"
//
//	CEN007 - Too many state-code files: A load accepts one state-code file
//	         Patterns: "too many state-code files"
//
// # Request Errors (UPL003-UPL005)
//
//	UPL003 - Server busy
//	         Patterns: "too many concurrent loads"
//
//	UPL004 - Request cancelled
//	         Patterns: "context canceled"
//
//	UPL005 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Upload Form Errors (FILE001-FILE004)
//
//	FILE001 - File too large
//	          Patterns: "file too large", "request body too large"
//
//	FILE004 - No file provided
//	          Patterns: "no file provided"
//
// # Default Error (ERR000)
//
// Fallback when no kind or pattern matches. Check application logs for the
// original technical error when users report ERR000.
package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var kindMessages = map[Kind]UserMessage{
	KindFileAccess: {
		Message: "The census file could not be opened or read",
		Action:  "Check that the path exists and points to a .csv file",
		Code:    "CEN001",
	},
	KindDecode: {
		Message: "The file does not match the expected delimiter or header",
		Action:  "Use comma-separated values with the documented header row",
		Code:    "CEN002",
	},
	KindEmptyData: {
		Message: "No census data has been loaded",
		Action:  "Load a census file before sorting or exporting",
		Code:    "CEN003",
	},
	KindUnsupportedCountry: {
		Message: "Unsupported country or field for this country",
		Action:  "Choose india or us, and a field that country provides",
		Code:    "CEN004",
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns are matched in order; the first match wins.
var errorPatterns = []errorPattern{
	{
		pattern: "unknown view",
		msg: UserMessage{
			Message: "The requested view does not exist",
			Action:  "List the available views and use one of their keys",
			Code:    "CEN005",
		},
	},
	{
		pattern: "unknown sort",
		msg: UserMessage{
			Message: "The sort field or direction is not recognised",
			Action:  "Use one of the listed fields with asc or desc",
			Code:    "CEN006",
		},
	},
	{
		pattern: "unknown compare",
		msg: UserMessage{
			Message: "The comparison metric or mode is not recognised",
			Action:  "Use population, density or area, and same-metric or legacy",
			Code:    "CEN006",
		},
	},
	{
		pattern: "too many state-code files",
		msg: UserMessage{
			Message: "Only one state-code file can be merged into a load",
			Action:  "Pass a single state-code file",
			Code:    "CEN007",
		},
	},
	{
		pattern: "too many concurrent loads",
		msg: UserMessage{
			Message: "The server is busy loading other files",
			Action:  "Wait a moment and try again",
			Code:    "UPL003",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "UPL005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Please select a CSV file to upload",
			Code:    "FILE004",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := analyser.SortedJSON(core.OrderBy(core.ByPopulation))
//	msg := core.MapError(err)
//	// msg.Code == "CEN003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := kindMessages[KindOf(err)]; ok {
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something other than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError keeps the technical error for logging next to its display message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
