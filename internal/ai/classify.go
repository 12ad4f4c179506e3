// internal/ai/classify.go
package ai

import "strings"

// ErrorKind is the user-facing category of a generation failure. It affects
// only the message shown to the user, never control flow.
type ErrorKind string

const (
	KindInvalidCredential     ErrorKind = "invalid_credential"
	KindCompromisedCredential ErrorKind = "compromised_credential"
	KindOverloaded            ErrorKind = "overloaded"
	KindGeneric               ErrorKind = "generic"
)

type classification struct {
	matches func(string) bool
	kind    ErrorKind
	message string
}

// Evaluated in order; first match wins, falling back to the generic entry.
var classifications = []classification{
	{
		matches: containsAny("api key not valid", "invalid api key", "incorrect api key"),
		kind:    KindInvalidCredential,
		message: "The generation API key is not valid. Please check the configuration.",
	},
	{
		matches: containsAny("leaked", "compromised"),
		kind:    KindCompromisedCredential,
		message: "The generation API key has been compromised and cannot be used. Please rotate it.",
	},
	{
		matches: containsAny("503", "model is overloaded", "rate limit", "quota"),
		kind:    KindOverloaded,
		message: "The AI model is currently busy or the rate limit was exceeded. Please wait a moment and try again.",
	},
}

func containsAny(needles ...string) func(string) bool {
	return func(s string) bool {
		for _, needle := range needles {
			if strings.Contains(s, needle) {
				return true
			}
		}
		return false
	}
}

// Classify maps a generation error onto a user-facing kind and message.
// Unrecognized errors fall back to a generic message.
func Classify(err error) (ErrorKind, string) {
	if err == nil {
		return KindGeneric, "An unexpected error occurred."
	}

	lower := strings.ToLower(err.Error())
	for _, c := range classifications {
		if c.matches(lower) {
			return c.kind, c.message
		}
	}
	return KindGeneric, "The document could not be generated. Please try again later."
}
