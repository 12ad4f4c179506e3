// internal/ai/classify_test.go
package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
	}{
		{"invalid key", errors.New("400: API key not valid. Please pass a valid API key"), KindInvalidCredential},
		{"leaked key", errors.New("403: this API key was leaked and is disabled"), KindCompromisedCredential},
		{"compromised key", errors.New("credential compromised, access revoked"), KindCompromisedCredential},
		{"service unavailable", errors.New("503 Service Unavailable"), KindOverloaded},
		{"overloaded", errors.New("the model is overloaded, retry later"), KindOverloaded},
		{"rate limited", errors.New("429: rate limit exceeded for requests"), KindOverloaded},
		{"quota", errors.New("quota exceeded for this project"), KindOverloaded},
		{"unknown", errors.New("connection reset by peer"), KindGeneric},
		{"nil", nil, KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, message := Classify(tt.err)
			assert.Equal(t, tt.kind, kind)
			assert.NotEmpty(t, message)
		})
	}
}

func TestClassifyInvalidKeyBeforeOverloaded(t *testing.T) {
	// An error mentioning both the key and a quota should read as a
	// credential problem, since that is what the operator must fix.
	kind, _ := Classify(errors.New("API key not valid; quota check skipped"))
	assert.Equal(t, KindInvalidCredential, kind)
}
