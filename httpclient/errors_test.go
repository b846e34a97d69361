package httpclient

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeRateLimit, "rate_limit"},
		{ErrCodeValidation, "validation"},
		{ErrCodeServer, "server"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.String())
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "HTTP 404"}
	assert.Equal(t, "httpclient: not_found (HTTP 404): HTTP 404", e.Error())

	e2 := &Error{Code: ErrCodeConnection, Message: "connection refused"}
	assert.Equal(t, "httpclient: connection: connection refused", e2.Error())
}

func TestError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("dial tcp: refused")
	outer := NewConnectionError(inner)
	assert.ErrorIs(t, outer, inner)
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		code    int
		wantNil bool
		errCode ErrorCode
		retry   bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{302, false, ErrCodeServer, false},
		{400, false, ErrCodeValidation, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		e := ClassifyStatusCode(tt.code, nil)
		if tt.wantNil {
			assert.Nil(t, e, "status %d", tt.code)
			continue
		}
		require.NotNil(t, e, "status %d", tt.code)
		assert.Equal(t, tt.errCode, e.Code, "status %d", tt.code)
		assert.Equal(t, tt.retry, e.Retryable, "status %d", tt.code)
		assert.Equal(t, tt.code, e.StatusCode)
	}
}

func TestClassifyStatusCode_Message(t *testing.T) {
	e := ClassifyStatusCode(500, []byte("  upstream exploded \n"))
	assert.Equal(t, "HTTP 500: upstream exploded", e.Message)

	long := strings.Repeat("x", 500)
	e = ClassifyStatusCode(500, []byte(long))
	assert.True(t, strings.HasSuffix(e.Message, "..."))
	assert.Less(t, len(e.Message), 200)

	e = ClassifyStatusCode(502, []byte{0xff, 0xfe})
	assert.Equal(t, "HTTP 502", e.Message)
}

func TestIsHelpers(t *testing.T) {
	timeout := NewTimeoutError(fmt.Errorf("timed out"))
	conn := NewConnectionError(fmt.Errorf("connection refused"))
	auth := ClassifyStatusCode(401, nil)
	notFound := ClassifyStatusCode(404, nil)
	rateLimit := ClassifyStatusCode(429, nil)
	server := ClassifyStatusCode(500, nil)
	validation := NewValidationError("bad")

	assert.True(t, IsTimeout(timeout))
	assert.True(t, IsConnection(conn))
	assert.True(t, IsAuth(auth))
	assert.True(t, IsNotFound(notFound))
	assert.True(t, IsRateLimit(rateLimit))
	assert.True(t, IsServerError(server))
	assert.True(t, IsValidation(validation))

	assert.True(t, IsRetryable(timeout))
	assert.True(t, IsRetryable(conn))
	assert.True(t, IsRetryable(server))
	assert.False(t, IsRetryable(auth))
	assert.False(t, IsRetryable(validation))

	wrapped := fmt.Errorf("fetch: %w", auth)
	assert.True(t, IsAuth(wrapped))
	assert.False(t, IsAuth(fmt.Errorf("plain")))
}
