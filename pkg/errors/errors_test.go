package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	base := New("SOME_CODE", http.StatusBadRequest, "something broke")
	assert.Equal(t, "something broke", base.Error())

	wrapped := Wrap(errors.New("inner"), "SOME_CODE", http.StatusBadRequest, "something broke")
	assert.Equal(t, "something broke: inner", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "inner")
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := Clone(ErrTenantNotFound, "")
	assert.Same(t, typed, FromError(typed))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
	}{
		{http.StatusUnauthorized, ErrUnauthorized.Code},
		{http.StatusForbidden, ErrForbidden.Code},
		{http.StatusNotFound, ErrNotFound.Code},
		{http.StatusBadRequest, ErrValidation.Code},
		{http.StatusBadGateway, ErrInternal.Code},
	}
	for _, tc := range tests {
		err := FromStatus(tc.status, "")
		assert.Equal(t, tc.wantCode, err.Code)
		assert.Equal(t, tc.status, err.Status)
	}

	custom := FromStatus(http.StatusNotFound, "school not found")
	assert.Equal(t, "school not found", custom.Message)
}

func TestCloneDoesNotMutateBase(t *testing.T) {
	clone := Clone(ErrUnauthorized, "session expired")
	assert.Equal(t, "session expired", clone.Message)
	assert.Equal(t, "unauthorized", ErrUnauthorized.Message)
	assert.Equal(t, ErrUnauthorized.Code, clone.Code)

	assert.Nil(t, Clone(nil, "whatever"))

	same := Clone(ErrUnauthorized, "")
	assert.Equal(t, ErrUnauthorized.Message, same.Message)
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := Wrap(Clone(ErrTenantNotFound, ""), ErrInternal.Code, ErrInternal.Status, "outer")

	var typed *Error
	require.ErrorAs(t, wrapped, &typed)
	assert.Equal(t, ErrInternal.Code, typed.Code)
}
