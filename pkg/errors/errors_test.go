// Package errors_test provides unit tests for the AppError type, factory
// functions, and error-chain helpers defined in pkg/errors/errors.go.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/kandang-feasibility/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.CodeInternal, "unexpected failure"},
		{"invalid input", errors.CodeInvalidInput, "surviving count exceeds initial count"},
		{"dataset empty", errors.ErrCodeDatasetEmpty, "no rows"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
		})
	}
}

func TestNew_StackIsPopulated(t *testing.T) {
	ae := errors.New(errors.CodeInternal, "test")
	require.NotNil(t, ae)
	assert.Contains(t, ae.Stack, "errors_test.go")
}

func TestNewf_FormatsMessage(t *testing.T) {
	ae := errors.Newf(errors.CodeInvalidInput, "area %.1f must be positive", -2.0)
	assert.Equal(t, "area -2.0 must be positive", ae.Message)
}

// ─────────────────────────────────────────────────────────────────────────────
// TestError
// ─────────────────────────────────────────────────────────────────────────────

func TestError_WithoutDetail(t *testing.T) {
	ae := errors.New(errors.CodeInvalidInput, "bad house")
	assert.Equal(t, "[KDG_001] bad house", ae.Error())
}

func TestError_WithDetail(t *testing.T) {
	ae := errors.New(errors.CodeInvalidInput, "bad house").WithDetail("area_m2=0")
	assert.Equal(t, "[KDG_001] bad house: area_m2=0", ae.Error())
}

func TestWithDetail_DoesNotMutateReceiver(t *testing.T) {
	orig := errors.InvalidInput("x")
	clone := orig.WithDetail("y")
	assert.Empty(t, orig.Detail)
	assert.Equal(t, "y", clone.Detail)
}

func TestWithDetail_NilReceiver(t *testing.T) {
	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(fmt.Errorf("x")))
}

func TestWithCause_SetsCause(t *testing.T) {
	cause := stderrors.New("disk")
	ae := errors.Internal("failed").WithCause(cause)
	assert.True(t, stderrors.Is(ae, cause))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "x"))
}

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := stderrors.New("root cause")
	ae := errors.Wrap(cause, errors.ErrCodeDatasetUnreadable, "read failed")
	require.NotNil(t, ae)
	assert.Equal(t, cause, stderrors.Unwrap(ae))
	assert.True(t, stderrors.Is(ae, cause))
}

func TestWrap_UnknownCodePreservesOriginal(t *testing.T) {
	inner := errors.InvalidInput("negative area")
	outer := errors.Wrap(inner, errors.CodeUnknown, "evaluation failed")
	assert.Equal(t, errors.CodeInvalidInput, outer.Code)
}

func TestWrap_UnknownCodeOnPlainErrorBecomesInternal(t *testing.T) {
	outer := errors.Wrap(stderrors.New("boom"), errors.CodeUnknown, "x")
	assert.Equal(t, errors.CodeInternal, outer.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Chain helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_TraversesChain(t *testing.T) {
	inner := errors.New(errors.ErrCodeDatasetColumnsMissing, "no Kepadatan")
	wrapped := fmt.Errorf("loader: %w", inner)
	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeDatasetColumnsMissing))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeDatasetEmpty))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeDatasetEmpty))
}

func TestIsInvalidInput(t *testing.T) {
	assert.True(t, errors.IsInvalidInput(errors.InvalidInput("x")))
	assert.True(t, errors.IsInvalidInput(errors.New(errors.ErrCodeValidation, "x")))
	assert.True(t, errors.IsInvalidInput(errors.InvalidParam("x")))
	assert.False(t, errors.IsInvalidInput(errors.Internal("x")))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeInternal, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(errors.NotFound("x")))
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, errors.ExitOK, errors.ExitStatus(nil))
	assert.Equal(t, errors.ExitDataErr, errors.ExitStatus(errors.InvalidInput("x")))
	assert.Equal(t, errors.ExitSoftware, errors.ExitStatus(stderrors.New("plain")))
}

func TestErrorString_ContainsNoStack(t *testing.T) {
	ae := errors.Internal("oops")
	assert.False(t, strings.Contains(ae.Error(), "errors_test.go"))
}

func TestIsAs_Passthrough(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	wrapped := errors.Wrap(sentinel, errors.ErrCodeDatasetUnreadable, "read failed")

	assert.True(t, errors.Is(wrapped, sentinel))
	var ae *errors.AppError
	require.True(t, errors.As(fmt.Errorf("ctx: %w", wrapped), &ae))
	assert.Equal(t, errors.ErrCodeDatasetUnreadable, ae.Code)
}

//Personal.AI order the ending
