package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := InputNotFound("data/survey_data.csv")
	wrapped := Wrap(base, "load survey table")

	assert.Equal(t, CodeInputNotFound, GetCode(wrapped))
	assert.True(t, IsInputNotFound(wrapped))
	assert.False(t, IsNoRankingColumns(wrapped))
	assert.Equal(t, "load survey table: data/survey_data.csv not found", wrapped.Error())
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrap(os.ErrPermission, "write chart")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.True(t, stderrors.Is(wrapped, os.ErrPermission))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, WithCode(CodeMalformedTable, nil))
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("analyze: %w", NoRankingColumns("Q35_"))
	assert.True(t, IsNoRankingColumns(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeNoRankingColumns, GetCode(err))
}

func TestGetCodeUnknown(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("boom")))
	assert.False(t, IsAppError(stderrors.New("boom")))
}

func TestWithCode(t *testing.T) {
	cause := stderrors.New("row too short")
	err := WithCode(CodeMalformedTable, cause)
	assert.Equal(t, CodeMalformedTable, GetCode(err))
	assert.True(t, stderrors.Is(err, cause))
}
