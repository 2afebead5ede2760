package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"sheetlens/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{core.NewUnsupportedFileTypeError("a.csv", "text/csv"), CodeUnsupportedFileType, http.StatusUnsupportedMediaType},
		{core.NewEmptyFileError("a.xlsx"), CodeEmptyFile, http.StatusUnprocessableEntity},
		{core.NewParseError("a.xlsx", stderrors.New("bad zip")), CodeParseFailed, http.StatusUnprocessableEntity},
		{core.NewCapacityError(3, 1, 3), CodeCapacityExceeded, http.StatusConflict},
		{core.NewInvalidFieldError("region"), CodeInvalidField, http.StatusUnprocessableEntity},
		{core.NewValidationError("source_key", "required"), CodeValidationError, http.StatusUnprocessableEntity},
		{core.NewNotFoundError("dataset", "x"), CodeNotFound, http.StatusNotFound},
		{stderrors.New("boom"), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.status, HTTPStatus(appErr.Code))
			assert.ErrorIs(t, appErr, tt.err)
		})
	}

	assert.Nil(t, FromDomain(nil))
}

func TestFromDomain_UnsupportedMessage(t *testing.T) {
	appErr := FromDomain(core.NewUnsupportedFileTypeError("notes.txt", "text/plain"))
	assert.Equal(t, core.UnsupportedFileTypeMessage, appErr.Message)
}

func TestFromDomain_KeepsAppErrors(t *testing.T) {
	original := InvalidInput("no files")
	assert.Same(t, original, FromDomain(Wrap(original, "upload failed")).Cause)
	assert.Equal(t, CodeInvalidInput, GetCode(Wrap(original, "upload failed")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeConfigInvalid, stderrors.New("PORT must be numeric"))
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.Nil(t, Wrap(nil, "x"))
}
