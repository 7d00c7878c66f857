package code

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_WithDetailsDoesNotMutateRegisteredCode(t *testing.T) {
	c := ErrorDBQuery.WithDetails("boom")

	assert.True(t, c.HaveDetails())
	assert.Equal(t, []string{"boom"}, c.Details())
	assert.False(t, ErrorDBQuery.HaveDetails())
	assert.Empty(t, ErrorDBQuery.Details())
}

func TestCode_IsMatchesCopies(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrorNoteNotFound.WithDetails("id=1"))

	assert.True(t, errors.Is(err, ErrorNoteNotFound))
	assert.False(t, errors.Is(err, ErrorSnippetNotFound))
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		validation bool
		notFound   bool
		store      bool
		status     int
	}{
		{"required field", ErrorRequiredField.WithDetails("title"), true, false, false, http.StatusBadRequest},
		{"tag ref", ErrorTagRefInvalid, true, false, false, http.StatusBadRequest},
		{"note missing", ErrorNoteNotFound, false, true, false, http.StatusNotFound},
		{"db", ErrorDBQuery.WithDetails("x"), false, false, true, http.StatusInternalServerError},
		{"increment", ErrorUsageCountIncrement, false, false, true, http.StatusInternalServerError},
		{"plain error", errors.New("x"), false, false, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.validation, IsValidation(tt.err))
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.store, IsStore(tt.err))
			assert.Equal(t, tt.status, statusOf(tt.err))
		})
	}
}

func TestSetGlobalDefaultLang(t *testing.T) {
	defer func() { _ = SetGlobalDefaultLang("en") }()

	assert.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "笔记不存在", ErrorNoteNotFound.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "Note not found", ErrorNoteNotFound.Msg())
}
