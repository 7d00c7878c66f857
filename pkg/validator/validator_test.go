package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `binding:"notblank"`
	Status string `binding:"omitempty,oneof=open done"`
}

func TestCustomValidator(t *testing.T) {
	v := NewCustomValidator()
	validate, ok := v.Engine().(*validator.Validate)
	require.True(t, ok)
	require.NoError(t, RegisterCustom(validate))

	assert.NoError(t, v.ValidateStruct(&sample{Name: "go"}))
	assert.Error(t, v.ValidateStruct(&sample{Name: "   "}))
	assert.Error(t, v.ValidateStruct(sample{Name: "go", Status: "closed"}))
	assert.Error(t, v.ValidateStruct([]sample{{Name: "a"}, {Name: ""}}))
	assert.NoError(t, v.ValidateStruct(nil))
}

type named struct {
	Title string `json:"title" binding:"required"`
}

func TestInit(t *testing.T) {
	uni, err := Init()
	require.NoError(t, err)

	trans, found := uni.GetTranslator("zh")
	require.True(t, found)

	err = binding.Validator.ValidateStruct(&named{})
	require.Error(t, err)
	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	assert.Equal(t, "title", verrs[0].Field())
	assert.Contains(t, verrs[0].Translate(trans), "title")
}
