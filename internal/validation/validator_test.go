package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/bookdenapp/bookden-server/internal/errors"
	"github.com/bookdenapp/bookden-server/internal/validation"
)

type createBookRequest struct {
	Title  string   `json:"title" validate:"required,max=512"`
	Author string   `json:"author" validate:"required"`
	Genres []string `json:"genres" validate:"omitempty,dive,required"`
	Rating float64  `json:"rating" validate:"gte=0,lte=5"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	req := createBookRequest{
		Title:  "The Hobbit",
		Author: "J.R.R. Tolkien",
		Genres: []string{"Fantasy"},
		Rating: 4.5,
	}

	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       createBookRequest
		wantField string
	}{
		{
			name:      "missing title",
			req:       createBookRequest{Author: "Someone", Rating: 3},
			wantField: "title",
		},
		{
			name:      "missing author",
			req:       createBookRequest{Title: "Untitled", Rating: 3},
			wantField: "author",
		},
		{
			name:      "rating out of range",
			req:       createBookRequest{Title: "T", Author: "A", Rating: 7},
			wantField: "rating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			assert.Contains(t, appErr.Details, tt.wantField)
		})
	}
}

func TestValidator_UsesJSONTagNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(createBookRequest{Rating: 1})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Details, "title")
	assert.NotContains(t, appErr.Details, "Title")
}
