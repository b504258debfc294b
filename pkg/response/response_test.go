package response_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/exchange-settings-service/internal/pagination"
	"github.com/maxviazov/exchange-settings-service/internal/repository"
	"github.com/maxviazov/exchange-settings-service/internal/service"
	"github.com/maxviazov/exchange-settings-service/pkg/response"
)

// fakeInvalid mimics service aggregated validation error to test mapping without reaching into internals.
type fakeInvalid struct{ fe []service.FieldError }

func (f *fakeInvalid) Error() string                { return service.ErrInvalidInput.Error() }
func (f *fakeInvalid) Unwrap() error                { return service.ErrInvalidInput }
func (f *fakeInvalid) Fields() []service.FieldError { return f.fe }

func TestMapError(t *testing.T) {
	_, pageErr := pagination.PaginateSlice([]int{1, 2}, 1, 0)

	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", &fakeInvalid{fe: []service.FieldError{{Field: "exchange", Message: "bad"}}}, 400, "invalid_input"},
		{"invalid_page_size", pageErr, 400, "invalid_argument"},
		{"bare_invalid_argument", fmt.Errorf("wrap: %w", pagination.ErrInvalidArgument), 400, "invalid_argument"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			if code != tc.wantCode || payload.Error != tc.wantErr {
				t.Fatalf("unexpected mapping: got (%d,%s) want (%d,%s)", code, payload.Error, tc.wantCode, tc.wantErr)
			}
			if tc.name == "invalid_input" && len(payload.FieldErrors) == 0 {
				t.Fatalf("expected field errors in payload")
			}
			if tc.name == "invalid_page_size" && (len(payload.FieldErrors) != 1 || payload.FieldErrors[0].Field != "page_size") {
				t.Fatalf("expected page_size field error, got %+v", payload.FieldErrors)
			}
		})
	}
}
