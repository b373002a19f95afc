package util

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type testItem struct {
	Title       string `json:"title" validate:"required,strNotEmpty,cmax=5"`
	Description string `json:"description" validate:"cmax=10"`
}

type testChecklist struct {
	Items []testItem `json:"items" validate:"required,min=1,max=2,dive"`
}

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		t.Fatalf("RegisterCustomValidations() error = %v", err)
	}
	return v
}

func TestCustomValidations(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name      string
		input     testChecklist
		wantField string
		wantMsg   string
	}{
		{"valid", testChecklist{Items: []testItem{{Title: "CV"}}}, "", ""},
		{"padded title within limit", testChecklist{Items: []testItem{{Title: "  CV   "}}}, "", ""},
		{"multibyte title within limit", testChecklist{Items: []testItem{{Title: "ឯកសារ"}}}, "", ""},
		{"blank title", testChecklist{Items: []testItem{{Title: "   "}}}, "title", "title must not be empty or contain only whitespace characters"},
		{"long title", testChecklist{Items: []testItem{{Title: "Transcript"}}}, "title", "title must be at most 5 characters"},
		{"long description", testChecklist{Items: []testItem{{Title: "CV", Description: strings.Repeat("a", 11)}}}, "description", "description must be at most 10 characters"},
		{"no items", testChecklist{Items: []testItem{}}, "items", "items must contain at least 1 entries"},
		{"too many items", testChecklist{Items: []testItem{{Title: "a"}, {Title: "b"}, {Title: "c"}}}, "items", "items must contain at most 2 entries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Struct() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Struct() error = nil, want error on %s", tt.wantField)
			}

			got := GenerateErrorMessages(err)
			if len(got) != 1 || got[0].Field != tt.wantField || got[0].Message != tt.wantMsg {
				t.Errorf("GenerateErrorMessages() = %+v, want %s: %s", got, tt.wantField, tt.wantMsg)
			}
		})
	}
}

func TestGenerateErrorMessagesPlainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		params []any
		want   ApiError
	}{
		{"default field", errors.New("boom"), nil, ApiError{Field: "Unknown", Message: "boom"}},
		{"named field", errors.New("boom"), []any{"slug"}, ApiError{Field: "slug", Message: "boom"}},
		{"record not found", gorm.ErrRecordNotFound, []any{"fileId"}, ApiError{Field: "fileId", Message: "Record not found"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateErrorMessages(tt.err, tt.params...)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("GenerateErrorMessages() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGenerateErrorMessagesRenamesField(t *testing.T) {
	v := newTestValidator(t)
	err := v.Struct(testChecklist{Items: []testItem{{Title: ""}}})

	got := GenerateErrorMessages(err, map[string]string{"title": "Item title"})
	if len(got) == 0 || got[0].Field != "Item title" || !strings.HasPrefix(got[0].Message, "Item title is required") {
		t.Errorf("GenerateErrorMessages() = %+v", got)
	}
}
