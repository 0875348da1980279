package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/campusmkt/campusmkt-backend/pkg/errors"
)

type samplePayload struct {
	Title  string `json:"title" validate:"required,min=4"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Calc textbook","rating":4}`))

	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Title != "Calc textbook" || payload.Rating != 4 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestDecodeJSONBodyRejectsUnknownField(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"Calc","rating":4,"sneaky":true}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyReportsFieldNames(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"title":"ab","rating":9}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %v", typed.Details())
	}
	if _, ok := details["title"]; !ok {
		t.Error("expected json tag name 'title' in details")
	}
	if _, ok := details["rating"]; !ok {
		t.Error("expected json tag name 'rating' in details")
	}
}

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=30", nil)
	got, err := ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil || got != 30 {
		t.Fatalf("expected 30, got %d err %v", got, err)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryInt(r, "limit", 20, 1, 100)
	if err != nil || got != 20 {
		t.Fatalf("expected default 20, got %d err %v", got, err)
	}

	r = httptest.NewRequest("GET", "/?limit=9999", nil)
	if _, err := ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected out of range error")
	}

	r = httptest.NewRequest("GET", "/?limit=abc", nil)
	if _, err := ParseQueryInt(r, "limit", 20, 1, 100); err == nil {
		t.Fatal("expected numeric error")
	}
}
