package jsonutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusTeapot, map[string]string{"k": "v"})

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body["k"] != "v" {
		t.Errorf("body = %v", body)
	}
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, nil)
	if rec.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rec.Body.String())
	}
}

func TestError_Shape(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	json.NewDecoder(rec.Body).Decode(&body)
	if body["error"] != "bad input" {
		t.Errorf(`body["error"] = %q, want "bad input"`, body["error"])
	}
}

func TestSuccessAndFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "code sent")
	var ok map[string]any
	json.NewDecoder(rec.Body).Decode(&ok)
	if ok["success"] != true || ok["message"] != "code sent" {
		t.Errorf("Success body = %v", ok)
	}

	rec = httptest.NewRecorder()
	Failure(rec, http.StatusUnauthorized, "invalid code")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Failure status = %d, want 401", rec.Code)
	}
	var fail map[string]any
	json.NewDecoder(rec.Body).Decode(&fail)
	if fail["success"] != false || fail["message"] != "invalid code" {
		t.Errorf("Failure body = %v", fail)
	}
}

func TestDecode(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	var in struct {
		Name string `json:"name"`
	}
	if err := Decode(req, &in); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if in.Name != "x" {
		t.Errorf("Name = %q, want x", in.Name)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
	if err := Decode(req, &in); err == nil {
		t.Error("Decode() should fail on malformed JSON")
	}
}
