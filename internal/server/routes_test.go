package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestServiceInfoHandler(t *testing.T) {
	s := &Server{}
	r := gin.New()
	r.GET("/", s.serviceInfoHandler)

	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("Handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}
	expected := "{\"message\":\"symptom triage prediction service\",\"service\":\"symtriage\"}"
	if rr.Body.String() != expected {
		t.Errorf("Handler returned unexpected body: got %v want %v", rr.Body.String(), expected)
	}
}

func TestSwaggerRouteRegistered(t *testing.T) {
	handler, cleanup := newTestHandler(t)
	defer cleanup()

	engine, ok := handler.(*gin.Engine)
	if !ok {
		t.Fatalf("expected *gin.Engine, got %T", handler)
	}

	found := false
	for _, route := range engine.Routes() {
		if route.Method == http.MethodGet && route.Path == "/swagger/*any" {
			found = true
			break
		}
	}

	if !found {
		t.Fatal("expected swagger route GET /swagger/*any to be registered")
	}
}

func TestHealthReportsModelState(t *testing.T) {
	handler, cleanup := newTestHandler(t)
	defer cleanup()

	req, err := http.NewRequest(http.MethodGet, "/health", nil)
	if err != nil {
		t.Fatal(err)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}

	body := rr.Body.String()
	if !strings.Contains(body, "\"model_loaded\":false") {
		t.Fatalf("expected model_loaded false before training, body=%s", body)
	}
	if !strings.Contains(body, "\"status\":\"healthy\"") {
		t.Fatalf("expected healthy status, body=%s", body)
	}
}
