package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandlerExtractsLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "london" {
			t.Errorf("Expected query for london, got '%s'", got)
		}
		fmt.Fprint(w, weatherJSON)
	}))
	defer server.Close()

	h := NewHandler(NewService("test-key", server.URL, "", 0))

	reply, ok := h.Handle(context.Background(), "what's the weather in london")
	if !ok {
		t.Fatal("Expected weather question to be handled")
	}
	if !strings.HasPrefix(reply, "Weather in london:") {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerFallsBackToIPLocation(t *testing.T) {
	weatherServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, weatherJSON)
	}))
	defer weatherServer.Close()

	geoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "success", "city": "Paris", "country": "France"}`)
	}))
	defer geoServer.Close()

	h := NewHandler(NewService("test-key", weatherServer.URL, geoServer.URL, 0))

	reply, ok := h.Handle(context.Background(), "weather update")
	if !ok {
		t.Fatal("Expected weather question to be handled")
	}
	if !strings.Contains(reply, "Paris, France") {
		t.Errorf("Expected IP-derived location in reply, got: %s", reply)
	}
}

func TestHandlerUnknownLocation(t *testing.T) {
	geoServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "fail"}`)
	}))
	defer geoServer.Close()

	h := NewHandler(NewService("test-key", "", geoServer.URL, 0))

	reply, ok := h.Handle(context.Background(), "how's the weather")
	if !ok {
		t.Fatal("Expected weather question to be handled")
	}
	if reply != "Could not determine your location. Please specify a city." {
		t.Errorf("Unexpected reply: %s", reply)
	}
}

func TestHandlerIgnoresUnrelatedInput(t *testing.T) {
	h := NewHandler(NewService("", "", "", 0))

	if _, ok := h.Handle(context.Background(), "remember that my dog is rex"); ok {
		t.Error("Expected unrelated input to be ignored")
	}
}
