package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/inkpress/blog-service/internal/config"
)

func TestShutdownBeforeRun(t *testing.T) {
	s := New(config.ServerConfig{Port: "0"})

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	if err := s.Run(); err != http.ErrServerClosed {
		t.Fatalf("expected http.ErrServerClosed, got %v", err)
	}
}
