package domainbus_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/negocio360/platform/business/domain/domainbus"
	"github.com/negocio360/platform/foundation/logger"
)

func newTestCore(storer domainbus.Storer, opts ...domainbus.Option) *domainbus.Core {
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	return domainbus.NewCore(log, storer, opts...)
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  bool
	}{
		{"unclaimed domain is available", 0, true},
		{"claimed domain is taken", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core := newTestCore(stubStore{count: tt.count})

			available, err := core.CheckAvailability(context.Background(), "acme.negocio360.com")
			if err != nil {
				t.Fatalf("CheckAvailability: %v", err)
			}
			if available != tt.want {
				t.Errorf("CheckAvailability = %v, want %v", available, tt.want)
			}
		})
	}
}

func TestCheckAvailabilityStorageError(t *testing.T) {
	storeErr := errors.New("connection refused")
	core := newTestCore(stubStore{err: storeErr})

	if _, err := core.CheckAvailability(context.Background(), "acme.negocio360.com"); !errors.Is(err, storeErr) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"200 verifies", http.StatusOK, true},
		{"204 verifies", http.StatusNoContent, true},
		{"404 does not verify", http.StatusNotFound, false},
		{"500 does not verify", http.StatusInternalServerError, false},
		{"301 does not verify", http.StatusMovedPermanently, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			core := newTestCore(stubStore{}, domainbus.WithHTTPClient(srv.Client()))

			verified, err := core.Verify(context.Background(), strings.TrimPrefix(srv.URL, "https://"))
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if verified != tt.want {
				t.Errorf("Verify = %v, want %v", verified, tt.want)
			}
		})
	}
}

func TestVerifyUnreachable(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := srv.Client()
	domain := strings.TrimPrefix(srv.URL, "https://")
	srv.Close()

	core := newTestCore(stubStore{}, domainbus.WithHTTPClient(client))

	verified, err := core.Verify(context.Background(), domain)
	if err != nil {
		t.Fatalf("expected unreachable domain to be a negative result, got error: %v", err)
	}
	if verified {
		t.Error("expected unreachable domain to fail verification")
	}
}

// =============================================================================

type stubStore struct {
	count int
	err   error
}

func (s stubStore) CountByDomain(ctx context.Context, domain string) (int, error) {
	return s.count, s.err
}
