package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheck_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewWebsiteMonitor(srv.URL, time.Minute)
	result, loadTime := m.Check(context.Background())
	assert.Equal(t, ResultHealthy, result)
	assert.GreaterOrEqual(t, loadTime, time.Duration(0))
}

func TestCheck_Degraded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	m := NewWebsiteMonitor(srv.URL, time.Minute)
	result, _ := m.Check(context.Background())
	assert.Equal(t, ResultDegraded, result)
}

func TestCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := srv.URL
	srv.Close()

	m := NewWebsiteMonitor(url, time.Minute)
	result, _ := m.Check(context.Background())
	assert.Equal(t, ResultError, result)
}

func TestCheck_FailureDoesNotBreakSubsequentChecks(t *testing.T) {
	healthy := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if healthy {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	m := NewWebsiteMonitor(srv.URL, time.Minute)

	result, _ := m.Check(context.Background())
	assert.Equal(t, ResultDegraded, result)

	healthy = true
	result, _ = m.Check(context.Background())
	assert.Equal(t, ResultHealthy, result)
}
