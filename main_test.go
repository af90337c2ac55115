package main

import (
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServe_ReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := &http.Server{Addr: ln.Addr().String(), Handler: http.NotFoundHandler()}
	quit := make(chan os.Signal, 1)

	done := make(chan error, 1)
	go func() { done <- serve(srv, quit, time.Second) }()

	select {
	case err := <-done:
		assert.Error(t, err, "a taken port is reported to the caller instead of exiting the process")
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the listen failure")
	}
}

func TestServe_ShutsDownOnSignal(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	quit := make(chan os.Signal, 1)

	done := make(chan error, 1)
	go func() { done <- serve(srv, quit, time.Second) }()
	quit <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the signal")
	}
}
