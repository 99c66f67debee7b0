package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"
)

func TestWaitForShutdown_Signals(t *testing.T) {
	tests := []struct {
		name string
		sig  syscall.Signal
	}{
		{"SIGINT", syscall.SIGINT},
		{"SIGTERM", syscall.SIGTERM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make(chan os.Signal, 1)
			go func() {
				got <- WaitForShutdown(context.Background())
			}()

			time.Sleep(50 * time.Millisecond)

			if err := syscall.Kill(os.Getpid(), tt.sig); err != nil {
				t.Fatalf("Failed to send %s: %v", tt.name, err)
			}

			select {
			case sig := <-got:
				if sig != tt.sig {
					t.Errorf("expected %v, got %v", tt.sig, sig)
				}
			case <-time.After(1 * time.Second):
				t.Fatalf("WaitForShutdown did not return after receiving %s", tt.name)
			}
		})
	}
}

func TestWaitForShutdown_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	got := make(chan os.Signal, 1)
	go func() {
		got <- WaitForShutdown(ctx)
	}()

	cancel()

	select {
	case sig := <-got:
		if sig != nil {
			t.Errorf("expected no signal, got %v", sig)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("WaitForShutdown did not return after context cancellation")
	}
}
