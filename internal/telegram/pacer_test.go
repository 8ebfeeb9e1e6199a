package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPacerDeliversInOrder(t *testing.T) {
	p := NewPacer()
	got := make(chan string, 2)

	p.Schedule(context.Background(), 1, []Step{
		{Send: func(context.Context) { got <- "first" }},
		{Delay: 10 * time.Millisecond, Send: func(context.Context) { got <- "second" }},
	})

	require.Equal(t, "first", receive(t, got))
	require.Equal(t, "second", receive(t, got))
}

func TestPacerCancelStopsPendingSteps(t *testing.T) {
	p := NewPacer()
	got := make(chan string, 2)

	p.Schedule(context.Background(), 1, []Step{
		{Send: func(context.Context) { got <- "first" }},
		{Delay: time.Hour, Send: func(context.Context) { got <- "never" }},
	})

	require.Equal(t, "first", receive(t, got))
	p.Cancel(1)

	select {
	case msg := <-got:
		t.Fatalf("unexpected message after cancel: %q", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPacerNewSequenceReplacesOld(t *testing.T) {
	p := NewPacer()
	got := make(chan string, 2)

	p.Schedule(context.Background(), 1, []Step{
		{Delay: time.Hour, Send: func(context.Context) { got <- "stale" }},
	})
	p.Schedule(context.Background(), 1, []Step{
		{Send: func(context.Context) { got <- "fresh" }},
	})

	require.Equal(t, "fresh", receive(t, got))
}

func TestPacerChatsAreIndependent(t *testing.T) {
	p := NewPacer()
	got := make(chan string, 2)

	p.Schedule(context.Background(), 1, []Step{
		{Send: func(context.Context) { got <- "one" }},
	})
	p.Schedule(context.Background(), 2, []Step{
		{Send: func(context.Context) { got <- "two" }},
	})

	seen := map[string]bool{}
	seen[receive(t, got)] = true
	seen[receive(t, got)] = true
	require.True(t, seen["one"] && seen["two"])
}

func receive(t *testing.T, ch chan string) string {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return ""
	}
}
