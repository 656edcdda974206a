package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/simdash/simcar/pkg/model"
)

func TestBroadcastServer_FanOut(t *testing.T) {
	source := make(chan model.TelemetryState)
	srv := NewBroadcastServer("test", source)
	defer srv.Close()

	sub1 := srv.Subscribe()
	sub2 := srv.Subscribe()

	go func() {
		source <- model.TelemetryState{SpeedKmh: 36}
	}()

	got1 := <-sub1
	got2 := <-sub2
	assert.Equal(t, 36.0, got1.SpeedKmh)
	assert.Equal(t, 36.0, got2.SpeedKmh)
}

func TestBroadcastServer_SlowSubscriberSkipped(t *testing.T) {
	source := make(chan model.TelemetryState)
	srv := NewBroadcastServer("test", source)
	defer srv.Close()

	fast := srv.Subscribe()
	srv.Subscribe() // never read from

	go func() {
		source <- model.TelemetryState{SpeedKmh: 10}
		source <- model.TelemetryState{SpeedKmh: 20}
	}()

	got := <-fast
	assert.Equal(t, 10.0, got.SpeedKmh)
	// second message still arrives after the slow subscriber timed out
	select {
	case got = <-fast:
		assert.Equal(t, 20.0, got.SpeedKmh)
	case <-time.After(time.Second):
		t.Fatal("fast subscriber starved by slow one")
	}
}

func TestBroadcastServer_CancelSubscription(t *testing.T) {
	source := make(chan model.TelemetryState)
	srv := NewBroadcastServer("test", source)
	defer srv.Close()

	sub := srv.Subscribe()
	srv.CancelSubscription(sub)

	select {
	case _, open := <-sub:
		assert.False(t, open, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestBroadcastServer_CloseClosesListeners(t *testing.T) {
	source := make(chan model.TelemetryState)
	srv := NewBroadcastServer("test", source)

	sub := srv.Subscribe()
	srv.Close()

	select {
	case _, open := <-sub:
		assert.False(t, open, "channel should be closed after server close")
	case <-time.After(time.Second):
		t.Fatal("channel not closed after server close")
	}
}
