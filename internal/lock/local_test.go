package lock

import (
	"context"
	"testing"
	"time"

	"booking-assistant/internal/slots"
)

func TestLocalLock(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLock()
	now := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	l.clock = func() time.Time { return now }

	key := BookingKey("clinic", slots.Date{Year: 2026, Month: time.March, Day: 2})
	if key != "booking:clinic:2026-03-02" {
		t.Fatalf("unexpected key %q", key)
	}

	ok, err := l.Lock(ctx, key, 10*time.Second)
	if err != nil || !ok {
		t.Fatalf("first lock: %v, %v", ok, err)
	}
	if ok, _ := l.Lock(ctx, key, 10*time.Second); ok {
		t.Fatal("second lock must fail while held")
	}

	now = now.Add(11 * time.Second)
	if ok, _ := l.Lock(ctx, key, 10*time.Second); !ok {
		t.Fatal("expired lock should be acquirable")
	}

	if err := l.Unlock(ctx, key); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
	if ok, _ := l.Lock(ctx, key, 10*time.Second); !ok {
		t.Fatal("released lock should be acquirable")
	}
}
