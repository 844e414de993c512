package chat

import (
	"testing"
	"time"
)

func newTestBreaker(clock *fakeClock) *Breaker {
	b := NewBreaker(3, time.Minute)
	b.now = clock.Now
	return b
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBreaker(clock)

	for i := 0; i < 2; i++ {
		if !b.Allow() {
			t.Fatalf("breaker closed too early after %d failures", i)
		}
		b.OnFailure()
	}
	if !b.Allow() {
		t.Fatalf("breaker should stay closed below threshold")
	}
	b.OnFailure()

	if b.Allow() {
		t.Fatalf("breaker should be open after 3 consecutive failures")
	}
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBreaker(clock)

	b.OnFailure()
	b.OnFailure()
	b.OnSuccess()
	b.OnFailure()
	b.OnFailure()

	if !b.Allow() {
		t.Fatalf("success must reset the consecutive failure count")
	}
}

func TestBreaker_HalfOpenSingleTrial(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.OnFailure()
	}
	if b.Allow() {
		t.Fatalf("expected open breaker")
	}

	clock.Advance(time.Minute)
	if !b.Allow() {
		t.Fatalf("expected single trial after cooldown")
	}
	if b.Allow() {
		t.Fatalf("only one trial may be in flight while half-open")
	}
}

func TestBreaker_HalfOpenSuccessCloses(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.OnFailure()
	}
	clock.Advance(time.Minute)
	if !b.Allow() {
		t.Fatalf("expected trial allowed")
	}
	b.OnSuccess()

	if !b.Allow() {
		t.Fatalf("breaker should be closed after a successful trial")
	}
	if !b.Allow() {
		t.Fatalf("closed breaker allows every request")
	}
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	b := newTestBreaker(clock)

	for i := 0; i < 3; i++ {
		b.OnFailure()
	}
	clock.Advance(time.Minute)
	if !b.Allow() {
		t.Fatalf("expected trial allowed")
	}
	b.OnFailure()

	if b.Allow() {
		t.Fatalf("failed trial must re-open the breaker")
	}
	clock.Advance(time.Minute)
	if !b.Allow() {
		t.Fatalf("expected a new trial after another cooldown")
	}
}

func TestRegistry_OneBreakerPerName(t *testing.T) {
	r := NewRegistry(3, time.Minute)
	a := r.For("gemini")
	b := r.For("gemini")
	if a != b {
		t.Fatalf("expected the same breaker instance per provider name")
	}
	if r.For("openai") == a {
		t.Fatalf("expected distinct breakers for distinct providers")
	}
}
