package ratelimit

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeStore struct {
	res   Result
	err   error
	calls int
}

func (f *fakeStore) Check(ctx context.Context, identifier string) (Result, error) {
	f.calls++
	return f.res, f.err
}

func TestSelectorPrefersDistributed(t *testing.T) {
	distributed := &fakeStore{res: Result{Allowed: true, Remaining: 3, Source: SourceDistributed}}
	memory := NewMemoryStore()
	t.Cleanup(memory.Close)

	sel := NewSelector(distributed, memory, true, zerolog.Nop())

	res := sel.Check(context.Background(), "203.0.113.5")
	if res.Source != SourceDistributed {
		t.Fatalf("expected distributed source, got %q", res.Source)
	}
	if distributed.calls != 1 {
		t.Fatalf("expected one distributed call, got %d", distributed.calls)
	}
}

func TestSelectorFallsThroughToMemory(t *testing.T) {
	distributed := &fakeStore{err: errors.New("connection refused")}
	memory := NewMemoryStore()
	t.Cleanup(memory.Close)

	sel := NewSelector(distributed, memory, false, zerolog.Nop())

	res := sel.Check(context.Background(), "203.0.113.5")
	if res.Source != SourceMemory {
		t.Fatalf("expected memory fallback, got %q", res.Source)
	}
	if !res.Allowed {
		t.Fatal("first request through the fallback should be allowed")
	}
}

func TestSelectorBypassesInProduction(t *testing.T) {
	distributed := &fakeStore{err: errors.New("connection refused")}
	memory := NewMemoryStore()
	t.Cleanup(memory.Close)

	sel := NewSelector(distributed, memory, true, zerolog.Nop())

	for i := 0; i < Limit*2; i++ {
		res := sel.Check(context.Background(), "203.0.113.5")
		if !res.Allowed {
			t.Fatal("bypass tier must never deny")
		}
		if res.Source != SourceBypass {
			t.Fatalf("expected bypass source, got %q", res.Source)
		}
		if res.Remaining != -1 {
			t.Fatalf("expected remaining -1 from bypass, got %d", res.Remaining)
		}
	}
}

func TestSelectorWithoutDistributedStore(t *testing.T) {
	memory := NewMemoryStore()
	t.Cleanup(memory.Close)

	sel := NewSelector(nil, memory, false, zerolog.Nop())

	res := sel.Check(context.Background(), "203.0.113.5")
	if res.Source != SourceMemory {
		t.Fatalf("expected memory source, got %q", res.Source)
	}
}
