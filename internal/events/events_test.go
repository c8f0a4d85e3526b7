package events

import (
	"testing"
	"time"
)

func TestDebouncer_AcceptRejectReset(t *testing.T) {
	d := NewDebouncer(DefaultDebounceInterval)
	current := time.Now()
	d.now = func() time.Time { return current }

	if !d.ShouldProcess() {
		t.Fatal("first ShouldProcess() = false, want true")
	}
	// Immediately after an accepted call.
	if d.ShouldProcess() {
		t.Error("ShouldProcess() = true immediately after acceptance, want false")
	}

	current = current.Add(DefaultDebounceInterval)
	if !d.ShouldProcess() {
		t.Error("ShouldProcess() = false after the interval, want true")
	}

	// Reset makes the very next call pass regardless of elapsed time.
	if d.ShouldProcess() {
		t.Fatal("setup: expected rejection right after acceptance")
	}
	d.Reset()
	if !d.ShouldProcess() {
		t.Error("ShouldProcess() = false right after Reset(), want true")
	}
}

func TestDebouncer_DefaultInterval(t *testing.T) {
	d := NewDebouncer(0)
	if d.interval != DefaultDebounceInterval {
		t.Errorf("interval = %v, want default %v", d.interval, DefaultDebounceInterval)
	}
}

type panelTarget int

const (
	targetAndroid panelTarget = iota
	targetIOS
	targetDetails
)

// A burst of targets yields exactly one result equal to the last one
// added, and nothing afterwards.
func TestNavBatcher_BurstYieldsLastTarget(t *testing.T) {
	b := NewNavBatcher[panelTarget](DefaultBatchWindow)
	current := time.Now()
	b.now = func() time.Time { return current }

	for _, target := range []panelTarget{targetAndroid, targetIOS, targetDetails, targetAndroid} {
		b.Add(target)
		current = current.Add(5 * time.Millisecond)
	}

	// The burst has not gone quiet yet.
	if _, ok := b.Take(); ok {
		t.Fatal("Take() ok = true inside the batch window, want false")
	}

	current = current.Add(DefaultBatchWindow)
	got, ok := b.Take()
	if !ok {
		t.Fatal("Take() ok = false after the window, want true")
	}
	if got != targetAndroid {
		t.Errorf("Take() = %v, want the last added target %v", got, targetAndroid)
	}

	if _, ok := b.Take(); ok {
		t.Error("second Take() ok = true, want the target consumed")
	}
}

func TestNavBatcher_PeekDoesNotConsume(t *testing.T) {
	b := NewNavBatcher[panelTarget](DefaultBatchWindow)
	current := time.Now()
	b.now = func() time.Time { return current }

	if _, ok := b.Peek(); ok {
		t.Error("Peek() ok = true on an empty batcher")
	}

	b.Add(targetIOS)
	got, ok := b.Peek()
	if !ok || got != targetIOS {
		t.Errorf("Peek() = %v, %v; want the pending target immediately", got, ok)
	}

	current = current.Add(DefaultBatchWindow)
	if _, ok := b.Take(); !ok {
		t.Error("Take() ok = false after Peek, want Peek to leave the target")
	}
}

func TestNavBatcher_EmptyTake(t *testing.T) {
	b := NewNavBatcher[panelTarget](DefaultBatchWindow)
	if _, ok := b.Take(); ok {
		t.Error("Take() ok = true on an empty batcher, want false")
	}
}

func TestNavBatcher_AddAfterTakeStartsNewBatch(t *testing.T) {
	b := NewNavBatcher[panelTarget](DefaultBatchWindow)
	current := time.Now()
	b.now = func() time.Time { return current }

	b.Add(targetIOS)
	current = current.Add(DefaultBatchWindow)
	if _, ok := b.Take(); !ok {
		t.Fatal("Take() ok = false after a quiet window")
	}

	b.Add(targetDetails)
	current = current.Add(DefaultBatchWindow)
	got, ok := b.Take()
	if !ok || got != targetDetails {
		t.Errorf("Take() = %v, %v; want the new batch's target", got, ok)
	}
}
