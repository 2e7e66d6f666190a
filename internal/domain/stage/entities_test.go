package stage

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRunningStage_Fallback(t *testing.T) {
	var r RunningStage
	if !r.IsFallback() {
		t.Fatal("zero value should be the fallback")
	}
	if r.Number() != 2 || r.Name() != "Current Price" || !r.PricePerShare().Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("fallback = %d/%s/%s", r.Number(), r.Name(), r.PricePerShare())
	}
	if _, ok := r.Stage(); ok {
		t.Fatal("fallback must not expose a stored stage")
	}
}

func TestRunningStage_Found(t *testing.T) {
	s := Stage{Stage: 3, Name: "Growth", PricePerShare: decimal.NewFromInt(1500), Status: StatusRunning}
	r := Found(s)
	if r.IsFallback() {
		t.Fatal("found stage reported as fallback")
	}
	if r.Number() != 3 || r.Name() != "Growth" || !r.PricePerShare().Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("unexpected running stage: %d/%s/%s", r.Number(), r.Name(), r.PricePerShare())
	}

	// later mutation of the source does not leak into the running stage
	s.Name = "changed"
	if r.Name() != "Growth" {
		t.Fatal("running stage must hold its own copy")
	}
}

func TestStage_Applies(t *testing.T) {
	s := Stage{MinSubscribers: 100, MaxSubscribers: 200}
	for n, want := range map[int]bool{99: false, 100: true, 199: true, 200: false} {
		if got := s.Applies(n); got != want {
			t.Fatalf("Applies(%d) = %v, want %v", n, got, want)
		}
	}

	open := Stage{MinSubscribers: 500}
	if !open.Applies(100000) || open.Applies(499) {
		t.Fatal("open-ended band mismatch")
	}
}
