package movement

import "testing"

func TestSpeedRampCompletesExactly(t *testing.T) {
	rates := []float64{10, 10 * 2.5 * (1 + 15.0/90), 10 * 2.5 * (1 + 39.0/90), 0.37}
	for _, rate := range rates {
		var r speedRamp
		r.restart(7, 10)

		var v float64
		for i := 0; i < 10000 && r.active; i++ {
			v = r.advance(1.0/60, rate)
		}
		if r.active {
			t.Fatalf("rate %v: expected the ramp to complete", rate)
		}
		if v != 10 {
			t.Fatalf("rate %v: expected exactly 10 at completion, got %v", rate, v)
		}
	}
}

func TestSpeedRampIsGradual(t *testing.T) {
	var r speedRamp
	r.restart(7, 10)
	first := r.advance(0.016, 10)
	if first <= 7 || first >= 10 {
		t.Fatalf("expected an intermediate speed, got %v", first)
	}
	second := r.advance(0.016, 10)
	if second <= first {
		t.Fatalf("expected the speed to keep increasing, got %v after %v", second, first)
	}
	if p := r.progress(); p <= 0 || p >= 1 {
		t.Fatalf("expected partial progress, got %v", p)
	}
}

func TestSpeedRampDurationFollowsGap(t *testing.T) {
	frames := func(from, to float64) int {
		var r speedRamp
		r.restart(from, to)
		n := 0
		for r.active {
			r.advance(0.01, 10)
			n++
		}
		return n
	}
	if small, large := frames(7, 10), frames(3.5, 15); small >= large {
		t.Fatalf("expected a larger gap to take longer, got %v and %v frames", small, large)
	}
}

func TestSpeedRampDegenerate(t *testing.T) {
	var r speedRamp
	r.restart(5, 5)
	if v := r.advance(0.016, 10); v != 5 || r.active {
		t.Fatalf("expected a zero gap to finish immediately, got %v", v)
	}

	r.restart(0, 10)
	if v := r.advance(0.016, 0); v != 10 || r.active {
		t.Fatalf("expected a zero rate to finish immediately, got %v", v)
	}
}

func TestSpeedRampRestartOverwrites(t *testing.T) {
	var r speedRamp
	r.restart(0, 10)
	r.advance(0.1, 10)
	r.restart(4, 20)
	if r.start != 4 || r.target != 20 || r.elapsed != 0 {
		t.Fatalf("expected the restart to replace the ramp, got %+v", r)
	}
}
