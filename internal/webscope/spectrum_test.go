package webscope

import (
	"math"
	"testing"
)

func TestAnalyzerResolvesTone(t *testing.T) {
	a, err := newAnalyzer(48000)
	if err != nil {
		t.Fatalf("newAnalyzer() error = %v", err)
	}

	const toneHz = 1000.0
	for i := 0; i < 4*analyzerFFTSize; i++ {
		a.push(0.5 * math.Sin(2*math.Pi*toneHz*float64(i)/48000))
	}
	if !a.ready {
		t.Fatal("analyzer not ready after four frames")
	}

	curve := a.curveDB([]float64{toneHz, 10000})
	if curve[0] < -40 {
		t.Fatalf("tone bin = %f dB, want a clear peak", curve[0])
	}
	if curve[0] < curve[1]+20 {
		t.Fatalf("tone bin %f dB not well above far bin %f dB", curve[0], curve[1])
	}
}

func TestAnalyzerSilentUntilReady(t *testing.T) {
	a, err := newAnalyzer(48000)
	if err != nil {
		t.Fatalf("newAnalyzer() error = %v", err)
	}

	curve := a.curveDB([]float64{100, 1000})
	for i, db := range curve {
		if db != analyzerMinDB {
			t.Fatalf("curve[%d] = %f dB before any input, want %f", i, db, analyzerMinDB)
		}
	}
}

func TestAnalyzerCurveInterpolates(t *testing.T) {
	a, err := newAnalyzer(48000)
	if err != nil {
		t.Fatalf("newAnalyzer() error = %v", err)
	}
	for i := 0; i < 2*analyzerFFTSize; i++ {
		a.push(0.25 * math.Sin(2*math.Pi*500*float64(i)/48000))
	}

	// Out-of-range frequencies clamp to the edge bins instead of failing.
	curve := a.curveDB([]float64{-10, 1e9})
	if len(curve) != 2 {
		t.Fatalf("len(curve) = %d, want 2", len(curve))
	}
	if math.IsNaN(curve[0]) || math.IsNaN(curve[1]) {
		t.Fatal("curve contains NaN at clamped edges")
	}
}
