package noise

import (
	"testing"

	"github.com/cwbudde/algo-noise/stats"
)

func TestNewInvalidRate(t *testing.T) {
	for _, rate := range []int{0, -1, -48000} {
		if _, err := New(rate); err == nil {
			t.Fatalf("New(%d) expected error", rate)
		}
	}
}

func TestNewValidRates(t *testing.T) {
	for _, rate := range []int{1, 8000, 44100, 48000, 192000} {
		g, err := New(rate, WithSeed(1))
		if err != nil {
			t.Fatalf("New(%d) error = %v", rate, err)
		}
		if g.SampleRate() != rate {
			t.Fatalf("SampleRate() = %d, want %d", g.SampleRate(), rate)
		}
	}
}

func TestFillRange(t *testing.T) {
	g, err := New(48000, WithSeed(7))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	left := make([]float32, 256)
	right := make([]float32, 256)
	for call := 0; call < 100; call++ {
		g.Fill(left, right)
		for i := range left {
			if left[i] < -1 || left[i] > 1 {
				t.Fatalf("call %d: left[%d] = %f out of range", call, i, left[i])
			}
			if right[i] < -1 || right[i] > 1 {
				t.Fatalf("call %d: right[%d] = %f out of range", call, i, right[i])
			}
		}
	}
}

func TestFillShapeMismatchPanics(t *testing.T) {
	g, err := New(48000, WithSeed(1))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("Fill() with mismatched lengths did not panic")
		}
	}()
	g.Fill(make([]float32, 128), make([]float32, 64))
}

func TestFillConsecutiveBlocksDiffer(t *testing.T) {
	g, err := New(48000, WithSeed(11))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	prevL := make([]float32, 128)
	prevR := make([]float32, 128)
	curL := make([]float32, 128)
	curR := make([]float32, 128)

	g.Fill(prevL, prevR)
	for call := 0; call < 50; call++ {
		g.Fill(curL, curR)
		if equalSamples(prevL, curL) && equalSamples(prevR, curR) {
			t.Fatalf("call %d repeated the previous block verbatim", call)
		}
		copy(prevL, curL)
		copy(prevR, curR)
	}
}

func TestFillChannelsNotCopies(t *testing.T) {
	g, err := New(48000, WithSeed(13))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	const n = 1 << 14
	left := make([]float32, n)
	right := make([]float32, n)
	g.Fill(left, right)

	if equalSamples(left, right) {
		t.Fatal("left and right channels are identical")
	}

	corr := stats.Correlation(stats.FromFloat32(left), stats.FromFloat32(right))
	if corr > 0.95 || corr < -0.95 {
		t.Fatalf("L/R correlation = %f, channels look dependent", corr)
	}
}

func TestFillLevelPlausible(t *testing.T) {
	g, err := New(48000, WithSeed(17))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	left := make([]float32, 48000)
	right := make([]float32, 48000)
	g.Fill(left, right)

	rms := stats.RMS(stats.FromFloat32(left))
	if rms < 0.01 || rms > 1 {
		t.Fatalf("RMS = %f, want audible noise below full scale", rms)
	}
}

func TestFillContinuesAcrossNormalization(t *testing.T) {
	// One second of audio at this rate triggers the periodic re-projection
	// several times; the stream must stay in range throughout.
	g, err := New(8000, WithSeed(19))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	left := make([]float32, 128)
	right := make([]float32, 128)
	for call := 0; call < 8000*3/128; call++ {
		g.Fill(left, right)
		for i := range left {
			if left[i] < -1 || left[i] > 1 {
				t.Fatalf("call %d: sample %f out of range after re-projection", call, left[i])
			}
		}
	}
}

func TestPreviewDoesNotAdvanceStream(t *testing.T) {
	g1, err := New(48000, WithSeed(23))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g2, err := New(48000, WithSeed(23))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l1 := make([]float32, 128)
	r1 := make([]float32, 128)
	l2 := make([]float32, 128)
	r2 := make([]float32, 128)
	pl := make([]float32, 200)
	pr := make([]float32, 200)

	g1.Fill(l1, r1)
	g2.Fill(l2, r2)

	g1.Preview(pl, pr)
	g1.Preview(pl, pr)

	g1.Fill(l1, r1)
	g2.Fill(l2, r2)
	if !equalSamples(l1, l2) || !equalSamples(r1, r2) {
		t.Fatal("Preview() perturbed the audio stream")
	}
}

func TestPreviewArbitraryLengths(t *testing.T) {
	g, err := New(48000, WithSeed(29))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, n := range []int{0, 1, 100, 256, 1000} {
		left := make([]float32, n)
		right := make([]float32, n)
		g.Preview(left, right)
		for i := range left {
			if left[i] < -1 || left[i] > 1 {
				t.Fatalf("n=%d: preview sample %f out of range", n, left[i])
			}
		}
	}
}

func TestPreviewDiffersFromFill(t *testing.T) {
	g, err := New(48000, WithSeed(31))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	fillL := make([]float32, 128)
	fillR := make([]float32, 128)
	prevL := make([]float32, 128)
	prevR := make([]float32, 128)

	for call := 0; call < 1000; call++ {
		g.Fill(fillL, fillR)
		g.Preview(prevL, prevR)
		if equalSamples(fillL, prevL) {
			t.Fatalf("call %d: preview duplicated the audio block", call)
		}
	}
}

func TestFillDoesNotAllocate(t *testing.T) {
	g, err := New(48000, WithSeed(37))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	left := make([]float32, 256)
	right := make([]float32, 256)
	allocs := testing.AllocsPerRun(100, func() {
		g.Fill(left, right)
	})
	if allocs != 0 {
		t.Fatalf("Fill() allocates %f times per call, want 0", allocs)
	}
}

func TestWithMultipliersIgnoresInvalid(t *testing.T) {
	// Wrong count and non-positive entries fall back to the defaults.
	g1, err := New(48000, WithSeed(41), WithMultipliers([]float64{1, 2}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	g2, err := New(48000, WithSeed(41), WithMultipliers([]float64{1, 2, 3, 4, 5, 6, -7}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l1 := make([]float32, 64)
	r1 := make([]float32, 64)
	l2 := make([]float32, 64)
	r2 := make([]float32, 64)
	g1.Fill(l1, r1)
	g2.Fill(l2, r2)
	if !equalSamples(l1, l2) {
		t.Fatal("invalid multiplier options changed the output")
	}
}

func equalSamples(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
