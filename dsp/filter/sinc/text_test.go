package sinc

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := (Taps{0.5, -0.25, 1e-20}).WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	want := "0.500000000000000\n-0.250000000000000\n0.000000000000000\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestTextRoundTrip(t *testing.T) {
	taps := MustDesign(DefaultSpec())

	var buf bytes.Buffer
	if err := taps.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	if lines := strings.Count(buf.String(), "\n"); lines != taps.Len() {
		t.Fatalf("lines = %d, want %d", lines, taps.Len())
	}

	back, err := ReadText(&buf)
	if err != nil {
		t.Fatalf("ReadText() error = %v", err)
	}

	if back.Len() != taps.Len() {
		t.Fatalf("len = %d, want %d", back.Len(), taps.Len())
	}

	for i := range taps {
		if d := math.Abs(back[i] - taps[i]); d > 1e-15 {
			t.Fatalf("tap %d: diff %g", i, d)
		}
	}
}

func TestTextExactRoundTrip(t *testing.T) {
	taps := MustDesign(DefaultSpec())

	var fixed, exact bytes.Buffer
	if err := taps.WriteText(&fixed); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	if err := taps.WriteTextExact(&exact); err != nil {
		t.Fatalf("WriteTextExact() error = %v", err)
	}

	lossy, err := ReadText(&fixed)
	if err != nil {
		t.Fatalf("ReadText(fixed) error = %v", err)
	}

	back, err := ReadText(&exact)
	if err != nil {
		t.Fatalf("ReadText(exact) error = %v", err)
	}

	changed := 0
	for i := range taps {
		if back[i] != taps[i] {
			t.Fatalf("tap %d: got %v, want %v", i, back[i], taps[i])
		}

		if lossy[i] != taps[i] {
			changed++
		}
	}

	if changed == 0 {
		t.Fatal("fixed decimals reproduced every tap; expected rounding on small taps")
	}
}

func TestSaveLoadTextExact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taps.txt")

	taps := MustDesign(Spec{Length: 31, Up: 3, Down: 7})
	if err := taps.SaveTextExact(path); err != nil {
		t.Fatalf("SaveTextExact() error = %v", err)
	}

	back, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}

	for i := range taps {
		if back[i] != taps[i] {
			t.Fatalf("tap %d: got %v, want %v", i, back[i], taps[i])
		}
	}
}

func TestSaveLoadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filter_coeffs.txt")

	taps := MustDesign(Spec{Length: 31, Up: 3, Down: 7})
	if err := taps.SaveText(path); err != nil {
		t.Fatalf("SaveText() error = %v", err)
	}

	back, err := LoadText(path)
	if err != nil {
		t.Fatalf("LoadText() error = %v", err)
	}

	if back.Len() != 31 {
		t.Fatalf("len = %d, want 31", back.Len())
	}
}

func TestReadTextErrors(t *testing.T) {
	if _, err := ReadText(strings.NewReader("\n# header only\n")); !errors.Is(err, ErrEmptyTaps) {
		t.Fatalf("expected ErrEmptyTaps, got %v", err)
	}

	if _, err := ReadText(strings.NewReader("0.1\nabc\n")); err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 parse error, got %v", err)
	}
}
