package sinc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyTaps indicates a coefficient listing without any values.
var ErrEmptyTaps = errors.New("sinc: no coefficients")

// WriteText writes one coefficient per line with 15 fixed decimals, the
// layout consumed by the usual plotting scripts. Fixed decimals lose
// significant digits on small taps (about ten remain near 1e-5); use
// WriteTextExact when the listing is read back as a filter.
func (t Taps) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, v := range t {
		if _, err := fmt.Fprintf(bw, "%.15f\n", v); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteTextExact writes one coefficient per line in the shortest form that
// parses back to the identical float64.
func (t Taps) WriteTextExact(w io.Writer) error {
	bw := bufio.NewWriter(w)

	var buf []byte
	for _, v := range t {
		buf = strconv.AppendFloat(buf[:0], v, 'g', -1, 64)
		buf = append(buf, '\n')

		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// SaveText writes t to path in the WriteText layout.
func (t Taps) SaveText(path string) error {
	return saveText(path, t.WriteText)
}

// SaveTextExact writes t to path in the WriteTextExact layout.
func (t Taps) SaveTextExact(path string) error {
	return saveText(path, t.WriteTextExact)
}

func saveText(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}

// ReadText parses a coefficient listing: one floating-point value per line.
// Blank lines and lines starting with '#' are skipped.
func ReadText(r io.Reader) (Taps, error) {
	var taps Taps

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++

		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("sinc: line %d: %w", line, err)
		}

		taps = append(taps, v)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}

	return taps, nil
}

// LoadText reads a coefficient listing from path.
func LoadText(path string) (Taps, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadText(f)
}
