// Package wavio reads and writes 16-bit PCM WAV files.
//
// Writers always emit the canonical 44-byte header. Readers accept any
// chunk order and skip chunks other than "fmt " and "data".
package wavio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	// ErrNotWAV indicates a stream without a RIFF/WAVE signature.
	ErrNotWAV = errors.New("wavio: not a RIFF/WAVE stream")
	// ErrUnsupported indicates a format other than 16-bit integer PCM.
	ErrUnsupported = errors.New("wavio: only 16-bit PCM is supported")
	// ErrMissingChunk indicates a stream without a fmt or data chunk.
	ErrMissingChunk = errors.New("wavio: missing chunk")
	// ErrInvalidClip indicates a clip that cannot be encoded.
	ErrInvalidClip = errors.New("wavio: invalid clip")
)

const (
	formatPCM     = 1
	bitsPerSample = 16
	headerSize    = 44
)

// Clip is interleaved 16-bit PCM audio.
type Clip struct {
	SampleRate int
	Channels   int
	Samples    []int16
}

// Frames returns the number of complete frames in the clip.
func (c Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}

	return len(c.Samples) / c.Channels
}

// Duration returns the clip length in seconds.
func (c Clip) Duration() float64 {
	if c.SampleRate <= 0 {
		return 0
	}

	return float64(c.Frames()) / float64(c.SampleRate)
}

// header is the canonical 44-byte PCM WAV header.
type header struct {
	RIFF          [4]byte
	ChunkSize     uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// Write encodes c as a 44-byte-header PCM WAV stream.
func Write(w io.Writer, c Clip) error {
	if c.Channels <= 0 || c.Channels > 0xffff || c.SampleRate <= 0 || len(c.Samples)%c.Channels != 0 {
		return fmt.Errorf("%w: rate=%d channels=%d samples=%d",
			ErrInvalidClip, c.SampleRate, c.Channels, len(c.Samples))
	}

	blockAlign := c.Channels * bitsPerSample / 8
	dataSize := len(c.Samples) * 2

	h := header{
		ChunkSize:     uint32(headerSize - 8 + dataSize),
		FmtSize:       16,
		AudioFormat:   formatPCM,
		NumChannels:   uint16(c.Channels),
		SampleRate:    uint32(c.SampleRate),
		ByteRate:      uint32(c.SampleRate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: bitsPerSample,
		DataSize:      uint32(dataSize),
	}
	copy(h.RIFF[:], "RIFF")
	copy(h.WAVE[:], "WAVE")
	copy(h.Fmt[:], "fmt ")
	copy(h.Data[:], "data")

	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, &h); err != nil {
		return fmt.Errorf("wavio: write header: %w", err)
	}

	if err := binary.Write(bw, binary.LittleEndian, c.Samples); err != nil {
		return fmt.Errorf("wavio: write samples: %w", err)
	}

	return bw.Flush()
}

// Read decodes a 16-bit PCM WAV stream. A data chunk shorter than its
// declared size is read up to the last complete frame.
func Read(r io.Reader) (Clip, error) {
	br := bufio.NewReader(r)

	var riff [12]byte
	if _, err := io.ReadFull(br, riff[:]); err != nil {
		return Clip{}, fmt.Errorf("%w: %w", ErrNotWAV, err)
	}

	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Clip{}, ErrNotWAV
	}

	var (
		format  fmtChunk
		haveFmt bool
	)

	for {
		var id [4]byte

		var size uint32
		if _, err := io.ReadFull(br, id[:]); err != nil {
			if haveFmt {
				return Clip{}, fmt.Errorf("%w: data", ErrMissingChunk)
			}

			return Clip{}, fmt.Errorf("%w: fmt", ErrMissingChunk)
		}

		if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
			return Clip{}, fmt.Errorf("wavio: chunk %q: %w", id[:], err)
		}

		switch string(id[:]) {
		case "fmt ":
			if size < 16 {
				return Clip{}, fmt.Errorf("%w: fmt chunk of %d bytes", ErrUnsupported, size)
			}

			if err := binary.Read(br, binary.LittleEndian, &format); err != nil {
				return Clip{}, fmt.Errorf("wavio: fmt chunk: %w", err)
			}

			if err := skip(br, int64(size-16)+int64(size&1)); err != nil {
				return Clip{}, err
			}

			if format.AudioFormat != formatPCM || format.BitsPerSample != bitsPerSample || format.NumChannels == 0 {
				return Clip{}, fmt.Errorf("%w: format=%d bits=%d channels=%d",
					ErrUnsupported, format.AudioFormat, format.BitsPerSample, format.NumChannels)
			}

			haveFmt = true
		case "data":
			if !haveFmt {
				return Clip{}, fmt.Errorf("%w: fmt before data", ErrMissingChunk)
			}

			return readData(br, format, size)
		default:
			if err := skip(br, int64(size)+int64(size&1)); err != nil {
				return Clip{}, err
			}
		}
	}
}

func readData(r io.Reader, format fmtChunk, size uint32) (Clip, error) {
	channels := int(format.NumChannels)

	raw, err := io.ReadAll(io.LimitReader(r, int64(size)))
	if err != nil {
		return Clip{}, fmt.Errorf("wavio: data chunk: %w", err)
	}

	frameBytes := channels * 2
	n := len(raw) / frameBytes * channels

	samples := make([]int16, n)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return Clip{SampleRate: int(format.SampleRate), Channels: channels, Samples: samples}, nil
}

func skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}

	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("wavio: skip chunk: %w", err)
	}

	return nil
}

// ReadFile reads a WAV file from disk.
func ReadFile(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	c, err := Read(f)
	if err != nil {
		return Clip{}, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// WriteFile writes c to path, replacing any existing file.
func WriteFile(path string, c Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, c); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}
