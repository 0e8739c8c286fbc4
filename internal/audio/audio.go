// Package audio decodes recordings received over the wire and reads their
// WAV headers for logging.
package audio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-audio/wav"
)

// MIMEType is the content type attached to every recording sent upstream.
const MIMEType = "audio/wav"

var (
	ErrInvalidBase64 = errors.New("invalid base64")
	ErrNotWAV        = errors.New("not a wav file")
)

// DecodeBase64 decodes a base64 recording. A leading data URL header such as
// "data:audio/wav;base64," is tolerated. Whitespace and line breaks are ignored.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, ","); i >= 0 {
			s = s[i+1:]
		}
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return data, nil
}

// Info describes a WAV recording's format.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
}

// Probe reads the WAV header of data.
func Probe(data []byte) (Info, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return Info{}, ErrNotWAV
	}

	info := Info{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
	if err := dec.FwdToPCM(); err != nil {
		return info, fmt.Errorf("%w: %v", ErrNotWAV, err)
	}
	bytesPerSecond := int64(info.SampleRate) * int64(info.Channels) * int64(info.BitDepth) / 8
	if bytesPerSecond > 0 {
		info.Duration = time.Duration(dec.PCMLen() * int64(time.Second) / bytesPerSecond)
	}
	return info, nil
}
