package audio_test

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BerylCAtieno/yodelstar-api/internal/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	. "github.com/smartystreets/goconvey/convey"
)

// makeWAV writes one second of 16-bit mono silence at 8kHz.
func makeWAV(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, 8000, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{SampleRate: 8000, NumChannels: 1},
		Data:           make([]int, 8000),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDecodeBase64(t *testing.T) {
	Convey("Given base64 payloads", t, func() {
		raw := []byte("RIFF....WAVE")
		encoded := base64.StdEncoding.EncodeToString(raw)

		Convey("Plain standard encoding decodes", func() {
			got, err := audio.DecodeBase64(encoded)
			So(err, ShouldBeNil)
			So(got, ShouldResemble, raw)
		})

		Convey("A data URL header and line breaks are tolerated", func() {
			got, err := audio.DecodeBase64("data:audio/wav;base64," + encoded[:8] + "\n" + encoded[8:])
			So(err, ShouldBeNil)
			So(got, ShouldResemble, raw)
		})

		Convey("Garbage is rejected", func() {
			_, err := audio.DecodeBase64("not*base64!")
			So(errors.Is(err, audio.ErrInvalidBase64), ShouldBeTrue)
		})
	})
}

func TestProbe(t *testing.T) {
	Convey("Given a generated WAV file", t, func() {
		data := makeWAV(t)

		Convey("The header is read", func() {
			info, err := audio.Probe(data)
			So(err, ShouldBeNil)
			So(info.SampleRate, ShouldEqual, 8000)
			So(info.Channels, ShouldEqual, 1)
			So(info.BitDepth, ShouldEqual, 16)
			So(info.Duration, ShouldEqual, time.Second)
		})
	})

	Convey("Given bytes that are not WAV", t, func() {
		_, err := audio.Probe([]byte("definitely not audio"))
		So(errors.Is(err, audio.ErrNotWAV), ShouldBeTrue)
	})
}
