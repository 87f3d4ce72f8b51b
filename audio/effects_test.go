package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// constant streams +1 forever
var constant = beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
})

// TestToneLength verifies a tone stops after its duration
func TestToneLength(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := tone(100.0, false, 10*time.Millisecond, rate)

	samples := make([][2]float64, 64)
	n, ok := s.Stream(samples)
	if n != 10 || !ok {
		t.Fatalf("Expected 10 samples and ok, got n=%d ok=%v", n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Errorf("Sample %d out of range: %f", i, samples[i][0])
		}
	}

	n, ok = s.Stream(samples)
	if n != 0 || ok {
		t.Errorf("Expected drained stream, got n=%d ok=%v", n, ok)
	}
}

// TestToneAboveNyquistIsSilent verifies a low sample rate degrades to silence
func TestToneAboveNyquistIsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := tone(880.0, false, 10*time.Millisecond, rate)

	samples := make([][2]float64, 64)
	n, _ := s.Stream(samples)
	if n != 10 {
		t.Fatalf("Expected 10 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Sample %d not silent: %f", i, samples[i][0])
		}
	}
}

// TestNoiseRange verifies noise stays in [-1, 1] with equal channels
func TestNoiseRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	s := noise(10*time.Millisecond, rate)

	samples := make([][2]float64, 1024)
	n, _ := s.Stream(samples)
	if n != rate.N(10*time.Millisecond) {
		t.Fatalf("Expected %d samples, got %d", rate.N(10*time.Millisecond), n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 || samples[i][0] != samples[i][1] {
			t.Fatalf("Sample %d invalid: %v", i, samples[i])
		}
	}
}

// TestFadeShape verifies attack starts silent, sustain is full and release falls
func TestFadeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	f := newFade(constant, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	samples := make([][2]float64, 128)
	n, _ := f.Stream(samples)
	if n != 100 {
		t.Fatalf("Expected fade to stop at 100 samples, got %d", n)
	}

	if samples[0][0] != 0 {
		t.Errorf("Expected silent first sample, got %f", samples[0][0])
	}
	if samples[50][0] != 1.0 {
		t.Errorf("Expected full sustain, got %f", samples[50][0])
	}
	if samples[99][0] >= samples[90][0] {
		t.Errorf("Expected release to fade: %f >= %f", samples[99][0], samples[90][0])
	}

	n, ok := f.Stream(samples)
	if n != 0 || ok {
		t.Errorf("Expected drained fade, got n=%d ok=%v", n, ok)
	}
}

// TestSoundEffectsProduceAudio verifies each cue streams non-silent samples
func TestSoundEffectsProduceAudio(t *testing.T) {
	cfg := DefaultAudioConfig()

	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Fatalf("%s: nil streamer", st)
		}

		buf := make([][2]float64, 4096)
		nonZero := false
		for i := 0; i < 4 && !nonZero; i++ {
			n, ok := s.Stream(buf)
			for j := 0; j < n; j++ {
				if buf[j][0] != 0 {
					nonZero = true
					break
				}
			}
			if !ok {
				break
			}
		}
		if !nonZero {
			t.Errorf("%s: expected audible samples", st)
		}
	}
}

// TestZeroVolumeIsSilent verifies the Log2(0) guard
func TestZeroVolumeIsSilent(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	s := CreateRecordSound(cfg)
	buf := make([][2]float64, 512)
	n, _ := s.Stream(buf)
	for i := 0; i < n; i++ {
		if buf[i][0] != 0 {
			t.Fatalf("Sample %d not silent: %f", i, buf[i][0])
		}
	}
}

func TestUnknownSoundType(t *testing.T) {
	if GetSoundEffect(soundTypeCount, DefaultAudioConfig()) != nil {
		t.Error("Expected nil for unknown sound type")
	}
}
