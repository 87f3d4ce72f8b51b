package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/vanish/constants"
)

// tone is a sine or saw of fixed length; a rate too low for freq yields silence
func tone(freq float64, saw bool, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)

	var (
		s   beep.Streamer
		err error
	)
	if saw {
		s, err = generators.SawtoothTone(rate, freq)
	} else {
		s, err = generators.SineTone(rate, freq)
	}
	if err != nil {
		return generators.Silence(n)
	}
	return beep.Take(n, s)
}

// noise is white noise of fixed length
func noise(d time.Duration, rate beep.SampleRate) beep.Streamer {
	return beep.Take(rate.N(d), beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := rand.Float64()*2 - 1
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	}))
}

// fade ramps a cue in over attack and out over its last release.
// length is the cue's full duration; samples past it are dropped.
type fade struct {
	s       beep.Streamer
	pos     int
	length  int
	attack  int
	release int
}

func newFade(s beep.Streamer, length, attack, release time.Duration, rate beep.SampleRate) *fade {
	return &fade{
		s:       s,
		length:  rate.N(length),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

// gain at sample pos; attack and release overlap by taking the quieter ramp
func (f *fade) gain(pos int) float64 {
	g := 1.0
	if f.attack > 0 && pos < f.attack {
		g = float64(pos) / float64(f.attack)
	}
	if left := f.length - pos; f.release > 0 && left < f.release {
		g = math.Min(g, float64(left)/float64(f.release))
	}
	return g
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	if left := f.length - f.pos; left < len(samples) {
		if left <= 0 {
			return 0, false
		}
		samples = samples[:left]
	}

	n, ok := f.s.Stream(samples)
	for i := 0; i < n; i++ {
		g := f.gain(f.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.s.Err() }

// newVolume scales s linearly by vol.
// math.Log2(0) is -Inf, so zero volume is mapped to Silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateVanishSound is the cue for a wiped entry: a hiss over a low saw,
// both fading out across most of the cue
func CreateVanishSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.VanishSoundDuration

	hiss := newFade(noise(d, rate), d, constants.VanishSoundAttack, constants.VanishSoundRelease, rate)
	body := newFade(tone(110.0, true, d, rate), d, constants.VanishSoundAttack, constants.VanishSoundRelease, rate)

	mixed := beep.Mix(
		newVolume(hiss, 0.6),
		newVolume(body, 0.25),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundVanish]*cfg.MasterVolume)
}

// CreateRecordSound is the cue for a new high score: A5 with its octave,
// the octave dying away first like a struck bell
func CreateRecordSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := constants.RecordSoundDuration

	fund := newFade(tone(880.0, false, d, rate), d, constants.RecordSoundAttack, constants.RecordSoundFundamentalRelease, rate)
	over := newFade(tone(1760.0, false, d, rate), d, constants.RecordSoundAttack, constants.RecordSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
	return newVolume(mixed, cfg.EffectVolumes[SoundRecord]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for soundType, nil if unknown
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundVanish:
		return CreateVanishSound(cfg)
	case SoundRecord:
		return CreateRecordSound(cfg)
	default:
		return nil
	}
}
