package audio

import (
	"github.com/lixenwraith/vanish/constants"
)

// SoundType represents the app's cues
type SoundType int

const (
	SoundVanish SoundType = iota // Entry wiped after a pause
	SoundRecord                  // Run set a new high score
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundVanish:
		return "vanish"
	case SoundRecord:
		return "record"
	default:
		return "unknown"
	}
}

// AudioConfig controls cue playback
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes [soundTypeCount]float64
}

// DefaultAudioConfig returns audio defaults
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: constants.DefaultMasterVolume,
		SampleRate:   constants.DefaultSampleRate,
		EffectVolumes: [soundTypeCount]float64{
			SoundVanish: 0.8,
			SoundRecord: 0.7,
		},
	}
}
