package constants

import "time"

// Audio defaults
const (
	// DefaultSampleRate is the speaker sample rate used when config omits one
	DefaultSampleRate = 44100

	// DefaultMasterVolume scales every cue, 0.0-1.0
	DefaultMasterVolume = 0.6

	// SpeakerBufferDuration sizes the speaker buffer
	SpeakerBufferDuration = 100 * time.Millisecond
)

// Vanish Sound Timing (noise whoosh when the text is wiped)
const (
	VanishSoundDuration = 300 * time.Millisecond
	VanishSoundAttack   = 20 * time.Millisecond
	VanishSoundRelease  = 250 * time.Millisecond
)

// Record Sound Timing (two-tone bell on a new high score)
const (
	RecordSoundDuration           = 600 * time.Millisecond
	RecordSoundAttack             = 5 * time.Millisecond
	RecordSoundFundamentalRelease = 550 * time.Millisecond
	RecordSoundOvertoneRelease    = 200 * time.Millisecond
)
