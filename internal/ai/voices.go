package ai

import "math/rand"

// Voices is the fixed set of narration voices rotated across audio blocks.
var Voices = []string{"alloy", "echo", "fable", "nova", "onyx", "shimmer"}

// RandomVoice picks a voice pseudo-randomly for variety between narrations.
func RandomVoice() string {
	return Voices[rand.Intn(len(Voices))]
}
