package waveform

import (
	"context"
	"errors"
)

var (
	// ErrUnsupportedEnvironment means no audio decoding facility exists in
	// this environment. It does not go away by retrying.
	ErrUnsupportedEnvironment = errors.New("audio decoding is not available in this environment")

	// ErrDecodeFailure means the payload could not be parsed as audio.
	// Selecting a different file may succeed; retrying the same one will not.
	ErrDecodeFailure = errors.New("could not decode audio")
)

// User-facing messages attached to render states.
const (
	DefaultPlaceholder = "Select an audio file to preview its waveform."
	PendingMessage     = "Decoding audio..."
	ReasonUnsupported  = "Waveform preview is not supported in this environment."
	ReasonUndecodable  = "Could not decode this file for a waveform preview."
)

// Decoder converts an audio payload into PCM samples. Implementations should
// return promptly once ctx is cancelled.
type Decoder interface {
	Decode(ctx context.Context, src AudioSource) (*DecodedAudio, error)
}

// DecoderFunc adapts a plain function to the Decoder interface.
type DecoderFunc func(ctx context.Context, src AudioSource) (*DecodedAudio, error)

func (f DecoderFunc) Decode(ctx context.Context, src AudioSource) (*DecodedAudio, error) {
	return f(ctx, src)
}

// Unavailable is the decoder used when the environment has no way to decode
// audio. Every call fails with ErrUnsupportedEnvironment.
type Unavailable struct{}

func (Unavailable) Decode(context.Context, AudioSource) (*DecodedAudio, error) {
	return nil, ErrUnsupportedEnvironment
}

// FailureReason maps a decode error onto one of the two user-facing reasons.
func FailureReason(err error) string {
	if errors.Is(err, ErrUnsupportedEnvironment) {
		return ReasonUnsupported
	}
	return ReasonUndecodable
}
