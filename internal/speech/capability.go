package speech

import (
	"context"
	"errors"

	"golang.org/x/text/language"
)

var (
	ErrUnsupported  = errors.New("speech capability unavailable")
	ErrNotListening = errors.New("no recognition in progress")
	ErrBusy         = errors.New("recognition already in progress")
)

// Recognizer performs one single-shot recognition and returns the transcript.
type Recognizer interface {
	Listen(ctx context.Context, tag language.Tag) (string, error)
}

// Synthesizer speaks text. Callers do not wait on playback.
type Synthesizer interface {
	Speak(ctx context.Context, text string, tag language.Tag) error
}

// Capability is either an available implementation or explicitly absent.
type Capability[T any] struct {
	impl T
	ok   bool
}

func Available[T any](impl T) Capability[T] {
	return Capability[T]{impl: impl, ok: true}
}

func Unavailable[T any]() Capability[T] {
	return Capability[T]{}
}

func (c Capability[T]) Get() (T, bool) {
	return c.impl, c.ok
}

func (c Capability[T]) Available() bool { return c.ok }

type (
	Recognition = Capability[Recognizer]
	Synthesis   = Capability[Synthesizer]
)

// Utterance is what a renderer needs to play speech: the text and tag for native
// synthesis, plus audio when a synthesis service produced it.
type Utterance struct {
	Text  string `json:"text"`
	Lang  string `json:"lang"`
	Audio []byte `json:"audio,omitempty"`
	MIME  string `json:"mime,omitempty"`
}

// Sink delivers utterances to whatever plays them.
type Sink interface {
	Utter(ctx context.Context, u Utterance) error
}
