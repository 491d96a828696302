package speech

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/text/language"
)

type cachedAudio struct {
	audio []byte
	mime  string
}

// HTTPSynthesizer renders speech through a TTS service and hands the audio to a
// sink. Audio is cached per (tag, text) so repeated announcements skip the service.
type HTTPSynthesizer struct {
	client TTSClient
	sink   Sink
	cache  *cache.Cache
}

func NewHTTPSynthesizer(client TTSClient, sink Sink, ttl time.Duration) *HTTPSynthesizer {
	return &HTTPSynthesizer{
		client: client,
		sink:   sink,
		cache:  cache.New(ttl, 2*ttl),
	}
}

func (s *HTTPSynthesizer) Speak(ctx context.Context, text string, tag language.Tag) error {
	key := tag.String() + "|" + text

	var clip cachedAudio
	if x, found := s.cache.Get(key); found {
		clip = x.(cachedAudio)
	} else {
		audio, mime, err := s.client.Synthesize(ctx, text, tag)
		if err != nil {
			return fmt.Errorf("synthesize: %w", err)
		}
		clip = cachedAudio{audio: audio, mime: mime}
		s.cache.Set(key, clip, cache.DefaultExpiration)
	}

	return s.sink.Utter(ctx, Utterance{
		Text:  text,
		Lang:  tag.String(),
		Audio: clip.audio,
		MIME:  clip.mime,
	})
}

// RelaySynthesizer forwards text and tag so the renderer's native synthesis speaks.
type RelaySynthesizer struct {
	sink Sink
}

func NewRelaySynthesizer(sink Sink) *RelaySynthesizer {
	return &RelaySynthesizer{sink: sink}
}

func (s *RelaySynthesizer) Speak(ctx context.Context, text string, tag language.Tag) error {
	return s.sink.Utter(ctx, Utterance{Text: text, Lang: tag.String()})
}
