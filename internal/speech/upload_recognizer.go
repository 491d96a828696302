package speech

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// UploadRecognizer waits for one audio clip pushed by the browser bridge and
// transcribes it. Only one live Listen may be outstanding; a waiter whose
// context is already done is replaced by the next Listen.
type UploadRecognizer struct {
	client STTClient

	mu     sync.Mutex
	waiter *waiter
}

type waiter struct {
	ctx context.Context
	ch  chan []byte
}

func NewUploadRecognizer(client STTClient) *UploadRecognizer {
	return &UploadRecognizer{client: client}
}

// live returns the pending waiter if its Listen can still take audio.
// Callers hold r.mu.
func (r *UploadRecognizer) live() *waiter {
	if r.waiter == nil || r.waiter.ctx.Err() != nil {
		return nil
	}
	return r.waiter
}

func (r *UploadRecognizer) Listen(ctx context.Context, tag language.Tag) (string, error) {
	r.mu.Lock()
	if r.live() != nil {
		r.mu.Unlock()
		return "", ErrBusy
	}
	w := &waiter{ctx: ctx, ch: make(chan []byte, 1)}
	r.waiter = w
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.waiter == w {
			r.waiter = nil
		}
		r.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case audio := <-w.ch:
		text, err := r.client.Transcribe(ctx, audio, tag)
		if err != nil {
			return "", fmt.Errorf("transcribe: %w", err)
		}
		return text, nil
	}
}

// Submit delivers a recorded clip to the pending Listen.
func (r *UploadRecognizer) Submit(audio []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := r.live()
	if w == nil {
		return ErrNotListening
	}
	w.ch <- audio
	r.waiter = nil
	return nil
}

// Listening reports whether a Listen is waiting for audio.
func (r *UploadRecognizer) Listening() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live() != nil
}
