package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"medfollow-client/internal/backend"
	"medfollow-client/internal/dto"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/pkg/logger"
	"medfollow-client/internal/repository/contract"
	"medfollow-client/internal/repository/memory"
	"medfollow-client/internal/scheduler"
	"medfollow-client/internal/session"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const (
	navDelay    = 400 * time.Millisecond
	toastFor    = 3500 * time.Millisecond
	bannerFor   = 5000 * time.Millisecond
	returnDelay = 1500 * time.Millisecond
)

var testDoctors = []string{"Dr. Sharma (Cardiologist)", "Dr. Verma (Orthopedic)"}

// fakeDecisionService serves the four decision endpoints from swappable handlers
// and records every request body it receives.
type fakeDecisionService struct {
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	bodies   map[string][][]byte
	server   *httptest.Server
}

func newFakeDecisionService(t *testing.T) *fakeDecisionService {
	f := &fakeDecisionService{
		handlers: map[string]http.HandlerFunc{
			backend.PathAnalyze:    respond(http.StatusOK, dto.AnalyzeVitalsResponse{Severity: "low", Message: "All good"}),
			backend.PathBook:       respond(http.StatusOK, dto.BookAppointmentResponse{Status: "confirmed"}),
			backend.PathPostOpChat: echoChat("low", false),
			backend.PathCareCall:   respond(http.StatusOK, dto.CareCallResponse{Status: "success"}),
		},
		bodies: make(map[string][][]byte),
	}

	r := chi.NewRouter()
	for _, path := range []string{backend.PathAnalyze, backend.PathBook, backend.PathPostOpChat, backend.PathCareCall} {
		path := path
		r.Post(path, func(w http.ResponseWriter, req *http.Request) {
			body, _ := io.ReadAll(req.Body)
			f.mu.Lock()
			f.bodies[path] = append(f.bodies[path], body)
			h := f.handlers[path]
			f.mu.Unlock()

			req.Body = io.NopCloser(bytes.NewReader(body))
			h(w, req)
		})
	}
	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDecisionService) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = h
}

func (f *fakeDecisionService) calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies[path])
}

func (f *fakeDecisionService) lastRequest(t *testing.T, path string, out interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bodies := f.bodies[path]
	require.NotEmpty(t, bodies, "no request to %s", path)
	require.NoError(t, json.Unmarshal(bodies[len(bodies)-1], out))
}

func respond(status int, body interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func echoChat(severity string, alert bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.PostOpChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		respond(http.StatusOK, dto.PostOpChatResponse{
			ResponseText: "reply: " + req.Message,
			Severity:     severity,
			Alert:        alert,
		})(w, r)
	}
}

// gated holds h until the returned release is called or the request is abandoned.
func gated(t *testing.T, h http.HandlerFunc) (http.HandlerFunc, func()) {
	ch := make(chan struct{})
	var once sync.Once
	release := func() { once.Do(func() { close(ch) }) }
	t.Cleanup(release)

	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-ch:
			h(w, r)
		case <-r.Context().Done():
		}
	}, release
}

type recognition struct {
	text string
	err  error
}

type fakeRecognizer struct {
	started chan language.Tag
	results chan recognition
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{started: make(chan language.Tag, 4), results: make(chan recognition, 4)}
}

func (f *fakeRecognizer) Listen(ctx context.Context, tag language.Tag) (string, error) {
	f.started <- tag
	select {
	case r := <-f.results:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type spoken struct {
	text string
	tag  string
}

type fakeSynthesizer struct {
	mu  sync.Mutex
	log []spoken
}

func (f *fakeSynthesizer) Speak(_ context.Context, text string, tag language.Tag) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.log = append(f.log, spoken{text: text, tag: tag.String()})
	return nil
}

func (f *fakeSynthesizer) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.log))
	for i, s := range f.log {
		out[i] = s.text
	}
	return out
}

func (f *fakeSynthesizer) spoke(text string) bool {
	for _, s := range f.texts() {
		if s == text {
			return true
		}
	}
	return false
}

type countingRenderer struct {
	mu    sync.Mutex
	count int
	last  view.State
}

func (r *countingRenderer) Render(s view.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	r.last = s
}

func (r *countingRenderer) renders() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

type harness struct {
	t        *testing.T
	orch     *Orchestrator
	clock    *scheduler.ManualScheduler
	backend  *fakeDecisionService
	recog    *fakeRecognizer
	synth    *fakeSynthesizer
	prefs    contract.PreferenceRepository
	renderer *countingRenderer
	resolver *i18n.Resolver
}

type option func(*Deps)

func withoutRecognition() option {
	return func(d *Deps) { d.Recognition = speech.Unavailable[speech.Recognizer]() }
}

func withRecognizer(r speech.Recognizer) option {
	return func(d *Deps) { d.Recognition = speech.Available(r) }
}

func withPreferenceRepository(r contract.PreferenceRepository) option {
	return func(d *Deps) { d.Preferences = r }
}

// slowPreferences blocks every Save until released, then stores into the
// wrapped repository.
type slowPreferences struct {
	contract.PreferenceRepository
	release chan struct{}
	once    sync.Once
}

func newSlowPreferences(t *testing.T) *slowPreferences {
	p := &slowPreferences{PreferenceRepository: memory.NewPreferenceRepository(), release: make(chan struct{})}
	t.Cleanup(p.unblock)
	return p
}

func (p *slowPreferences) unblock() {
	p.once.Do(func() { close(p.release) })
}

func (p *slowPreferences) Save(ctx context.Context, prefs session.Preferences) error {
	select {
	case <-p.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	return p.PreferenceRepository.Save(ctx, prefs)
}

func withPreferences(p session.Preferences) option {
	return func(d *Deps) { d.Session = session.New(p) }
}

func newHarness(t *testing.T, opts ...option) *harness {
	t.Helper()

	catalog, err := i18n.LoadCatalog()
	require.NoError(t, err)

	h := &harness{
		t:        t,
		clock:    scheduler.NewManualScheduler(),
		backend:  newFakeDecisionService(t),
		recog:    newFakeRecognizer(),
		synth:    &fakeSynthesizer{},
		prefs:    memory.NewPreferenceRepository(),
		renderer: &countingRenderer{},
		resolver: i18n.NewResolver(catalog),
	}

	deps := Deps{
		Session:     session.New(session.Preferences{}),
		Resolver:    h.resolver,
		Backend:     backend.NewHTTPClient(h.backend.server.URL, 5*time.Second),
		Recognition: speech.Available[speech.Recognizer](h.recog),
		Synthesis:   speech.Available[speech.Synthesizer](h.synth),
		Preferences: h.prefs,
		Renderer:    h.renderer,
		Scheduler:   h.clock,
		Logger:      logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	h.orch = New(Config{
		NavTransitionDelay: navDelay,
		ToastDuration:      toastFor,
		BannerDuration:     bannerFor,
		BookingReturnDelay: returnDelay,
		Doctors:            testDoctors,
	}, deps)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = h.orch.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-stopped
	})
	return h
}

// dispatch queues a and returns once the loop has applied it.
func (h *harness) dispatch(a Action) {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(h.t, h.orch.Dispatch(ctx, a))
	h.state()
}

func (h *harness) state() view.State {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	st, err := h.orch.Snapshot(ctx)
	require.NoError(h.t, err)
	return st
}

func (h *harness) eventually(cond func(view.State) bool, msg string) {
	h.t.Helper()
	assert.Eventually(h.t, func() bool { return cond(h.state()) }, 2*time.Second, 5*time.Millisecond, msg)
}

// advance moves the virtual clock and waits until the loop has run every
// callback that fell due. Queued events are drained first so the timers they
// schedule are measured from the current virtual time.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.state()
	h.clock.Advance(d)
	h.state()
}

func (h *harness) goTo(screen string) {
	h.t.Helper()
	h.dispatch(&Navigate{Screen: screen})
	h.advance(navDelay)
	require.Equal(h.t, screen, string(h.state().Screen))
}

func (h *harness) set(field, value string) {
	h.dispatch(&SetInput{Field: field, Value: value})
}

func (h *harness) en(key i18n.Key) string {
	return h.resolver.Resolve(session.English, key)
}

func (h *harness) toastIs(key i18n.Key) func(view.State) bool {
	return func(st view.State) bool {
		return st.Toast.Visible && st.Toast.Message == h.en(key)
	}
}
