package orchestrator

import (
	"context"
	"errors"
	"time"

	"medfollow-client/internal/alert"
	"medfollow-client/internal/backend"
	"medfollow-client/internal/flow"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/journal"
	"medfollow-client/internal/navigator"
	"medfollow-client/internal/pkg/logger"
	"medfollow-client/internal/repository/contract"
	"medfollow-client/internal/scheduler"
	"medfollow-client/internal/session"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"
)

const module = "ORCHESTRATOR"

var ErrStopped = errors.New("orchestrator stopped")

type Config struct {
	NavTransitionDelay time.Duration
	ToastDuration      time.Duration
	BannerDuration     time.Duration
	BookingReturnDelay time.Duration
	Doctors            []string
}

type Deps struct {
	Session     *session.Session
	Resolver    *i18n.Resolver
	Backend     backend.DecisionService
	Recognition speech.Recognition
	Synthesis   speech.Synthesis
	Preferences contract.PreferenceRepository
	Journal     journal.Recorder
	Renderer    view.Renderer
	Scheduler   scheduler.Scheduler
	Logger      logger.ILogger
}

// Event is processed on the loop goroutine. User actions, backend completions,
// recognition results and timer firings are all events.
type Event interface {
	apply(o *Orchestrator)
}

// Orchestrator owns the session and every piece of UI state. All of it is
// touched only by the goroutine running Run.
type Orchestrator struct {
	cfg      Config
	sess     *session.Session
	resolver *i18n.Resolver
	backend  backend.DecisionService
	recog    speech.Recognition
	synth    speech.Synthesis
	prefs    contract.PreferenceRepository
	journal  journal.Recorder
	renderer view.Renderer
	log      logger.ILogger

	sched      scheduler.Scheduler
	nav        *navigator.Navigator
	alerts     *alert.Center
	transcript *flow.Transcript
	form       flow.Form

	vitals         flow.VitalsPanel
	openVital      string
	confirm        *view.Confirm
	pendingBooking *flow.Booking
	recording      bool
	listenSeq      uint64
	stopListening  context.CancelFunc

	ctx     context.Context
	inbox   chan Event
	done    chan struct{}
	prefsCh chan session.Preferences
}

func New(cfg Config, deps Deps) *Orchestrator {
	o := &Orchestrator{
		cfg:        cfg,
		sess:       deps.Session,
		resolver:   deps.Resolver,
		backend:    deps.Backend,
		recog:      deps.Recognition,
		synth:      deps.Synthesis,
		prefs:      deps.Preferences,
		journal:    deps.Journal,
		renderer:   deps.Renderer,
		log:        deps.Logger,
		transcript: flow.NewTranscript(),
		form:       flow.Form{},
		ctx:        context.Background(),
		inbox:      make(chan Event, 64),
		done:       make(chan struct{}),
		prefsCh:    make(chan session.Preferences, 1),
	}
	if o.journal == nil {
		o.journal = journal.NopRecorder{}
	}
	if o.renderer == nil {
		o.renderer = view.RendererFunc(func(view.State) {})
	}
	if o.log == nil {
		o.log = logger.NewNopLogger()
	}
	if len(cfg.Doctors) > 0 {
		o.form.Set(flow.FieldDoctor, cfg.Doctors[0])
	}

	o.sched = scheduler.Bind(deps.Scheduler, func(fn func()) { o.post(timerFired{fn: fn}) })
	o.nav = navigator.New(o.sched, cfg.NavTransitionDelay)
	o.alerts = alert.NewCenter(o.sched, cfg.ToastDuration, cfg.BannerDuration)
	o.nav.OnActivate(func(s navigator.Screen) {
		o.log.Debug(module, "Screen activated", map[string]interface{}{"screen": s, "visit": o.nav.Visit()})
	})
	return o
}

// Run processes events until ctx is cancelled. It must be called exactly once.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.ctx = ctx
	defer close(o.done)
	defer o.sched.Stop()

	go o.savePreferences(ctx)

	o.log.Info(module, "Session started", map[string]interface{}{
		"language": o.sess.Language,
		"theme":    o.sess.Theme,
	})
	o.render()

	for {
		select {
		case <-ctx.Done():
			if o.stopListening != nil {
				o.stopListening()
			}
			return ctx.Err()
		case ev := <-o.inbox:
			ev.apply(o)
			if _, ok := ev.(snapshotRequest); !ok {
				o.render()
			}
		}
	}
}

// Dispatch queues a user action.
func (o *Orchestrator) Dispatch(ctx context.Context, a Action) error {
	select {
	case o.inbox <- a:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-o.done:
		return ErrStopped
	}
}

// Snapshot returns the current view state as seen after every queued event.
func (o *Orchestrator) Snapshot(ctx context.Context) (view.State, error) {
	reply := make(chan view.State, 1)
	select {
	case o.inbox <- snapshotRequest{reply: reply}:
	case <-ctx.Done():
		return view.State{}, ctx.Err()
	case <-o.done:
		return view.State{}, ErrStopped
	}

	select {
	case st := <-reply:
		return st, nil
	case <-ctx.Done():
		return view.State{}, ctx.Err()
	case <-o.done:
		return view.State{}, ErrStopped
	}
}

// post hands a completion back to the loop. It never blocks past shutdown.
func (o *Orchestrator) post(ev Event) {
	select {
	case o.inbox <- ev:
	case <-o.done:
	}
}

func (o *Orchestrator) project() view.State {
	return view.Project(o.resolver, view.Source{
		Session:        o.sess,
		Nav:            o.nav,
		Alerts:         o.alerts,
		Transcript:     o.transcript,
		Form:           o.form,
		Doctors:        o.cfg.Doctors,
		OpenVital:      o.openVital,
		Vitals:         o.vitals,
		Recording:      o.recording,
		VoiceAvailable: o.recog.Available(),
		Confirm:        o.confirm,
	})
}

func (o *Orchestrator) render() {
	o.renderer.Render(o.project())
}

type snapshotRequest struct {
	reply chan view.State
}

func (e snapshotRequest) apply(o *Orchestrator) {
	e.reply <- o.project()
}

type timerFired struct {
	fn func()
}

func (e timerFired) apply(*Orchestrator) { e.fn() }

// text resolves key in the session language.
func (o *Orchestrator) text(key i18n.Key) string {
	return o.resolver.Resolve(o.sess.Language, key)
}

func (o *Orchestrator) toast(key i18n.Key) {
	o.alerts.ShowToast(o.text(key))
}

// fail turns an error into the toast the user sees. Validation errors carry
// their own message; anything else is a connectivity failure.
func (o *Orchestrator) fail(op string, err error) {
	var verr *flow.ValidationError
	if errors.As(err, &verr) {
		o.log.Debug(module, "Validation failed", map[string]interface{}{"op": op, "key": verr.Key.String()})
		o.toast(verr.Key)
		return
	}
	o.log.Warn(module, "Decision service call failed", map[string]interface{}{"op": op, "error": err.Error()})
	o.toast(i18n.KeyAlertServerErr)
}

// speak is fire-and-forget; synthesis failures are only logged.
func (o *Orchestrator) speak(text string) {
	synth, ok := o.synth.Get()
	if !ok || text == "" {
		return
	}
	tag := o.sess.Language.SpeechTag()
	go func() {
		if err := synth.Speak(o.ctx, text, tag); err != nil {
			o.log.Warn(module, "Speech synthesis failed", map[string]interface{}{"lang": tag.String(), "error": err.Error()})
		}
	}()
}

// escalate raises the banner, announces the emergency and journals it.
func (o *Orchestrator) escalate(source string) {
	o.alerts.Escalate(o.text(i18n.KeyEmergencyBanner))
	o.speak(o.text(i18n.KeySpeakEmergency))
	o.journal.EmergencyEscalated(o.ctx, o.sess, source)
	o.log.Warn(module, "Emergency escalated", map[string]interface{}{
		"source":  source,
		"patient": o.sess.PatientName,
	})
}

// persistPreferences hands the latest preferences to the saver. The queue holds
// one value; an unsaved older value is replaced. Only the loop sends, so the
// retry after draining always succeeds.
func (o *Orchestrator) persistPreferences() {
	prefs := o.sess.Preferences()
	for {
		select {
		case o.prefsCh <- prefs:
			return
		default:
		}
		select {
		case <-o.prefsCh:
			o.log.Debug(module, "Superseded unsaved preferences", nil)
		default:
		}
	}
}

func (o *Orchestrator) savePreferences(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case prefs := <-o.prefsCh:
			if o.prefs == nil {
				continue
			}
			if err := o.prefs.Save(ctx, prefs); err != nil {
				o.log.Error(module, "Failed to persist preferences", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
