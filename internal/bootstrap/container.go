package bootstrap

import (
	"context"
	"fmt"
	"log"

	"medfollow-client/internal/backend"
	"medfollow-client/internal/config"
	"medfollow-client/internal/controller"
	"medfollow-client/internal/i18n"
	"medfollow-client/internal/journal"
	"medfollow-client/internal/orchestrator"
	"medfollow-client/internal/pkg/logger"
	"medfollow-client/internal/repository/contract"
	"medfollow-client/internal/repository/implementation"
	"medfollow-client/internal/repository/memory"
	"medfollow-client/internal/scheduler"
	"medfollow-client/internal/session"
	"medfollow-client/internal/speech"
	"medfollow-client/internal/view"
	"medfollow-client/internal/websocket"

	pktNats "medfollow-client/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// Options lets a front end other than the browser bridge plug in.
type Options struct {
	// Renderer receives every state in addition to the websocket hub.
	Renderer view.Renderer
	// SpeechSink plays utterances instead of the hub.
	SpeechSink speech.Sink
	// Logger replaces the default file and console logger.
	Logger logger.ILogger
}

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	Orchestrator      *orchestrator.Orchestrator
	SessionController controller.ISessionController
	WebSocketHub      *websocket.Hub
	JournalConsumer   *journal.Consumer

	// Recognizer is set when recognition is backed by an STT service.
	Recognizer *speech.UploadRecognizer

	closers []func()
}

func NewContainer(ctx context.Context, cfg *config.Config, opts Options) (*Container, error) {
	// 1. Core Facades
	var sysLogger logger.ILogger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	if opts.Logger != nil {
		sysLogger = opts.Logger
	}
	c := &Container{Config: cfg, Logger: sysLogger}

	catalog, err := i18n.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		if cfg.I18n.Strict {
			return nil, err
		}
		sysLogger.Warn("BOOT", "Translations incomplete, falling back to English", map[string]interface{}{"error": err.Error()})
	}
	resolver := i18n.NewResolver(catalog)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var relay journal.Relay
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			relay = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}
	journalLogger := logger.NewIsolatedLogger(cfg.App.JournalLogPath)
	c.JournalConsumer = journal.NewConsumer(pubSub, journal.Topic, journalLogger, relay)
	recorder := journal.NewBusRecorder(pubSub, journal.Topic, sysLogger)

	// 3. Preferences
	prefsRepo := c.preferenceRepository(ctx)
	prefs, err := prefsRepo.Load(ctx)
	if err != nil {
		sysLogger.Warn("BOOT", "Failed to load preferences, using defaults", map[string]interface{}{"error": err.Error()})
		prefs = session.Preferences{}
	}

	// 4. Delivery
	c.WebSocketHub = websocket.NewHub(logger.NewIsolatedLogger(cfg.App.WebSocketLogPath))
	sink := opts.SpeechSink
	if sink == nil {
		sink = c.WebSocketHub
	}
	renderer := view.Renderer(c.WebSocketHub)
	if opts.Renderer != nil {
		renderer = view.Multi(c.WebSocketHub, opts.Renderer)
	}

	// 5. Speech
	recognition := speech.Unavailable[speech.Recognizer]()
	if cfg.Speech.STTURL != "" {
		c.Recognizer = speech.NewUploadRecognizer(speech.NewHTTPSTTClient(cfg.Speech.STTURL))
		recognition = speech.Available[speech.Recognizer](c.Recognizer)
	}
	var synth speech.Synthesizer = speech.NewRelaySynthesizer(sink)
	if cfg.Speech.TTSURL != "" {
		synth = speech.NewHTTPSynthesizer(speech.NewHTTPTTSClient(cfg.Speech.TTSURL, cfg.Speech.TTSVoice), sink, cfg.Speech.CacheTTL)
	}

	// 6. Orchestrator
	c.Orchestrator = orchestrator.New(orchestrator.Config{
		NavTransitionDelay: cfg.UI.NavTransitionDelay,
		ToastDuration:      cfg.UI.ToastDuration,
		BannerDuration:     cfg.UI.BannerDuration,
		BookingReturnDelay: cfg.UI.BookingReturnDelay,
		Doctors:            cfg.Doctors,
	}, orchestrator.Deps{
		Session:     session.New(prefs),
		Resolver:    resolver,
		Backend:     backend.NewHTTPClient(cfg.Backend.BaseURL, cfg.Backend.Timeout),
		Recognition: recognition,
		Synthesis:   speech.Available(synth),
		Preferences: prefsRepo,
		Journal:     recorder,
		Renderer:    renderer,
		Scheduler:   scheduler.NewTimerScheduler(),
		Logger:      sysLogger,
	})

	// 7. Controllers
	var audio controller.AudioSink
	if c.Recognizer != nil {
		audio = c.Recognizer
	}
	c.SessionController = controller.NewSessionController(ctx, c.Orchestrator, c.WebSocketHub, audio)
	c.WebSocketHub.OnInbound(c.SessionController.HandleInbound)

	return c, nil
}

func (c *Container) preferenceRepository(ctx context.Context) contract.PreferenceRepository {
	cfg := c.Config.Preferences
	switch cfg.Backend {
	case "memory":
		return memory.NewPreferenceRepository()
	case "redis":
		opt, err := redis.ParseURL(c.Config.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: c.Config.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using preference file", err)
			_ = rdb.Close()
			return implementation.NewFilePreferenceRepository(cfg.FilePath)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		return implementation.NewRedisPreferenceRepository(rdb, cfg.DeviceID)
	default:
		return implementation.NewFilePreferenceRepository(cfg.FilePath)
	}
}

// Start launches the background loops. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)

	if err := c.JournalConsumer.Consume(ctx); err != nil {
		return fmt.Errorf("start journal consumer: %w", err)
	}

	go func() {
		if err := c.Orchestrator.Run(ctx); err != nil && ctx.Err() == nil {
			c.Logger.Error("BOOT", "Orchestrator stopped", map[string]interface{}{"error": err.Error()})
		}
	}()
	return nil
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
