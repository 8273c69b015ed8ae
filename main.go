package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lguibr/duopong/bollywood"
	"github.com/lguibr/duopong/game"
	"github.com/lguibr/duopong/render"
	"github.com/lguibr/duopong/server"
	"github.com/lguibr/duopong/sound"
	"github.com/lguibr/duopong/utils"
	"github.com/rs/zerolog"
)

const engineShutdownTimeout = 2 * time.Second

type options struct {
	configPath string
	spectate   string
	seed       int64
	mute       bool
	logPath    string
	set        map[string]bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML, TOML or JSON config file")
	flag.StringVar(&opts.spectate, "spectate", "", "serve the spectator feed on this address, e.g. :3001")
	flag.Int64Var(&opts.seed, "seed", 0, "serve RNG seed (0 seeds from the clock)")
	flag.BoolVar(&opts.mute, "mute", false, "disable sound")
	flag.StringVar(&opts.logPath, "log", "", "log file (defaults to the config value)")
	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "duopong:", err)
		os.Exit(1)
	}
}

// resolveConfig loads the config file and applies command line overrides.
func resolveConfig(opts options) (utils.Config, error) {
	cfg, err := utils.LoadConfig(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}
	if opts.spectate != "" {
		cfg.SpectatorAddr = opts.spectate
	}
	if opts.mute {
		cfg.SoundEnabled = false
	}
	if opts.logPath != "" {
		cfg.LogFile = opts.logPath
	}
	return cfg, cfg.Validate()
}

func run(opts options) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}

	logFile, err := utils.OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := utils.NewLogger(logFile, "duopong")

	sim, err := game.NewSimulation(cfg, nil)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := bollywood.NewEngine(utils.NewLogger(logFile, "bollywood"))
	defer engine.Shutdown(engineShutdownTimeout)

	matchID := server.NewMatchID()
	matchPID := engine.Spawn(bollywood.NewProps(game.NewMatchActorProducer(sim, game.MatchOptions{
		MatchID:  matchID,
		AutoTick: true,
		Log:      log,
	})))

	frames := make(chan game.FrameMessage, 4)
	engine.Spawn(bollywood.NewProps(game.NewObserverProducer(matchPID, frames)))

	if cfg.SpectatorAddr != "" {
		startSpectatorFeed(ctx, engine, matchPID, matchID, cfg.SpectatorAddr, log)
	}

	player := sound.NewPlayer(cfg.SoundEnabled, log)
	soundOn := cfg.SoundEnabled && player.Init()
	defer player.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	log.Info().Str("match", matchID).Int64("seed", cfg.Seed).Bool("sound", soundOn).Msg("Match started")
	loop := &frontEnd{
		screen:   screen,
		renderer: render.NewTerminalRenderer(screen),
		latch:    render.NewKeyLatch(cfg.KeyHoldWindow),
		player:   player,
		engine:   engine,
		matchPID: matchPID,
		log:      log,
	}
	loop.run(ctx, frames, cfg.TickPeriod)
	log.Info().Msg("Match finished")
	return nil
}

func startSpectatorFeed(ctx context.Context, engine *bollywood.Engine, matchPID *bollywood.PID, matchID, addr string, log zerolog.Logger) {
	broadcasterPID := engine.Spawn(bollywood.NewProps(game.NewBroadcasterProducer(matchPID, game.DefaultSpectatorWriteTimeout, log)))
	srv := server.New(engine, matchPID, broadcasterPID, matchID, log)
	go func() {
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			log.Error().Err(err).Str("addr", addr).Msg("Spectator feed stopped")
		}
	}()
}

// frontEnd is the local two-player terminal: it turns key events into key
// state messages and draws every published frame.
type frontEnd struct {
	screen   tcell.Screen
	renderer *render.TerminalRenderer
	latch    *render.KeyLatch
	player   *sound.Player
	engine   *bollywood.Engine
	matchPID *bollywood.PID
	sent     game.InputFrame
	log      zerolog.Logger
}

func (f *frontEnd) run(ctx context.Context, frames <-chan game.FrameMessage, poll time.Duration) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	f.renderer.SetMuted(!f.player.Enabled())
	f.renderer.DrawMessage("w/s and up/down to move, p to pause, m to mute, q to quit")

	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			if !f.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			f.syncKeys(time.Now())

		case frame := <-frames:
			f.player.Play(sound.CuesFor(frame.Result))
			f.renderer.Draw(frame)
		}
	}
}

// handleEvent reports false when the user asked to quit.
func (f *frontEnd) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action := render.TranslateKey(ev)
		switch action.Kind {
		case render.ActionQuit:
			return false
		case render.ActionPause:
			f.engine.Send(f.matchPID, game.PauseToggle{}, nil)
		case render.ActionToggleSound:
			f.renderer.SetMuted(!f.player.Toggle())
		case render.ActionPaddle:
			now := time.Now()
			f.latch.Press(action.Side, action.Up, now)
			f.syncKeys(now)
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return true
}

// syncKeys sends the latched key state of each paddle whose state changed.
func (f *frontEnd) syncKeys(now time.Time) {
	frame := f.latch.Frame(now)
	for _, side := range []game.Side{game.SideLeft, game.SideRight} {
		if frame.For(side) != f.sent.For(side) {
			f.engine.Send(f.matchPID, game.KeyStateMessage{Side: side, State: frame.For(side)}, nil)
		}
	}
	f.sent = frame
}
