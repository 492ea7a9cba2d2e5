package main

import (
	"errors"

	"github.com/ebitenui/ebitenui"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpsdemo/common"
	"github.com/milk9111/fpsdemo/config"
	"github.com/milk9111/fpsdemo/ecs"
	"github.com/milk9111/fpsdemo/ecs/component"
	"github.com/milk9111/fpsdemo/ecs/entity"
	"github.com/milk9111/fpsdemo/ecs/system"
	"github.com/milk9111/fpsdemo/physics"
	"github.com/milk9111/fpsdemo/render"
	"github.com/milk9111/fpsdemo/scene"
	"github.com/rs/zerolog/log"
)

// Options are the command line choices NewGame needs.
type Options struct {
	ConfigPath     string
	ScenePath      string
	ModelPath      string
	Watch          bool
	OverlayVisible bool
	Seed           uint64
}

const timingLogFrames = 600

type Game struct {
	world     *ecs.World
	physics   *physics.World
	scheduler *ecs.Scheduler
	scene     *scene.Scene
	model     *scene.ModelLoad

	tuning  config.Tuning
	watcher *config.Watcher

	outOfBounds *system.OutOfBoundsSystem
	renderer    *system.RenderSystem
	overlay     *render.DebugOverlay

	paused  bool
	pauseUI *ebitenui.UI
	quit    bool
}

func NewGame(opts Options) (*Game, error) {
	tuning, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	spec, err := scene.LoadSpec(opts.ScenePath)
	if err != nil {
		return nil, err
	}

	dt := 1.0 / float64(ebiten.DefaultTPS)
	w := ecs.NewWorld()
	pw := physics.NewWorld(tuning.Physics)
	sc, err := scene.Build(w, pw, spec, entity.PlayerTuning{
		Controller: tuning.Player,
		Push:       tuning.Push,
		Weapon:     tuning.Weapon,
		Seed:       opts.Seed,
	})
	if err != nil {
		return nil, err
	}

	hud, err := render.NewHUD()
	if err != nil {
		return nil, err
	}
	overlay := render.NewDebugOverlay(tuning.Debug.MaxTrajectories, tuning.Debug.MaxMarkers)
	overlay.SetVisible(tuning.Debug.StartVisible || opts.OverlayVisible)
	sky := render.NewSky()
	sky.Zenith, sky.Horizon = tuning.Render.Zenith(), tuning.Render.Horizon()
	cam := render.NewCamera(tuning.Render.FOV, common.BaseWidth, common.BaseHeight)

	g := &Game{
		world:       w,
		physics:     pw,
		scene:       sc,
		tuning:      tuning,
		outOfBounds: system.NewOutOfBoundsSystem(tuning.Cubes.KillY),
		renderer:    system.NewRenderSystem(dt, cam, sky, hud, overlay),
		overlay:     overlay,
	}
	// Physics first, then the controller, then what follows from movement,
	// then visuals.
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(),
		system.NewPhysicsSystem(pw, dt),
		system.NewPlayerControllerSystem(dt),
		system.NewWeaponSystem(dt),
		system.NewPushSystem(pw),
		g.outOfBounds,
		system.NewTransformSyncSystem(),
		system.NewDebugSystem(overlay),
		g.renderer,
	)
	g.pauseUI = NewPauseUI(g)

	g.model, err = scene.LoadModelAsync(spec, opts.ModelPath)
	if errors.Is(err, scene.ErrNoModel) {
		log.Debug().Msg("scene has no model")
	} else if err != nil {
		log.Error().Err(err).Msg("model load not started")
	}

	if opts.Watch {
		if opts.ConfigPath == "" {
			log.Warn().Msg("--watch needs --config, tuning will not reload")
		} else if g.watcher, err = config.Watch(opts.ConfigPath); err != nil {
			log.Error().Err(err).Msg("tuning watcher not started")
		}
	}

	log.Info().
		Str("scene", spec.Name).
		Int("bodies", len(pw.Bodies())).
		Msg("game ready")
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if ebiten.CursorMode() != ebiten.CursorModeCaptured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	}

	if g.watcher != nil {
		if t, ok := g.watcher.Poll(); ok {
			g.applyTuning(t)
		}
	}
	if g.model != nil && g.scene.PollModel(g.world, g.physics, g.model) {
		g.model = nil
	}

	g.scheduler.Update(g.world)
	if g.scheduler.Frames()%timingLogFrames == 0 {
		g.logTimings()
	}
	return nil
}

// logTimings reports what the last frame spent per system at debug level.
func (g *Game) logTimings() {
	evt := log.Debug()
	if !evt.Enabled() {
		return
	}
	for _, t := range g.scheduler.Timings() {
		evt = evt.Dur(t.Name, t.Duration)
	}
	evt.Uint64("frame", g.scheduler.Frames()).Msg("system timings")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scheduler.Draw(g.world, screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

// applyTuning pushes reloaded values into the running systems.
func (g *Game) applyTuning(t config.Tuning) {
	g.tuning = t
	g.physics.SetConfig(t.Physics)
	g.outOfBounds.KillY = t.Cubes.KillY
	g.overlay.MaxTrajectories = t.Debug.MaxTrajectories
	g.overlay.MaxMarkers = t.Debug.MaxMarkers
	if g.renderer.Sky != nil {
		g.renderer.Sky.Zenith, g.renderer.Sky.Horizon = t.Render.Zenith(), t.Render.Horizon()
	}
	g.renderer.Camera.FovY = mgl64.DegToRad(t.Render.FOV)

	ecs.ForEach(g.world, component.PlayerComponent, func(_ ecs.Entity, p *component.Player) {
		if p.Controller != nil {
			p.Controller.SetConfig(t.Player)
		}
		if p.Pusher != nil {
			p.Pusher.SetConfig(t.Push)
		}
		if p.Weapon != nil {
			p.Weapon.SetConfig(t.Weapon)
		}
	})
	log.Info().Float64("fov", t.Render.FOV).Float64("kill_y", t.Cubes.KillY).Msg("tuning reloaded")
}

func (g *Game) Close() error {
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}
