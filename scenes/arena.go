package scenes

import (
	"image/color"
	"log"
	"os"
	"sync"

	"github.com/automoto/bladelock/assets"
	cfg "github.com/automoto/bladelock/config"
	"github.com/automoto/bladelock/systems"
	"github.com/automoto/bladelock/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/events"
)

// ArenaScene runs one combat arena.
type ArenaScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	arenaName    string
	overlay      *systems.DebugOverlay
	hud          *systems.HUD
	watcher      *cfg.ComboWatcher
	once         sync.Once
}

func NewArenaScene(sc SceneChanger, arenaName string) *ArenaScene {
	if arenaName == "" {
		arenaName = cfg.Arena.DefaultArena
	}
	return &ArenaScene{sceneChanger: sc, arenaName: arenaName}
}

func (as *ArenaScene) Update() {
	as.once.Do(as.configure)

	as.reloadCombos()
	as.ecs.Update()
	events.ProcessAllEvents(as.ecs.World)
	as.overlay.Update(cfg.C.DeltaTime())

	if systems.RestartRequested(as.ecs) {
		as.Close()
		as.sceneChanger.ChangeScene(NewArenaScene(as.sceneChanger, as.arenaName))
	}
}

func (as *ArenaScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if as.ecs == nil {
		return
	}
	as.ecs.Draw(screen)
}

func (as *ArenaScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdatePlayer)
	ecs.AddSystem(systems.UpdateEnemies)
	ecs.AddSystem(systems.UpdateStance)
	ecs.AddSystem(systems.UpdateCombat)
	ecs.AddSystem(systems.UpdateAnimation)
	ecs.AddSystem(systems.UpdateHitboxes)
	ecs.AddSystem(systems.UpdateHealth)
	ecs.AddSystem(systems.UpdateDeaths)
	ecs.AddSystem(systems.UpdatePhysics)
	ecs.AddSystem(systems.UpdateLockOn)
	ecs.AddSystem(systems.UpdateCamera)
	ecs.AddSystem(systems.UpdateDebugToggle)
	ecs.AddSystem(systems.UpdatePersistence)

	as.overlay = systems.NewDebugOverlay()
	as.hud = systems.NewHUD()
	ecs.AddRenderer(cfg.Default, as.overlay.Draw)
	ecs.AddRenderer(cfg.Default, as.hud.Draw)

	as.ecs = ecs

	factory.ResetComboGraphs()
	arena := assets.MustLoadArena(as.arenaName)
	factory.CreateArena(as.ecs, arena)

	if saved, err := systems.LoadSettings(); err == nil && saved != nil {
		systems.ApplySavedSettings(as.ecs, saved)
	}

	as.overlay.Subscribe(as.ecs.World)
	as.hud.Subscribe(as.ecs.World)

	if _, err := os.Stat(cfg.ComboDir); err == nil {
		w, err := cfg.NewComboWatcher(cfg.ComboDir)
		if err != nil {
			log.Printf("Warning: Could not watch combos: %v", err)
		} else {
			as.watcher = w
		}
	}
}

// reloadCombos applies combo files edited since the last tick.
func (as *ArenaScene) reloadCombos() {
	for _, err := range as.watcher.PollErrors() {
		log.Printf("Warning: Combo watcher error: %v", err)
	}
	for _, name := range as.watcher.Poll() {
		graph, err := cfg.LoadComboGraph(name)
		if err != nil {
			log.Printf("Warning: Could not reload combo %q: %v", name, err)
			continue
		}
		factory.ReplaceComboGraph(graph.Name, graph)
		n := systems.ReloadCombo(as.ecs, graph.Name, graph)
		if added := factory.SyncHitboxes(as.ecs, graph.Name); added > 0 {
			log.Printf("[combos] %s: spawned %d new hitboxes", graph.Name, added)
		}
		log.Printf("[combos] reloaded %s for %d actors", graph.Name, n)
	}
}

// Close unsubscribes observers and stops the combo watcher.
func (as *ArenaScene) Close() {
	if as.ecs == nil {
		return
	}
	as.overlay.Unsubscribe(as.ecs.World)
	as.hud.Unsubscribe(as.ecs.World)
	if as.watcher != nil {
		_ = as.watcher.Close()
		as.watcher = nil
	}
}
