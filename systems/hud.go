package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/bladelock/components"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudBarWidth  = 130
	hudBarHeight = 13
	hudMargin    = 10
)

// HUD shows the player's health, fed by HealthChanged events rather than by
// polling the component.
type HUD struct {
	current, max int
	known        bool
	subscribed   bool
}

func NewHUD() *HUD {
	return &HUD{}
}

func (h *HUD) onHealthChanged(w donburi.World, e components.HealthChangedEvent) {
	if e.Entry == nil || !e.Entry.Valid() || !e.Entry.HasComponent(components.Player) {
		return
	}
	h.current, h.max, h.known = e.Current, e.Max, true
}

func (h *HUD) Subscribe(w donburi.World) {
	if h.subscribed {
		return
	}
	components.HealthChanged.Subscribe(w, h.onHealthChanged)
	h.subscribed = true
}

func (h *HUD) Unsubscribe(w donburi.World) {
	if !h.subscribed {
		return
	}
	components.HealthChanged.Unsubscribe(w, h.onHealthChanged)
	h.subscribed = false
}

// Draw renders the health bar in the top-left corner and a line of combat
// state under it.
func (h *HUD) Draw(ecs *ecs.ECS, screen *ebiten.Image) {
	playerEntry, ok := components.Player.First(ecs.World)
	if !ok {
		return
	}
	if !h.known {
		hp := components.Health.Get(playerEntry)
		h.current, h.max, h.known = hp.Current, hp.Max, true
	}

	// Background (dark gray)
	vector.DrawFilledRect(screen,
		float32(hudMargin), float32(hudMargin),
		float32(hudBarWidth), float32(hudBarHeight),
		color.RGBA{40, 40, 40, 255}, false)

	// Current HP (green)
	ratio := float32(0)
	if h.max > 0 {
		ratio = float32(h.current) / float32(h.max)
	}
	vector.DrawFilledRect(screen,
		float32(hudMargin), float32(hudMargin),
		float32(hudBarWidth)*ratio, float32(hudBarHeight),
		color.RGBA{40, 220, 40, 255}, false)

	ebitenutil.DebugPrintAt(screen, h.statusLine(playerEntry), hudMargin, hudMargin+hudBarHeight+4)
}

func (h *HUD) statusLine(playerEntry *donburi.Entry) string {
	state, step := "-", "-"
	if combat := combatOf(playerEntry); combat != nil {
		state = combat.State.String()
		if combat.Current != nil {
			step = combat.Current.ID
		}
	}
	lock := "free"
	if target := lockTargetOf(playerEntry); target != nil {
		lock = fmt.Sprintf("locked #%d", target.Entity().Id())
	}
	slides := 0
	if playerEntry.HasComponent(components.Stance) {
		slides = components.Stance.Get(playerEntry).Slides
	}
	return fmt.Sprintf("HP %d/%d  %s %s  %s  slides %d", h.current, h.max, state, step, lock, slides)
}
