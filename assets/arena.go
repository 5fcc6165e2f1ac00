package assets

import (
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/bladelock/config"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lafriks/go-tiled"
)

//go:embed arenas/*.tmx
var arenaFS embed.FS

// ArenaDir is checked before the embedded arenas so edited maps load
// without a rebuild.
var ArenaDir = filepath.Join("assets", "arenas")

// Spawn is a placement in world units. Yaw 0 faces +Z.
type Spawn struct {
	Position mgl64.Vec3
	Yaw      float64
}

type EnemySpawn struct {
	Spawn
	EnemyType string
}

// SolidSpawn is an axis-aligned block of arena geometry. X/Z is the corner
// with the smallest coordinates.
type SolidSpawn struct {
	Name   string
	X, Z   float64
	Width  float64 // along X
	Depth  float64 // along Z
	Bottom float64
	Top    float64
}

type Arena struct {
	Name        string
	Width       float64
	Depth       float64
	Solids      []SolidSpawn
	PlayerSpawn Spawn
	Enemies     []EnemySpawn
}

// LoadArena reads an arena by name ("training" or "training.tmx").
func LoadArena(name string) (*Arena, error) {
	file := name
	if !strings.HasSuffix(file, ".tmx") {
		file += ".tmx"
	}

	var (
		m   *tiled.Map
		err error
	)
	diskPath := filepath.Join(ArenaDir, file)
	if _, statErr := os.Stat(diskPath); statErr == nil {
		m, err = tiled.LoadFile(diskPath)
	} else {
		m, err = tiled.LoadFile("arenas/"+file, tiled.WithFileSystem(arenaFS))
	}
	if err != nil {
		return nil, fmt.Errorf("arenas: load %s: %w", name, err)
	}
	return ParseArena(m, strings.TrimSuffix(file, ".tmx"))
}

// LoadArenaReader parses TMX data from r.
func LoadArenaReader(name string, r io.Reader) (*Arena, error) {
	m, err := tiled.LoadReader(".", r)
	if err != nil {
		return nil, fmt.Errorf("arenas: load %s: %w", name, err)
	}
	return ParseArena(m, name)
}

// MustLoadArena is LoadArena for startup code.
func MustLoadArena(name string) *Arena {
	a, err := LoadArena(name)
	if err != nil {
		panic(err)
	}
	return a
}

// ParseArena converts a Tiled map into world units. Tiled Y grows down the
// map; world Z grows up it, so the map reads the same in the debug view.
func ParseArena(m *tiled.Map, name string) (*Arena, error) {
	ppu := config.Arena.PixelsPerUnit
	if ppu <= 0 {
		ppu = 1
	}
	heightPx := float64(m.Height * m.TileHeight)

	arena := &Arena{
		Name:  name,
		Width: float64(m.Width*m.TileWidth) / ppu,
		Depth: heightPx / ppu,
	}
	toWorld := func(x, y float64) (float64, float64) {
		return x / ppu, (heightPx - y) / ppu
	}

	playerFound := false
	for _, og := range m.ObjectGroups {
		switch og.Name {
		case "Solids":
			for _, o := range og.Objects {
				if o.Width <= 0 || o.Height <= 0 {
					continue
				}
				x, z := toWorld(o.X, o.Y+o.Height)
				arena.Solids = append(arena.Solids, SolidSpawn{
					Name:   o.Name,
					X:      x,
					Z:      z,
					Width:  o.Width / ppu,
					Depth:  o.Height / ppu,
					Bottom: floatProp(o.Properties, "bottom", 0),
					Top:    floatProp(o.Properties, "top", config.Arena.DefaultTop),
				})
			}
		case "PlayerSpawn":
			if len(og.Objects) == 0 {
				continue
			}
			o := og.Objects[0]
			x, z := toWorld(o.X, o.Y)
			arena.PlayerSpawn = Spawn{
				Position: mgl64.Vec3{x, floatProp(o.Properties, "height", 0), z},
				Yaw:      mgl64.DegToRad(floatProp(o.Properties, "yaw", 0)),
			}
			playerFound = true
		case "Enemies":
			for _, o := range og.Objects {
				x, z := toWorld(o.X, o.Y)
				enemyType := o.Properties.GetString("enemyType")
				if enemyType == "" {
					enemyType = "grunt"
				}
				arena.Enemies = append(arena.Enemies, EnemySpawn{
					Spawn: Spawn{
						Position: mgl64.Vec3{x, floatProp(o.Properties, "height", 0), z},
						Yaw:      mgl64.DegToRad(floatProp(o.Properties, "yaw", 180)),
					},
					EnemyType: enemyType,
				})
			}
		}
	}

	if !playerFound {
		return nil, fmt.Errorf("arenas: %s has no PlayerSpawn object", name)
	}

	// Spawn order follows map position so entity ids are stable across edits
	// that only touch properties.
	sort.SliceStable(arena.Enemies, func(i, j int) bool {
		a, b := arena.Enemies[i].Position, arena.Enemies[j].Position
		if a.Z() != b.Z() {
			return a.Z() > b.Z()
		}
		return a.X() < b.X()
	})
	return arena, nil
}

// floatProp reads a numeric property, falling back to def when it is unset.
func floatProp(props tiled.Properties, name string, def float64) float64 {
	if props.GetString(name) == "" {
		return def
	}
	return props.GetFloat(name)
}
