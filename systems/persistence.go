package systems

import (
	"encoding/json"
	"log"

	"github.com/automoto/bladelock/components"
	cfg "github.com/automoto/bladelock/config"
	"github.com/quasilyte/gdata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// SavedSettings represents the camera preferences stored on disk
type SavedSettings struct {
	CameraDistance  float64 `json:"cameraDistance"`
	LookSensitivity float64 `json:"lookSensitivity"`
	InvertY         bool    `json:"invertY"`
	WideFOV         bool    `json:"wideFov"`
	HoldToLock      bool    `json:"holdToLock"`
}

const settingsKey = "settings"

// settingsSaveDelay is how long settings must stay unchanged before they are
// written, so scrolling the zoom does not save every tick.
const settingsSaveDelay = 1.0

var gdataManager *gdata.Manager
var gdataInitialized bool

var settingsDirty bool
var settingsIdle float64

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence() error {
	m, err := gdata.Open(gdata.Config{
		AppName: "bladelock",
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

// LoadSettings loads settings from disk. It returns nil when nothing has
// been saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !gdataInitialized || gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		// No saved settings yet, use defaults
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}

	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if !gdataInitialized || gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}

	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// CurrentSettings captures the preferences of the first camera rig.
func CurrentSettings(e *ecs.ECS) *SavedSettings {
	s := &SavedSettings{
		CameraDistance:  cfg.Camera.DefaultDistance,
		LookSensitivity: cfg.Camera.LookSensitivity,
		InvertY:         cfg.Camera.InvertY,
		HoldToLock:      cfg.LockOn.HoldToLock,
	}
	if rig, ok := components.Camera.First(e.World); ok {
		cam := components.Camera.Get(rig)
		if cam.DesiredDistance > 0 {
			s.CameraDistance = cam.DesiredDistance
		}
		s.WideFOV = cam.Wide
	}
	return s
}

// ApplySavedSettings applies loaded settings to the config and camera rigs
func ApplySavedSettings(e *ecs.ECS, saved *SavedSettings) {
	if saved == nil {
		return
	}

	if saved.LookSensitivity > 0 {
		cfg.Camera.LookSensitivity = saved.LookSensitivity
	}
	cfg.Camera.InvertY = saved.InvertY
	cfg.LockOn.HoldToLock = saved.HoldToLock

	components.Camera.Each(e.World, func(rig *donburi.Entry) {
		cam := components.Camera.Get(rig)
		if saved.CameraDistance > 0 {
			cam.DesiredDistance = saved.CameraDistance
		}
		cam.Wide = saved.WideFOV
	})
	settingsDirty = false
}

func markSettingsDirty() {
	settingsDirty = true
	settingsIdle = 0
}

// UpdatePersistence writes changed camera settings once they settle.
func UpdatePersistence(e *ecs.ECS) {
	if !settingsDirty {
		return
	}
	settingsIdle += cfg.C.DeltaTime()
	if settingsIdle < settingsSaveDelay {
		return
	}
	settingsDirty = false
	_ = SaveSettings(CurrentSettings(e))
}
