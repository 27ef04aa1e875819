package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/voxelsplace/voxland/codec"
	"github.com/voxelsplace/voxland/config"
	"github.com/voxelsplace/voxland/render"
	"github.com/voxelsplace/voxland/store"
	"github.com/voxelsplace/voxland/voxel"
)

// Manager owns one world, the scene it draws into and the store it saves to.
type Manager struct {
	World *voxel.World
	Scene *render.Scene

	cfg   *config.Config
	store store.Store
	comp  codec.Compression
	log   *slog.Logger
}

// NewManager builds a Manager from cfg. A nil logger discards output.
func NewManager(cfg *config.Config, log *slog.Logger) (*Manager, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pal, err := cfg.ColorPalette()
	if err != nil {
		return nil, err
	}
	comp, err := cfg.SaveCompression()
	if err != nil {
		return nil, err
	}
	scene := render.NewScene()
	w, err := voxel.New(scene,
		voxel.WithPalette(pal),
		voxel.WithMaxColumnHeight(cfg.MaxColumnHeight),
		voxel.WithLogger(log.With("component", "world")),
	)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg.Save.Backend, cfg.Save.Path)
	if err != nil {
		return nil, err
	}
	return &Manager{World: w, Scene: scene, cfg: cfg, store: st, comp: comp, log: log}, nil
}

func (m *Manager) Close() error { return m.store.Close() }

func (m *Manager) Store() store.Store { return m.store }

// Start loads the configured land map. A missing map is not an error: the
// world starts empty.
func (m *Manager) Start() (voxel.LandResult, error) {
	res, err := m.World.LoadLandFile(m.cfg.LandPath)
	if errors.Is(err, voxel.ErrNotFound) {
		m.log.Warn("land map not found, starting with an empty world", "path", m.cfg.LandPath)
		return voxel.LandResult{}, nil
	}
	if err != nil {
		m.log.Error("land map load failed, starting with an empty world", "path", m.cfg.LandPath, "err", err)
		return res, err
	}
	m.log.Info("land map loaded", "path", m.cfg.LandPath, "width", res.Width, "height", res.Height)
	return res, nil
}

// SaveMap writes the world to the configured slot.
func (m *Manager) SaveMap() error {
	return m.SaveMapAs(m.cfg.Save.Slot)
}

func (m *Manager) SaveMapAs(slot string) error {
	if err := codec.Save(m.store, slot, m.World, m.comp); err != nil {
		m.log.Error("save failed", "slot", slot, "err", err)
		return err
	}
	m.log.Info("map saved", "slot", slot, "blocks", m.World.Len(), "compression", m.comp)
	return nil
}

// LoadMap replaces the world with the configured slot. On failure the world
// is empty.
func (m *Manager) LoadMap() error {
	return m.LoadMapFrom(m.cfg.Save.Slot)
}

func (m *Manager) LoadMapFrom(slot string) error {
	if err := codec.Load(m.store, slot, m.World); err != nil {
		m.log.Error("load failed", "slot", slot, "err", err)
		return err
	}
	m.log.Info("map loaded", "slot", slot, "blocks", m.World.Len())
	return nil
}

// Build places a block. Principal mode settles it by gravity; spectator mode
// places it exactly at pos.
func (m *Manager) Build(pos voxel.Coord, principal bool) (bool, error) {
	if principal {
		return m.World.BuildBlock(pos)
	}
	if _, err := m.World.AddBlock(pos); err != nil {
		return false, err
	}
	return true, nil
}

// Destroy removes a block. Principal mode removes the top of pos's column;
// spectator mode removes whatever is at pos.
func (m *Manager) Destroy(pos voxel.Coord, principal bool) (bool, error) {
	if principal {
		return m.World.DelBlockFrom(pos)
	}
	n, err := m.World.DelBlock(pos)
	return n > 0, err
}

// ExportGLB writes the current scene as a .glb file.
func (m *Manager) ExportGLB(path string) error {
	if err := render.SaveGLB(m.Scene, path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
