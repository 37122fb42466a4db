package texture

import (
	"log/slog"
	"sync"

	"github.com/cockroachdb/errors"

	"gl-practice/gpu"
)

// Manager uploads textures once per key and frees them together.
type Manager struct {
	dev gpu.Device

	mu       sync.RWMutex
	textures map[string]uint32
}

func NewManager(dev gpu.Device) *Manager {
	return &Manager{dev: dev, textures: make(map[string]uint32)}
}

// Upload sends img to the device under img.Name, reusing an earlier upload
// with the same name.
func (m *Manager) Upload(img *Image) (uint32, error) {
	m.mu.RLock()
	id, ok := m.textures[img.Name]
	m.mu.RUnlock()
	if ok {
		return id, nil
	}

	id, err := m.dev.UploadTexture(img.Width, img.Height, img.Pixels)
	if err != nil {
		return 0, errors.Wrapf(err, "upload texture %q", img.Name)
	}
	m.mu.Lock()
	m.textures[img.Name] = id
	m.mu.Unlock()
	slog.Debug("texture uploaded", "name", img.Name, "id", id, "width", img.Width, "height", img.Height)
	return id, nil
}

// LoadOrGenerate uploads the image at path. An empty path uploads the
// fallback instead.
func (m *Manager) LoadOrGenerate(path string, fallback *Image) (uint32, error) {
	if path == "" {
		return m.Upload(fallback)
	}
	m.mu.RLock()
	id, ok := m.textures[path]
	m.mu.RUnlock()
	if ok {
		return id, nil
	}
	img, err := Load(path)
	if err != nil {
		return 0, err
	}
	return m.Upload(img)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.textures)
}

// DestroyAll deletes every uploaded texture.
func (m *Manager) DestroyAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.textures {
		m.dev.DeleteTexture(id)
	}
	m.textures = make(map[string]uint32)
}
