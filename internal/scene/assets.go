package scene

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/procterrain/internal/assets"
)

// LoaderCallbacks returns callbacks that hand loaded assets to the scene. They
// may run on any goroutine; assets attach on the next Tick.
func (s *Scene) LoaderCallbacks() assets.Callbacks {
	return assets.Callbacks{
		OnProgress: func(done, total int) {
			s.assetMu.Lock()
			s.done, s.total = done, total
			s.assetMu.Unlock()
		},
		OnLoad: func(a assets.Asset) {
			s.assetMu.Lock()
			s.pending = append(s.pending, a)
			s.assetMu.Unlock()
		},
		OnError: func(name string, err error) {
			s.assetMu.Lock()
			s.failed = append(s.failed, name)
			s.assetMu.Unlock()
		},
	}
}

func (s *Scene) drainAssets() {
	s.assetMu.Lock()
	pending := s.pending
	s.pending = nil
	s.assetMu.Unlock()

	for _, a := range pending {
		s.loaded[a.Name] = a
		s.log.Info("asset attached", zap.String("name", a.Name), zap.String("path", a.Path))
	}
}

// Asset returns an attached asset by name.
func (s *Scene) Asset(name string) (assets.Asset, bool) {
	a, ok := s.loaded[name]
	return a, ok
}

// LoadProgress returns the fraction of requested assets that finished,
// successfully or not. With nothing requested it is 1.
func (s *Scene) LoadProgress() float64 {
	s.assetMu.Lock()
	defer s.assetMu.Unlock()
	if s.total == 0 {
		return 1
	}
	return float64(s.done) / float64(s.total)
}

// FailedAssets returns the names of assets that could not be loaded.
func (s *Scene) FailedAssets() []string {
	s.assetMu.Lock()
	defer s.assetMu.Unlock()
	return append([]string(nil), s.failed...)
}

// AssetStatus summarizes optional assets for display: attached names, failed
// names marked missing, and the load percentage while loads are in flight.
// Attaching only records the bytes; nothing decodes them. Empty when no asset
// was requested.
func (s *Scene) AssetStatus() string {
	names := make([]string, 0, len(s.loaded))
	for name := range s.loaded {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := names
	for _, name := range s.FailedAssets() {
		parts = append(parts, name+" missing")
	}
	if p := s.LoadProgress(); p < 1 {
		parts = append(parts, fmt.Sprintf("loading %.0f%%", p*100))
	}
	return strings.Join(parts, ", ")
}
