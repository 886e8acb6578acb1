package trellis

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Material is the visual resource a handler assigns to its node for the
// current interaction state. Trellis never draws it; the host renderer
// reads Node.Material and decides what to do with it.
type Material struct {
	Image   *ebiten.Image
	Tint    Color
	Opacity float64
}

// NewMaterial creates a fully opaque material with a white tint.
func NewMaterial(img *ebiten.Image) *Material {
	return &Material{Image: img, Tint: ColorWhite, Opacity: 1}
}

// MaterialProvider maps (state, enabled, selected) to a visual resource.
// Handlers call it on every state change. Treated as opaque by the router.
type MaterialProvider interface {
	Material(state InteractionState, enabled bool, selected bool) *Material
	SetOpacity(alpha float64)
}

// StateMaterialSet is the standard MaterialProvider: one material per
// interaction state, with optional selected variants for checkbox and
// radio handlers. Missing entries fall back to Normal.
type StateMaterialSet struct {
	Normal  *Material
	Over    *Material
	Down    *Material
	Disable *Material

	NormalSelected *Material
	OverSelected   *Material
	DownSelected   *Material

	// Opacity baselines captured at registration so SetOpacity scales
	// rather than accumulates.
	bases map[*Material]float64
}

// NewStateMaterialSet creates a provider from per-state materials.
// Any argument may be nil; lookup falls back to normal.
func NewStateMaterialSet(normal, over, down, disable *Material) *StateMaterialSet {
	s := &StateMaterialSet{
		Normal:  normal,
		Over:    over,
		Down:    down,
		Disable: disable,
		bases:   make(map[*Material]float64),
	}
	s.register(normal, over, down, disable)
	return s
}

// SetSelectedMaterials registers the materials used while Selected is true.
func (s *StateMaterialSet) SetSelectedMaterials(normal, over, down *Material) {
	s.NormalSelected = normal
	s.OverSelected = over
	s.DownSelected = down
	s.register(normal, over, down)
}

func (s *StateMaterialSet) register(mats ...*Material) {
	for _, m := range mats {
		if m != nil {
			if _, ok := s.bases[m]; !ok {
				s.bases[m] = m.Opacity
			}
		}
	}
}

// Material returns the visual resource for the given interaction mode.
func (s *StateMaterialSet) Material(state InteractionState, enabled bool, selected bool) *Material {
	if !enabled || state == StateDisable {
		if s.Disable != nil {
			return s.Disable
		}
		return s.Normal
	}

	var base, selectedVariant *Material
	switch state {
	case StateOver:
		base, selectedVariant = s.Over, s.OverSelected
	case StateDown:
		base, selectedVariant = s.Down, s.DownSelected
	default:
		base, selectedVariant = s.Normal, s.NormalSelected
	}
	if selected && selectedVariant != nil {
		return selectedVariant
	}
	if base != nil {
		return base
	}
	return s.Normal
}

// SetOpacity scales every registered material's opacity against its
// baseline. Alpha is clamped to [0, 1].
func (s *StateMaterialSet) SetOpacity(alpha float64) {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	for m, base := range s.bases {
		m.Opacity = base * alpha
	}
}

// OpacityTween animates a provider's opacity over time. Create one with
// NewOpacityTween and call Update(dt) each frame until Done.
//
// There is no global animation manager; users call Update themselves.
type OpacityTween struct {
	provider MaterialProvider
	tween    *gween.Tween
	Done     bool
}

// NewOpacityTween animates provider opacity from one alpha to another over
// duration seconds using the given easing function.
func NewOpacityTween(provider MaterialProvider, from, to float64, duration float32, fn ease.TweenFunc) *OpacityTween {
	return &OpacityTween{
		provider: provider,
		tween:    gween.New(float32(from), float32(to), duration, fn),
	}
}

// Update advances the tween by dt seconds and applies the alpha.
func (o *OpacityTween) Update(dt float32) {
	if o.Done {
		return
	}
	val, finished := o.tween.Update(dt)
	o.provider.SetOpacity(float64(val))
	o.Done = finished
}
