package debugui

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/gekko3d/lumen/render/core"
)

type Kind int

const (
	KindNode Kind = iota
	KindText
	KindVec3
	KindButton
	KindSlider
)

// Item is one row of the inspector tree. Path is stable across rebuilds and is what
// edits address; Label is only for display.
type Item struct {
	Label    string
	Path     string
	Kind     Kind
	Open     bool
	Children []Item

	Text  string     // KindText
	Vec   mgl32.Vec3 // KindVec3
	Speed float32    // KindVec3, value change per unit of drag
	Int   int        // KindSlider
	Min   int
	Max   int

	set    func(mgl32.Vec3)
	setInt func(int)
	press  func()
}

type Stats struct {
	FrameRate float64
	Width     int
	Height    int
}

// Panel is an immediate mode inspector over a scene: the tree is rebuilt from live
// state on every Refresh, and edits write straight back through the scene's setters.
type Panel struct {
	scene *core.Scene
	stats Stats
	open  map[string]bool

	items []Item
	index map[string]*Item

	focused bool
	cursor  int
	axis    int
}

func NewPanel(scene *core.Scene) *Panel {
	p := &Panel{
		scene: scene,
		open: map[string]bool{
			"General":  true,
			"Entities": true,
			"Camera":   true,
			"Lights":   true,
			"Box Blur": true,
		},
	}
	p.Refresh()
	return p
}

// SetScene points the panel at a new scene, e.g. after a reload. Open state is kept.
func (p *Panel) SetScene(scene *core.Scene) {
	p.scene = scene
	p.Refresh()
}

func (p *Panel) SetStats(s Stats) { p.stats = s }

func (p *Panel) Items() []Item {
	p.Refresh()
	return p.items
}

func (p *Panel) SetOpen(path string, open bool) {
	p.open[path] = open
}

func (p *Panel) Refresh() {
	p.items = p.build()
	p.index = make(map[string]*Item)
	var walk func(items []Item)
	walk = func(items []Item) {
		for i := range items {
			it := &items[i]
			it.Open = p.open[it.Path]
			p.index[it.Path] = it
			walk(it.Children)
		}
	}
	walk(p.items)
}

func (p *Panel) build() []Item {
	if p.scene == nil {
		return nil
	}
	s := p.scene

	general := node("General", "General",
		text("General/FrameRate", fmt.Sprintf("Frame rate: %d fps", int(p.stats.FrameRate))),
		text("General/WindowSize", fmt.Sprintf("Window size: %d x %d", p.stats.Width, p.stats.Height)),
	)

	entities := node("Entities", "Entities")
	for i, e := range s.Entities() {
		t := e.GetTransform()
		label := fmt.Sprintf("Entity %d", i)
		if e.Name != "" {
			label += " (" + e.Name + ")"
		}
		path := fmt.Sprintf("Entities/%d", i)
		entities.Children = append(entities.Children, node(label, path,
			vec3("Position", path+"/Position", t.GetPosition(), 0.01, t.SetPosition),
			vec3("Rotation (Radians)", path+"/Rotation", t.GetPitchYawRoll(), 0.01, t.SetRotation),
			vec3("Scale", path+"/Scale", t.GetScale(), 0.01, t.SetScale),
		))
	}

	camera := node("Camera", "Camera")
	if cam := s.ActiveCamera(); cam != nil {
		pos := cam.GetTransform().GetPosition()
		camera.Children = []Item{
			{Label: "Change camera", Path: "Camera/Change", Kind: KindButton, press: s.ToggleCamera},
			text("Camera/Active", fmt.Sprintf("Camera: Camera %d", s.ActiveCameraIndex()+1)),
			text("Camera/FOV", fmt.Sprintf("FOV: %f", cam.GetFieldOfView())),
			text("Camera/X", fmt.Sprintf("X: %f", pos.X())),
			text("Camera/Y", fmt.Sprintf("Y: %f", pos.Y())),
			text("Camera/Z", fmt.Sprintf("Z: %f", pos.Z())),
		}
	}

	lights := node("Lights", "Lights")
	for i := range s.Lights {
		l := &s.Lights[i]
		path := fmt.Sprintf("Lights/%d", i)
		lights.Children = append(lights.Children, node(fmt.Sprintf("Light %d (%s)", i, l.Type), path,
			vec3("Direction", path+"/Direction", l.Direction, 0.1, l.SetDirection),
		))
	}

	blur := node("Box Blur", "Box Blur", Item{
		Label:  "Blurriness",
		Path:   "Box Blur/Blurriness",
		Kind:   KindSlider,
		Int:    s.BlurRadius(),
		Min:    0,
		Max:    core.MaxBlurRadius,
		setInt: s.SetBlurRadius,
	})

	return []Item{general, entities, camera, lights, blur}
}

func node(label, path string, children ...Item) Item {
	return Item{Label: label, Path: path, Kind: KindNode, Children: children}
}

func text(path, s string) Item {
	return Item{Label: s, Path: path, Kind: KindText, Text: s}
}

func vec3(label, path string, v mgl32.Vec3, speed float32, set func(mgl32.Vec3)) Item {
	return Item{Label: label, Path: path, Kind: KindVec3, Vec: v, Speed: speed, set: set}
}

func (p *Panel) lookup(path string, kind Kind) (*Item, error) {
	p.Refresh()
	it, ok := p.index[path]
	if !ok {
		return nil, errors.Errorf("debugui: no item %q", path)
	}
	if it.Kind != kind {
		return nil, errors.Errorf("debugui: item %q is not editable that way", path)
	}
	return it, nil
}

// SetVec3 replaces a vector field's value.
func (p *Panel) SetVec3(path string, v mgl32.Vec3) error {
	it, err := p.lookup(path, KindVec3)
	if err != nil {
		return err
	}
	it.set(v)
	p.Refresh()
	return nil
}

// Drag nudges a vector field by delta drag units, scaled by the field's speed.
func (p *Panel) Drag(path string, delta mgl32.Vec3) error {
	it, err := p.lookup(path, KindVec3)
	if err != nil {
		return err
	}
	it.set(it.Vec.Add(delta.Mul(it.Speed)))
	p.Refresh()
	return nil
}

func (p *Panel) Press(path string) error {
	it, err := p.lookup(path, KindButton)
	if err != nil {
		return err
	}
	it.press()
	p.Refresh()
	return nil
}

// SetInt moves a slider. Out of range values are clamped.
func (p *Panel) SetInt(path string, v int) error {
	it, err := p.lookup(path, KindSlider)
	if err != nil {
		return err
	}
	v = max(it.Min, min(it.Max, v))
	it.setInt(v)
	p.Refresh()
	return nil
}

// SetFocused hands keyboard and mouse to the panel. The host is expected to keep them
// away from the camera while the panel is focused.
func (p *Panel) SetFocused(focused bool) { p.focused = focused }
func (p *Panel) Focused() bool           { return p.focused }

// Line is one visible row of the tree, flattened for drawing.
type Line struct {
	Path     string
	Depth    int
	Text     string
	Header   bool
	Selected bool
}

// Lines flattens the visible part of the tree. Children of closed nodes are skipped.
func (p *Panel) Lines() []Line {
	var out []Line
	var walk func(items []Item, depth int)
	walk = func(items []Item, depth int) {
		for _, it := range items {
			out = append(out, Line{
				Path:   it.Path,
				Depth:  depth,
				Text:   it.line(),
				Header: it.Kind == KindNode && depth == 0,
			})
			if it.Kind == KindNode && it.Open {
				walk(it.Children, depth+1)
			}
		}
	}
	walk(p.Items(), 0)

	if len(out) > 0 {
		p.cursor = max(0, min(len(out)-1, p.cursor))
		if p.focused {
			out[p.cursor].Selected = true
		}
	}
	return out
}

// MoveCursor moves the selection over the visible rows, stopping at either end.
func (p *Panel) MoveCursor(delta int) {
	p.cursor += delta
	p.Lines()
}

func (p *Panel) Selected() (Line, bool) {
	lines := p.Lines()
	if len(lines) == 0 {
		return Line{}, false
	}
	return lines[p.cursor], true
}

// Axis is the vector component Nudge changes: 0 for x, 1 for y, 2 for z.
func (p *Panel) Axis() int  { return p.axis }
func (p *Panel) CycleAxis() { p.axis = (p.axis + 1) % 3 }

// Activate opens or closes the selected node, or presses the selected button.
func (p *Panel) Activate() error {
	sel, ok := p.Selected()
	if !ok {
		return nil
	}
	switch p.index[sel.Path].Kind {
	case KindNode:
		p.SetOpen(sel.Path, !p.open[sel.Path])
	case KindButton:
		return p.Press(sel.Path)
	}
	return nil
}

// Nudge steps the selected slider, or drags the current axis of the selected vector.
func (p *Panel) Nudge(step int) error {
	sel, ok := p.Selected()
	if !ok {
		return nil
	}
	it := p.index[sel.Path]
	switch it.Kind {
	case KindSlider:
		return p.SetInt(sel.Path, it.Int+step)
	case KindVec3:
		var delta mgl32.Vec3
		delta[p.axis] = float32(step)
		return p.Drag(sel.Path, delta)
	}
	return nil
}

func (it Item) line() string {
	switch it.Kind {
	case KindNode:
		if it.Open {
			return "v " + it.Label
		}
		return "> " + it.Label
	case KindVec3:
		return fmt.Sprintf("%s: %.2f, %.2f, %.2f", it.Label, it.Vec.X(), it.Vec.Y(), it.Vec.Z())
	case KindButton:
		return "[" + it.Label + "]"
	case KindSlider:
		return fmt.Sprintf("%s: %d %s", it.Label, it.Int, sliderBar(it.Int, it.Min, it.Max))
	}
	return it.Text
}

func sliderBar(v, lo, hi int) string {
	if hi <= lo {
		return ""
	}
	return "[" + strings.Repeat("#", v-lo) + strings.Repeat("-", hi-v) + "]"
}
