package render

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/navchart/s52gl/frame"
	"github.com/navchart/s52gl/geom"
	"github.com/navchart/s52gl/gl"
	"github.com/navchart/s52gl/glm"
	"github.com/navchart/s52gl/mariner"
	"github.com/navchart/s52gl/matrixstack"
	"github.com/navchart/s52gl/pattern"
	"github.com/navchart/s52gl/pick"
	"github.com/navchart/s52gl/primitive"
	"github.com/navchart/s52gl/proj"
	"github.com/navchart/s52gl/s57data"
	"github.com/navchart/s52gl/symbol"
	"github.com/navchart/s52gl/text"
)

var logger = slog.Default()

// SetLogger overrides the package-level logger (ambient stack: log/slog,
// following the teacher's EnableDebugOutput convention).
func SetLogger(l *slog.Logger) { logger = l }

type internalCycle int

const (
	cycleNone internalCycle = iota
	cycleDraw
	cycleLast
	cyclePick
)

// Object wraps one feature for a single render pass, carrying the cycle it
// is currently being drawn under (needed so Dispatch can defer TE/TX to
// LAST per spec §4.11).
type Object struct {
	Feature *s57data.Feature
	cycle   internalCycle

	// pickIndex is the color index Dispatch assigned this object via
	// r.Pick.Assign when cycle==cyclePick (spec §4.9); zero until assigned.
	pickIndex uint8
}

// ViewState is the process-wide view (spec §3 "View state").
type ViewState struct {
	ViewportX, ViewportY, ViewportW, ViewportH int32
	CenterLat, CenterLon                       float64
	RangeNM                                    float64
	NorthDeg                                   float64

	PMin, PMax geom.Vec2 // projected extent
	GMin, GMax geom.Vec2 // geographic extent

	MetersPerPixelX, MetersPerPixelY float64
	DotpitchMMX, DotpitchMMY         float64
}

// Scamin returns the current on-screen scale denominator: MPP x 10000
// (spec §3 "SCAMIN: current on-screen scale denominator").
func (v ViewState) Scamin() float64 { return v.MetersPerPixelX * 10000 }

// Renderer is the S52GL command interpreter and holder of all GPU-side
// caches named in spec §2.
type Renderer struct {
	View ViewState

	Proj      *proj.Mercator
	Mariner   *mariner.Params
	Symbols   *symbol.Cache
	Text      *text.Manager
	Matrices  *matrixstack.Stack
	Lifecycle *frame.Lifecycle
	Pick      *pick.Cycle

	idToFeature      map[uint32]*s57data.Feature
	rasters          map[uint32]RasterLayer
	tileCache        map[string]pattern.Tile
	textShadowCounts map[uint32]int

	// activeObj is the object currently being dispatched, set by Dispatch
	// so leaf render paths (draw.go's bindColor) can tell a PICK-cycle
	// draw from a normal one without threading it through every call.
	activeObj *Object

	warnedOnce sync.Map // feature name -> struct{}, per-name dedup (spec §7 policy)

	fbWidth, fbHeight int
	program           gl.Program
	textProgram       gl.Program
	quadProgram       gl.Program

	atlasTex        gl.Texture
	atlasTexVersion int
}

// New returns a Renderer with all caches initialized; it must still be
// Init'd before drawing (spec §6.1 init).
func New() *Renderer {
	return &Renderer{
		Proj:        &proj.Mercator{},
		Mariner:     mariner.NewParams(),
		Symbols:     symbol.NewCache(),
		Text:        text.NewManager(),
		Matrices:    matrixstack.NewStack(),
		Lifecycle:        frame.NewLifecycle(),
		idToFeature:      make(map[uint32]*s57data.Feature),
		textShadowCounts: make(map[uint32]int),
	}
}

func (r *Renderer) logSkip(featureName string, err error) {
	if _, already := r.warnedOnce.LoadOrStore(featureName, struct{}{}); already {
		return
	}
	logger.Warn("render: feature error", "feature", featureName, "error", err)
}

// ClearWarnings resets the per-name dedup set, called on PLib reload.
func (r *Renderer) ClearWarnings() { r.warnedOnce = sync.Map{} }

// RegisterFeature makes f resolvable by ID for pick-cycle aggregation
// lookups (spec §9 scene-wide ID->Feature map).
func (r *Renderer) RegisterFeature(f *s57data.Feature) { r.idToFeature[f.ID()] = f }

func (r *Renderer) resolveID(id uint32) *s57data.Feature { return r.idToFeature[id] }

// ---- External Renderer API (spec §6.1) ----

// Init configures the dotpitch and viewport. Idempotent after first
// success.
func (r *Renderer) Init(dotpitchMMX, dotpitchMMY float64, vpW, vpH int32) (bool, error) {
	if r.program.ID() != 0 {
		return true, nil
	}
	r.View.DotpitchMMX, r.View.DotpitchMMY = dotpitchMMX, dotpitchMMY
	r.View.ViewportW, r.View.ViewportH = vpW, vpH
	prog, err := gl.CompileProgram(gl.ShaderSource{
		Vertex:   defaultVertexShader,
		Fragment: defaultFragmentShader,
	})
	if err != nil {
		return false, fmt.Errorf("render: init: %w", err)
	}
	textProg, err := gl.CompileProgram(gl.ShaderSource{
		Vertex:   textVertexShader,
		Fragment: textFragmentShader,
	})
	if err != nil {
		return false, fmt.Errorf("render: init: text program: %w", err)
	}
	quadProg, err := gl.CompileProgram(gl.ShaderSource{
		Vertex:   quadVertexShader,
		Fragment: quadFragmentShader,
	})
	if err != nil {
		return false, fmt.Errorf("render: init: quad program: %w", err)
	}
	r.program = prog
	r.textProgram = textProg
	r.quadProgram = quadProg
	return true, nil
}

// SetView updates the view; drawing projection is recomputed on next
// begin(DRAW).
func (r *Renderer) SetView(centerLat, centerLon, rangeNM, northDeg float64) {
	r.View.CenterLat, r.View.CenterLon = centerLat, centerLon
	r.View.RangeNM, r.View.NorthDeg = rangeNM, northDeg
}

// SetViewport updates the pixel viewport rectangle.
func (r *Renderer) SetViewport(x, y, w, h int32) {
	r.View.ViewportX, r.View.ViewportY, r.View.ViewportW, r.View.ViewportH = x, y, w, h
}

// SetProjectedView sets the projected extent directly.
func (r *Renderer) SetProjectedView(s, w, n, e float64) {
	r.View.PMin, r.View.PMax = geom.Vec2{X: w, Y: s}, geom.Vec2{X: e, Y: n}
}

// GetProjectedView returns the projected extent.
func (r *Renderer) GetProjectedView() (s, w, n, e float64) {
	return r.View.PMin.Y, r.View.PMin.X, r.View.PMax.Y, r.View.PMax.X
}

// SetGeographicView sets the geographic extent directly.
func (r *Renderer) SetGeographicView(s, w, n, e float64) {
	r.View.GMin, r.View.GMax = geom.Vec2{X: w, Y: s}, geom.Vec2{X: e, Y: n}
}

// GetGeographicView returns the geographic extent.
func (r *Renderer) GetGeographicView() (s, w, n, e float64) {
	return r.View.GMin.Y, r.View.GMin.X, r.View.GMax.Y, r.View.GMax.X
}

// Begin validates and performs a cycle transition (spec §4.11): sets up
// the DRAW projection and recomputes SCAMIN. It does not clear the
// framebuffer.
func (r *Renderer) Begin(c frame.Cycle) (bool, error) {
	if err := r.Lifecycle.Begin(c); err != nil {
		return false, err
	}
	if c == frame.Draw {
		if err := r.Matrices.PushBoth(); err != nil {
			return false, err
		}
		r.Matrices.SetMode(matrixstack.Projection)
		r.Matrices.Ortho(float32(r.View.PMin.X), float32(r.View.PMax.X),
			float32(r.View.PMin.Y), float32(r.View.PMax.Y), 1, -1)
		r.Matrices.RotateZ(float32(r.View.NorthDeg * math.Pi / 180))
		r.View.MetersPerPixelX = (r.View.PMax.X - r.View.PMin.X) / float64(max32(r.View.ViewportW, 1))
		r.View.MetersPerPixelY = (r.View.PMax.Y - r.View.PMin.Y) / float64(max32(r.View.ViewportH, 1))
	}
	if c == frame.Pick {
		r.Pick = pick.NewCycle()
	}
	return true, nil
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// End closes cycle c, popping the matrices Begin(DRAW) pushed. The
// Renderer holds no framebuffer texture, so nothing is flagged stale.
func (r *Renderer) End(c frame.Cycle) (bool, error) {
	if c == frame.Draw {
		r.Matrices.PopBoth()
	}
	if err := r.Lifecycle.End(c); err != nil {
		return false, err
	}
	return true, nil
}

// Draw renders all non-text commands of one object (spec §6.1).
func (r *Renderer) Draw(f *s57data.Feature, cmds []Command) error {
	return r.Dispatch(&Object{Feature: f, cycle: cycleDraw}, cmds)
}

// DrawText renders TE/TX of one object; valid during LAST.
func (r *Renderer) DrawText(f *s57data.Feature, cmds []Command) error {
	return r.Dispatch(&Object{Feature: f, cycle: cycleLast}, cmds)
}

// DrawPick renders one object during a PICK pass (spec §4.9): every
// pickable object gets a unique color index assigned via r.Pick.Assign
// before its commands are dispatched, so the off-screen read-back PickName
// resolves against actually corresponds to something that was drawn.
func (r *Renderer) DrawPick(f *s57data.Feature, cmds []Command) error {
	return r.Dispatch(&Object{Feature: f, cycle: cyclePick}, cmds)
}

// DrawLights renders only LS/AC commands of a light feature.
func (r *Renderer) DrawLights(f *s57data.Feature, cmds []Command) error {
	var filtered []Command
	for _, c := range cmds {
		if c.Kind == Ls || c.Kind == Ac {
			filtered = append(filtered, c)
		}
	}
	return r.Dispatch(&Object{Feature: f, cycle: cycleDraw}, filtered)
}

// IsSuppressed gates an object on SCAMIN plus user toggle (spec §6.1,
// §8 boundary: scamin==+Inf governed only by user toggle).
func (r *Renderer) IsSuppressed(f *s57data.Feature, userToggleOff bool) bool {
	if userToggleOff {
		return true
	}
	if math.IsInf(f.Scamin(), 1) {
		return false
	}
	return r.View.Scamin() > f.Scamin()
}

// IsOffscreen tests f's extent against the current view (spec §6.1).
func (r *Renderer) IsOffscreen(f *s57data.Feature) bool {
	ext, ok := f.Extent()
	if !ok {
		return false
	}
	view := geom.Extent{W: r.View.PMin.X, S: r.View.PMin.Y, E: r.View.PMax.X, N: r.View.PMax.Y}
	return !ext.Intersects(view)
}

// Del releases f's GPU resources (spec §6.1).
func (r *Renderer) Del(f *s57data.Feature) error {
	if buf, ok := f.Primitive.(*primitive.Buffer); ok && buf != nil {
		buf.Release()
	}
	r.Text.InvalidateStatic(f.ID())
	delete(r.textShadowCounts, f.ID())
	delete(r.idToFeature, f.ID())
	return nil
}

// DrawGraticule renders the lat/lon grid overlay. Left intentionally
// minimal: the grid line geometry is produced by the scene driver (an
// external collaborator per spec §1); this just issues the draw once
// handed a primitive buffer.
func (r *Renderer) DrawGraticule(buf *primitive.Buffer) error {
	if buf == nil {
		return fmt.Errorf("render: DrawGraticule: nil buffer")
	}
	if err := buf.Upload(r.program); err != nil {
		return err
	}
	buf.Draw(func(x, y, z float32) { r.Matrices.Translate(glm.Vec{X: x, Y: y, Z: z}) })
	return nil
}

// ReadFBPixels reads back the current framebuffer (spec §6.1, §6.4).
func (r *Renderer) ReadFBPixels() []byte {
	return gl.ReadPixels(int(r.View.ViewportX), int(r.View.ViewportY),
		int(r.View.ViewportW), int(r.View.ViewportH))
}

const (
	defaultVertexShader = `#version 330
in vec3 in_pos;
uniform mat4 u_mvp;
void main() { gl_Position = u_mvp * vec4(in_pos, 1.0); }
` + "\x00"
	defaultFragmentShader = `#version 330
uniform vec4 u_color;
out vec4 frag_color;
void main() { frag_color = u_color; }
` + "\x00"

	textVertexShader = `#version 330
in vec3 in_pos;
in vec2 in_uv;
uniform mat4 u_mvp;
out vec2 v_uv;
void main() {
	v_uv = in_uv;
	gl_Position = u_mvp * vec4(in_pos, 1.0);
}
` + "\x00"
	textFragmentShader = `#version 330
in vec2 v_uv;
uniform sampler2D u_tex;
uniform vec4 u_color;
out vec4 frag_color;
void main() {
	float a = texture(u_tex, v_uv).r;
	frag_color = vec4(u_color.rgb, u_color.a * a);
}
` + "\x00"

	quadVertexShader = `#version 330
in vec3 in_pos;
in vec2 in_uv;
uniform mat4 u_mvp;
out vec2 v_uv;
void main() {
	v_uv = in_uv;
	gl_Position = u_mvp * vec4(in_pos, 1.0);
}
` + "\x00"
	quadFragmentShader = `#version 330
in vec2 v_uv;
uniform sampler2D u_tex;
out vec4 frag_color;
void main() { frag_color = texture(u_tex, v_uv); }
` + "\x00"
)
