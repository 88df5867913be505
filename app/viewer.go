// Package app assembles the flight globe: earth sphere, flight line and
// orbiting satellite, rendered once per host tick.
package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"runtime/debug"
	"sync"
	"time"

	"flightglobe/geo"
	"flightglobe/geogl"
	"flightglobe/hal"
	"flightglobe/internal/config"
	"flightglobe/internal/logging"
	"flightglobe/internal/metrics"
)

// ErrNotMounted is returned when a mount step or a frame runs before the
// steps it depends on.
var ErrNotMounted = errors.New("app: viewer not mounted")

type stage uint8

const (
	stageNone stage = iota
	stageScene
	stageLight
	stageCamera
	stageRenderer
	stageControls
)

var stageNames = [...]string{"none", "scene", "light", "camera", "renderer", "controls"}

func (s stage) String() string { return stageNames[s] }

const (
	sceneCapacity = 8

	dragRotateSpeed = 0.01 // rad per pixel
	keyRotateSpeed  = 0.02 // rad per tick
	wheelZoomStep   = 0.1
	keyZoomStep     = 0.1
)

var satelliteMarker = geogl.RGB(0xff, 0xc8, 0x3c)

// Options configures a Viewer.
type Options struct {
	Config  *config.Config
	Logger  logging.Logger
	Metrics *metrics.Collector
	// Loader defaults to a TextureLoader on the host file system.
	Loader *geogl.TextureLoader
}

// Viewer owns the scene, camera, renderer and frame loop.
//
// HandleInput, Tick, Frame and Resize serialize on an internal lock, so a
// host may deliver resizes from a different goroutine than its ticks.
type Viewer struct {
	cfg     *config.Config
	log     logging.Logger
	metrics *metrics.Collector
	loader  *geogl.TextureLoader

	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	stage stage

	scene     *geogl.Scene
	globe     geogl.ObjectID
	flight    geogl.ObjectID
	satellite geogl.ObjectID
	route     geo.Route
	arc       geo.ArcCurve

	camera   *geogl.Camera
	renderer *geogl.Renderer
	controls *geogl.OrbitController
	fb       hal.Framebuffer
	hud      *hud
	loop     *FrameLoop

	earthReq     *geogl.TextureRequest
	satelliteReq *geogl.TextureRequest

	width, height int
	status        string
	warn          bool
	lastStats     geogl.Stats
}

// New returns an unmounted viewer. Texture loads started by Mount live until
// ctx is done or Stop is called.
func New(ctx context.Context, opts Options) (*Viewer, error) {
	if opts.Config == nil {
		return nil, errors.New("app: nil config")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = logging.Noop()
	}
	if opts.Loader == nil {
		opts.Loader = &geogl.TextureLoader{MaxSize: opts.Config.Textures.MaxSize}
	}
	ctx, cancel := context.WithCancel(ctx)
	v := &Viewer{
		cfg:       opts.Config,
		log:       opts.Logger,
		metrics:   opts.Metrics,
		loader:    opts.Loader,
		ctx:       ctx,
		cancel:    cancel,
		globe:     geogl.InvalidObject,
		flight:    geogl.InvalidObject,
		satellite: geogl.InvalidObject,
		width:     opts.Config.Window.Width,
		height:    opts.Config.Window.Height,
	}
	v.loop = NewFrameLoop(v.frame)
	v.loop.OnFrame(func(d time.Duration) {
		v.metrics.ObserveFrame(d, v.lastStats.Triangles)
	})
	return v, nil
}

// Mount builds the viewer: scene, light, camera, renderer, controls.
func (v *Viewer) Mount() error {
	steps := []func() error{
		v.CreateScene,
		v.CreateLight,
		v.CreateCamera,
		v.RenderSetting,
		v.AddControls,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	v.log.Info(v.ctx, "viewer mounted",
		logging.Int("width", v.width),
		logging.Int("height", v.height),
		logging.String("route", v.route.From.String()+" -> "+v.route.To.String()),
	)
	return nil
}

// advance runs fn as mount step next. It fails if the previous step has not
// run and is a no-op if next already ran.
func (v *Viewer) advance(next stage, fn func() error) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stage >= next {
		return nil
	}
	if v.stage != next-1 {
		return fmt.Errorf("%w: %s requires %s", ErrNotMounted, next, next-1)
	}
	if err := fn(); err != nil {
		return err
	}
	v.stage = next
	v.log.Debug(v.ctx, "mount step done", logging.String("step", next.String()))
	return nil
}

// CreateScene adds the earth, the flight line and starts both texture
// loads. The satellite joins the scene once its texture resolves.
func (v *Viewer) CreateScene() error {
	return v.advance(stageScene, func() error {
		cfg := v.cfg
		v.scene = geogl.CreateScene(sceneCapacity)

		sphere := geogl.NewSphere(float32(cfg.Globe.Radius), cfg.Globe.WidthSegments, cfg.Globe.HeightSegments)
		sphere.Material.BaseColor = geogl.White
		v.globe = v.scene.Add(geogl.Object{Name: "earth", Geometry: sphere})

		v.route = cfg.FlightRoute()
		arc, err := v.route.Arc(geo.WithSegments(cfg.Route.Segments))
		if errors.Is(err, geo.ErrAntipodal) {
			v.log.Warn(v.ctx, "flight line drawn as chord", logging.Err(err))
			v.setStatus("route endpoints are antipodal", true)
		}
		v.arc = arc
		lineColor, _ := config.ParseColor(cfg.Route.Color)
		v.flight = v.scene.Add(geogl.Object{
			Name: "flight",
			Geometry: &geogl.Line{
				Positions: geogl.FromR3s(arc.Points),
				Material:  geogl.LineMaterial{Color: lineColor},
			},
		})

		from, to := v.route.Endpoints()
		v.hud = &hud{
			title: fmt.Sprintf("%s -> %s  %.0f km", v.route.From, v.route.To, v.route.GreatCircleKm()),
			labels: []hudLabel{
				{text: v.route.From.String(), pos: geogl.FromR3(from)},
				{text: v.route.To.String(), pos: geogl.FromR3(to)},
			},
		}

		v.earthReq = v.loader.Load(v.ctx, cfg.Textures.Earth)
		v.satelliteReq = v.loader.Load(v.ctx, cfg.Textures.Satellite)
		return nil
	})
}

// CreateLight sets a white ambient light, plus a directional term when
// light.directional is positive.
func (v *Viewer) CreateLight() error {
	return v.advance(stageLight, func() error {
		lc := v.cfg.Light
		light := geogl.AmbientLight(geogl.White, float32(lc.Ambient))
		if lc.Directional > 0 {
			light.Mode = geogl.LightAmbientDirectional
			light.Dir = config.Vec3(lc.Direction)
			light.DirAmount = float32(lc.Directional)
		}
		v.scene.Light = light
		return nil
	})
}

// CreateCamera places the camera looking at the origin.
func (v *Viewer) CreateCamera() error {
	return v.advance(stageCamera, func() error {
		cc := v.cfg.Camera
		k, near, far := aspect(v.width, v.height), float32(cc.Near), float32(cc.Far)
		if cc.Projection == config.ProjectionPerspective {
			v.camera = geogl.NewPerspectiveCamera(float32(cc.FOV*math.Pi/180), k, near, far)
		} else {
			v.camera = geogl.NewOrthographicCamera(float32(cc.Extent), k, near, far)
		}
		v.camera.Position = config.Vec3(cc.Position)
		v.camera.LookAt(geogl.Vec3{})
		return nil
	})
}

// RenderSetting creates the renderer at the current viewport size.
func (v *Viewer) RenderSetting() error {
	return v.advance(stageRenderer, func() error {
		bg, _ := config.ParseColor(v.cfg.Globe.ClearColor)
		v.renderer = geogl.NewRenderer(v.width, v.height)
		v.renderer.ClearColor = bg
		v.fb = hal.NewRGBAFramebuffer(v.renderer.Output())
		return nil
	})
}

// AddControls attaches the orbit controller to the camera.
func (v *Viewer) AddControls() error {
	return v.advance(stageControls, func() error {
		v.controls = geogl.NewOrbitController(v.camera)
		return nil
	})
}

// HandleInput applies one tick of pointer and keyboard input to the orbit.
func (v *Viewer) HandleInput(in hal.Input) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stage < stageControls || in.Empty() {
		return
	}
	c := v.controls

	yaw := float32(-in.DragX * dragRotateSpeed)
	pitch := float32(in.DragY * dragRotateSpeed)
	if in.IsHeld(hal.KeyLeft) {
		yaw -= keyRotateSpeed
	}
	if in.IsHeld(hal.KeyRight) {
		yaw += keyRotateSpeed
	}
	if in.IsHeld(hal.KeyUp) {
		pitch += keyRotateSpeed
	}
	if in.IsHeld(hal.KeyDown) {
		pitch -= keyRotateSpeed
	}
	if yaw != 0 || pitch != 0 {
		c.Rotate(yaw, pitch)
	}

	if in.Wheel != 0 {
		c.Zoom(float32(in.Wheel * wheelZoomStep))
	}
	if in.Pressed(hal.KeyZoomIn) {
		c.Zoom(keyZoomStep)
	}
	if in.Pressed(hal.KeyZoomOut) {
		c.Zoom(-keyZoomStep)
	}
	if in.Pressed(hal.KeyReset) {
		c.Reset()
	}
	if in.Pressed(hal.KeyWireframe) {
		if v.renderer.Mode == geogl.RenderWireframe {
			v.renderer.SetRenderMode(geogl.RenderSolid)
		} else {
			v.renderer.SetRenderMode(geogl.RenderWireframe)
		}
	}
	c.Apply(v.camera)
}

// Tick is called once per display refresh. It applies finished texture
// loads and runs a frame once the loop has started.
func (v *Viewer) Tick() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stage < stageControls {
		return ErrNotMounted
	}
	v.pollTextures()
	return v.loop.Tick()
}

func (v *Viewer) pollTextures() {
	if req := v.earthReq; req != nil && req.Ready() {
		v.earthReq = nil
		tex, err := req.Result()
		v.metrics.ObserveTexture(err)
		if err != nil {
			v.textureWarning("earth", req.Path(), err)
		} else {
			v.scene.SetMeshMap(v.globe, tex)
			v.log.Debug(v.ctx, "earth texture applied", logging.String("path", req.Path()))
		}
	}

	if req := v.satelliteReq; req != nil && req.Ready() {
		v.satelliteReq = nil
		tex, err := req.Result()
		v.metrics.ObserveTexture(err)
		if err != nil {
			v.textureWarning("satellite", req.Path(), err)
			tex = nil
		}
		v.addSatellite(tex)
		v.loop.Start()
		v.log.Info(v.ctx, "render loop started", logging.Bool("textured_satellite", tex != nil))
	}
}

func (v *Viewer) textureWarning(name, path string, err error) {
	v.log.Warn(v.ctx, "texture unavailable", logging.String("texture", name), logging.String("path", path), logging.Err(err))
	if errors.Is(err, context.Canceled) {
		return
	}
	v.setStatus(name+" texture unavailable", true)
}

func (v *Viewer) addSatellite(tex *geogl.Texture) {
	sc := v.cfg.Satellite
	mat := geogl.PointsMaterial{
		Color:       geogl.White,
		Map:         tex,
		Size:        float32(sc.Size),
		Transparent: true,
		DepthWrite:  false,
	}
	if tex == nil {
		mat.Color = satelliteMarker
	}
	v.satellite = v.scene.Add(geogl.Object{
		Name:     "satellite",
		Geometry: &geogl.Points{Positions: []geogl.Vec3{config.Vec3(sc.Position)}, Material: mat},
	})
}

// Frame renders one frame regardless of the loop state.
func (v *Viewer) Frame() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.stage < stageRenderer {
		return ErrNotMounted
	}
	return v.frame()
}

func (v *Viewer) frame() (err error) {
	defer func() {
		if r := recover(); r != nil {
			drawPanic(v.renderer.Output(), r, debug.Stack())
			err = fmt.Errorf("app: frame panic: %v", r)
		}
	}()

	v.lastStats = v.renderer.Render(v.scene, v.camera)
	if v.satellite != geogl.InvalidObject {
		v.scene.RotateY(v.satellite, float32(v.cfg.Satellite.Spin))
	}
	v.hud.draw(v.renderer.Output(), v.camera, v.status, v.warn)
	return nil
}

// Resize applies a viewport size: renderer buffer w x h, camera aspect w/h.
// Repeated calls with the same size and non-positive sizes change nothing.
func (v *Viewer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if w == v.width && h == v.height {
		return
	}
	v.width, v.height = w, h
	if v.renderer != nil {
		v.renderer.SetSize(w, h)
	}
	if v.camera != nil {
		v.camera.SetAspect(aspect(w, h))
		v.camera.MarkProjectionDirty()
	}
	v.metrics.ObserveResize()
	v.log.Debug(v.ctx, "viewport resized", logging.Int("width", w), logging.Int("height", h))
}

// Stop cancels pending texture loads and all future frames.
func (v *Viewer) Stop() {
	v.cancel()
	v.loop.Stop()
	v.log.Info(v.ctx, "viewer stopped", logging.Int("frames", int(v.loop.Frames())))
}

// Framebuffer exposes the rendered image to the host.
func (v *Viewer) Framebuffer() hal.Framebuffer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.fb == nil {
		return hal.NewRGBAFramebuffer(nil)
	}
	return v.fb
}

// Image returns the current frame, or nil before RenderSetting.
func (v *Viewer) Image() *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.renderer == nil {
		return nil
	}
	return v.renderer.Output().Image()
}

// Frames reports how many frames the loop has rendered. Hosts use it to
// tell rendered frames from ticks spent waiting for textures.
func (v *Viewer) Frames() uint64 { return v.loop.Frames() }

func (v *Viewer) Loop() *FrameLoop                 { return v.loop }
func (v *Viewer) Scene() *geogl.Scene              { return v.scene }
func (v *Viewer) Camera() *geogl.Camera            { return v.camera }
func (v *Viewer) Renderer() *geogl.Renderer        { return v.renderer }
func (v *Viewer) Arc() geo.ArcCurve                { return v.arc }
func (v *Viewer) LastStats() geogl.Stats           { return v.lastStats }
func (v *Viewer) Globe() geogl.ObjectID            { return v.globe }
func (v *Viewer) FlightLine() geogl.ObjectID       { return v.flight }
func (v *Viewer) Satellite() geogl.ObjectID        { return v.satellite }
func (v *Viewer) Controls() *geogl.OrbitController { return v.controls }

// Status returns the HUD status line and whether it is a warning.
func (v *Viewer) Status() (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status, v.warn
}

func (v *Viewer) setStatus(s string, warn bool) {
	v.status, v.warn = s, warn
}

func aspect(w, h int) float32 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
