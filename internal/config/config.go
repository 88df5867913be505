package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"flightglobe/geo"
	"flightglobe/geogl"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: FLIGHTGLOBE_WINDOW_WIDTH → window.width.
const EnvPrefix = "FLIGHTGLOBE"

// Config holds all viewer configuration.
type Config struct {
	Window    WindowConfig    `mapstructure:"window"`
	Headless  HeadlessConfig  `mapstructure:"headless"`
	Globe     GlobeConfig     `mapstructure:"globe"`
	Satellite SatelliteConfig `mapstructure:"satellite"`
	Camera    CameraConfig    `mapstructure:"camera"`
	Light     LightConfig     `mapstructure:"light"`
	Route     RouteConfig     `mapstructure:"route"`
	Textures  TextureConfig   `mapstructure:"textures"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

type HeadlessConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Hz       int    `mapstructure:"hz"`
	Frames   uint64 `mapstructure:"frames"`
	Snapshot string `mapstructure:"snapshot"`
}

type GlobeConfig struct {
	Radius         float64 `mapstructure:"radius"`
	WidthSegments  int     `mapstructure:"width_segments"`
	HeightSegments int     `mapstructure:"height_segments"`
	ClearColor     string  `mapstructure:"clear_color"`
}

type SatelliteConfig struct {
	Position []float64 `mapstructure:"position"`
	Size     float64   `mapstructure:"size"`
	Spin     float64   `mapstructure:"spin"`
}

// Camera projections.
const (
	ProjectionOrthographic = "orthographic"
	ProjectionPerspective  = "perspective"
)

type CameraConfig struct {
	Projection string    `mapstructure:"projection"`
	Extent     float64   `mapstructure:"extent"`
	FOV        float64   `mapstructure:"fov"` // perspective, degrees
	Position   []float64 `mapstructure:"position"`
	Near       float64   `mapstructure:"near"`
	Far        float64   `mapstructure:"far"`
}

// LightConfig is a white ambient term plus an optional directional term.
// Directional 0 disables the directional term.
type LightConfig struct {
	Ambient     float64   `mapstructure:"ambient"`
	Directional float64   `mapstructure:"directional"`
	Direction   []float64 `mapstructure:"direction"`
}

type RouteConfig struct {
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
	Segments int    `mapstructure:"segments"`
	Color    string `mapstructure:"color"`
}

type TextureConfig struct {
	Earth     string `mapstructure:"earth"`
	Satellite string `mapstructure:"satellite"`
	MaxSize   int    `mapstructure:"max_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", 960)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "Flight Globe")
	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.frames", 0)
	v.SetDefault("headless.snapshot", "")
	v.SetDefault("globe.radius", geo.DefaultRadius)
	v.SetDefault("globe.width_segments", 40)
	v.SetDefault("globe.height_segments", 40)
	v.SetDefault("globe.clear_color", "#b9d3ff")
	v.SetDefault("satellite.position", []float64{200, 0, 0})
	v.SetDefault("satellite.size", 20)
	v.SetDefault("satellite.spin", 0.01)
	v.SetDefault("camera.projection", ProjectionOrthographic)
	v.SetDefault("camera.extent", 200)
	v.SetDefault("camera.fov", 45)
	v.SetDefault("camera.position", []float64{5, -20, 200})
	v.SetDefault("camera.near", 1)
	v.SetDefault("camera.far", 10000)
	v.SetDefault("light.ambient", 1)
	v.SetDefault("light.directional", 0)
	v.SetDefault("light.direction", []float64{-1, -1, -1})
	v.SetDefault("route.from", geo.Beijing.String())
	v.SetDefault("route.to", geo.NewYork.String())
	v.SetDefault("route.segments", geo.DefaultSegments)
	v.SetDefault("route.color", "#ee82ee")
	v.SetDefault("textures.earth", "assets/images/earth3.jpg")
	v.SetDefault("textures.satellite", "assets/images/moon.png")
	v.SetDefault("textures.max_size", geogl.DefaultMaxTextureSize)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.addr", "")
}

// RegisterFlags adds the command-line overrides to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a config file (yaml, json or toml).")
	fs.Bool("headless", false, "Run without a window.")
	fs.Int("hz", 60, "Tick rate in headless mode.")
	fs.Uint64("frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	fs.String("snapshot", "", "Write the last headless frame to this PNG file.")
	fs.Int("width", 960, "Window width.")
	fs.Int("height", 720, "Window height.")
	fs.String("from", geo.Beijing.String(), "Route start as lon,lat.")
	fs.String("to", geo.NewYork.String(), "Route end as lon,lat.")
	fs.String("projection", ProjectionOrthographic, "Camera projection: orthographic or perspective.")
	fs.String("earth", "assets/images/earth3.jpg", "Earth texture path.")
	fs.String("satellite", "assets/images/moon.png", "Satellite texture path.")
	fs.String("log-level", "info", "Log level: debug, info, warn, error.")
	fs.String("metrics-addr", "", "Serve Prometheus metrics on this address (empty = off).")
}

var flagKeys = map[string]string{
	"headless":     "headless.enabled",
	"hz":           "headless.hz",
	"frames":       "headless.frames",
	"snapshot":     "headless.snapshot",
	"width":        "window.width",
	"height":       "window.height",
	"from":         "route.from",
	"to":           "route.to",
	"projection":   "camera.projection",
	"earth":        "textures.earth",
	"satellite":    "textures.satellite",
	"log-level":    "log.level",
	"metrics-addr": "metrics.addr",
}

// Load reads configuration from defaults, an optional config file,
// environment variables and fs (in increasing priority). fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("flightglobe")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if fs != nil {
		if f := fs.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Sprintf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Headless.Hz <= 0 {
		errs = append(errs, fmt.Sprintf("headless.hz must be positive, got %d", c.Headless.Hz))
	}
	if c.Globe.Radius <= 0 {
		errs = append(errs, fmt.Sprintf("globe.radius must be positive, got %v", c.Globe.Radius))
	}
	if c.Globe.WidthSegments < 3 || c.Globe.HeightSegments < 2 {
		errs = append(errs, "globe segments must be at least 3x2")
	}
	if _, err := ParseColor(c.Globe.ClearColor); err != nil {
		errs = append(errs, "globe.clear_color: "+err.Error())
	}
	if len(c.Satellite.Position) != 3 {
		errs = append(errs, "satellite.position must have 3 components")
	}
	if c.Satellite.Size <= 0 {
		errs = append(errs, "satellite.size must be positive")
	}
	switch c.Camera.Projection {
	case ProjectionOrthographic:
		if c.Camera.Extent <= 0 {
			errs = append(errs, "camera.extent must be positive")
		}
	case ProjectionPerspective:
		if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
			errs = append(errs, fmt.Sprintf("camera.fov must be in (0, 180), got %v", c.Camera.FOV))
		}
	default:
		errs = append(errs, fmt.Sprintf("camera.projection %q: want %s or %s", c.Camera.Projection, ProjectionOrthographic, ProjectionPerspective))
	}
	if len(c.Camera.Position) != 3 {
		errs = append(errs, "camera.position must have 3 components")
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Sprintf("camera near/far invalid: %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 || c.Light.Directional < 0 || c.Light.Directional > 1 {
		errs = append(errs, "light.ambient and light.directional must be in [0, 1]")
	}
	if c.Light.Directional > 0 && (len(c.Light.Direction) != 3 || Vec3(c.Light.Direction) == (geogl.Vec3{})) {
		errs = append(errs, "light.direction must be a non-zero 3 component vector")
	}
	if _, err := geo.ParseGeoPoint(c.Route.From); err != nil {
		errs = append(errs, "route.from: "+err.Error())
	}
	if _, err := geo.ParseGeoPoint(c.Route.To); err != nil {
		errs = append(errs, "route.to: "+err.Error())
	}
	if c.Route.Segments < 1 {
		errs = append(errs, "route.segments must be at least 1")
	}
	if _, err := ParseColor(c.Route.Color); err != nil {
		errs = append(errs, "route.color: "+err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// FlightRoute returns the configured route. Call after Validate.
func (c *Config) FlightRoute() geo.Route {
	from, _ := geo.ParseGeoPoint(c.Route.From)
	to, _ := geo.ParseGeoPoint(c.Route.To)
	return geo.Route{From: from, To: to, Radius: c.Globe.Radius}
}

// ParseColor parses "#rrggbb" or "0xrrggbb".
func ParseColor(s string) (geogl.Color, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	if len(s) != 6 {
		return geogl.Color{}, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return geogl.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return geogl.Hex(uint32(v)), nil
}

// Vec3 converts a 3-component slice. Call after Validate.
func Vec3(v []float64) geogl.Vec3 {
	if len(v) != 3 {
		return geogl.Vec3{}
	}
	return geogl.V3(float32(v[0]), float32(v[1]), float32(v[2]))
}
