package scene

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/orrery/internal/config"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/internal/mesh"
	"github.com/Faultbox/orrery/internal/orbit"
	"github.com/Faultbox/orrery/pkg/math"
)

func solarConfig() config.SceneConfig {
	return config.Default().Scene
}

func TestBuildLogsUnderSceneComponent(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	orig := logger.Log
	logger.Log = zap.New(core)
	defer func() { logger.Log = orig }()

	if _, err := Build(solarConfig()); err != nil {
		t.Fatalf("Build: %v", err)
	}

	added := logs.FilterMessage("body added")
	if added.Len() != 3 {
		t.Errorf("expected 3 body added entries, got %d", added.Len())
	}
	for _, e := range logs.All() {
		if e.ContextMap()["component"] != "scene" {
			t.Errorf("entry %q missing component=scene: %v", e.Message, e.ContextMap())
		}
	}
	built := logs.FilterMessage("scene built").All()
	if len(built) != 1 || built[0].ContextMap()["meshes"] != int64(3) {
		t.Errorf("unexpected scene built entries: %v", built)
	}
}

func TestBuildDefault(t *testing.T) {
	s, err := Build(solarConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 bodies, got %d", s.Len())
	}
	for i, name := range []string{"sun", "earth", "moon"} {
		h, ok := s.System.Lookup(name)
		if !ok || h != orbit.Handle(i) {
			t.Errorf("Lookup(%s) = %d, %v; want %d", name, h, ok, i)
		}
	}
	if len(s.Meshes()) != 3 {
		t.Errorf("expected 3 distinct meshes, got %d", len(s.Meshes()))
	}
	if err := orbit.ValidateOrder(s.System.Bodies()); err != nil {
		t.Errorf("bodies not in order: %v", err)
	}
}

func TestBuildReordersParentsFirst(t *testing.T) {
	cfg := config.SceneConfig{
		Resolution: 8,
		Bodies: []config.BodyConfig{
			{Name: "moon", Parent: "earth", Radius: 0.25, OrbitRadius: 2},
			{Name: "phobos", Parent: "mars", Radius: 0.1, OrbitRadius: 1},
			{Name: "earth", Parent: "sun", Radius: 0.5, OrbitRadius: 10},
			{Name: "mars", Parent: "sun", Radius: 0.4, OrbitRadius: 15},
			{Name: "sun", Radius: 1},
		},
	}

	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	var names []string
	for _, b := range s.System.Bodies() {
		names = append(names, b.Name)
	}
	if got, want := strings.Join(names, ","), "sun,earth,mars,moon,phobos"; got != want {
		t.Errorf("order = %s, want %s", got, want)
	}

	moon, _ := s.System.Lookup("moon")
	earth, _ := s.System.Lookup("earth")
	if s.System.Body(moon).Parent != earth {
		t.Errorf("moon parent = %d, want earth (%d)", s.System.Body(moon).Parent, earth)
	}
}

func TestBuildSharesMeshesByRadius(t *testing.T) {
	cfg := config.SceneConfig{
		Resolution: 6,
		Bodies: []config.BodyConfig{
			{Name: "sun", Radius: 1},
			{Name: "a", Parent: "sun", Radius: 0.5, OrbitRadius: 4},
			{Name: "b", Parent: "sun", Radius: 0.5, OrbitRadius: 8},
		},
	}

	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if s.Mesh(1) != s.Mesh(2) {
		t.Error("bodies with equal radius should share a mesh")
	}
	if s.Mesh(0) == s.Mesh(1) {
		t.Error("bodies with different radius should not share a mesh")
	}
	if len(s.Meshes()) != 2 {
		t.Errorf("expected 2 distinct meshes, got %d", len(s.Meshes()))
	}
	if s.Mesh(1).Resolution != 6 || s.Mesh(1).Radius != 0.5 {
		t.Errorf("unexpected mesh parameters: res %d radius %v", s.Mesh(1).Resolution, s.Mesh(1).Radius)
	}
}

func TestBuildInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		bodies  []config.BodyConfig
		mention string
	}{
		{
			name:    "no bodies",
			mention: "no root",
		},
		{
			name: "no root",
			bodies: []config.BodyConfig{
				{Name: "a", Parent: "b", Radius: 1},
				{Name: "b", Parent: "a", Radius: 1},
			},
			mention: "no root",
		},
		{
			name: "two roots",
			bodies: []config.BodyConfig{
				{Name: "sun", Radius: 1},
				{Name: "star", Radius: 1},
			},
			mention: "star",
		},
		{
			name: "unknown parent",
			bodies: []config.BodyConfig{
				{Name: "sun", Radius: 1},
				{Name: "moon", Parent: "earth", Radius: 1},
			},
			mention: "moon",
		},
		{
			name: "cycle",
			bodies: []config.BodyConfig{
				{Name: "sun", Radius: 1},
				{Name: "a", Parent: "b", Radius: 1},
				{Name: "b", Parent: "a", Radius: 1},
			},
			mention: "a, b",
		},
		{
			name: "duplicate name",
			bodies: []config.BodyConfig{
				{Name: "sun", Radius: 1},
				{Name: "sun", Parent: "sun", Radius: 1},
			},
			mention: "sun",
		},
		{
			name: "missing name",
			bodies: []config.BodyConfig{
				{Name: "sun", Radius: 1},
				{Parent: "sun", Radius: 1},
			},
			mention: "no name",
		},
		{
			name: "negative orbit radius",
			bodies: []config.BodyConfig{
				{Name: "sun", Radius: 1},
				{Name: "earth", Parent: "sun", Radius: 1, OrbitRadius: -3},
			},
			mention: "earth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Build(config.SceneConfig{Resolution: 8, Bodies: tt.bodies})
			if !errors.Is(err, orbit.ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
			}
			if s != nil {
				t.Error("expected nil scene on error")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error %q should mention %q", err, tt.mention)
			}
		})
	}
}

func TestBuildInvalidGeometry(t *testing.T) {
	cfg := solarConfig()
	cfg.Resolution = 2
	if _, err := Build(cfg); !errors.Is(err, mesh.ErrInvalidParameter) {
		t.Errorf("resolution 2: expected ErrInvalidParameter, got %v", err)
	}

	cfg = solarConfig()
	cfg.Bodies[2].Radius = 0
	_, err := Build(cfg)
	if !errors.Is(err, mesh.ErrInvalidParameter) {
		t.Fatalf("zero radius: expected ErrInvalidParameter, got %v", err)
	}
	if !strings.Contains(err.Error(), "moon") {
		t.Errorf("error %q should name the body", err)
	}
}

func TestBuildColors(t *testing.T) {
	cfg := solarConfig()
	cfg.Bodies[0].Color = "#ff0000"
	cfg.Bodies[1].Color = ""

	s, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	draws := s.Frame(0, nil)
	if draws[0].Color != [3]float32{1, 0, 0} {
		t.Errorf("sun color = %v, want red", draws[0].Color)
	}
	for i, c := range draws[1].Color {
		if c < 0 || c > 1 {
			t.Errorf("generated color channel %d = %v out of range", i, c)
		}
	}

	cfg.Bodies[2].Color = "blue-ish"
	if _, err := Build(cfg); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestFrame(t *testing.T) {
	s, err := Build(solarConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	draws := s.Frame(5, make([]Draw, 0, 3))
	if len(draws) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(draws))
	}

	sun, earth, moon := draws[0], draws[1], draws[2]
	if !sun.Emissive || earth.Emissive || moon.Emissive {
		t.Errorf("only the root should be emissive: %v %v %v", sun.Emissive, earth.Emissive, moon.Emissive)
	}
	if sun.Model != math.Identity() {
		t.Errorf("static sun model = %v, want identity", sun.Model)
	}
	if earth.Center.Distance(math.Vec3{X: -10}) > 1e-4 {
		t.Errorf("earth center at t=5 = %v, want (-10, 0, 0)", earth.Center)
	}
	if moon.Mesh != s.Mesh(2) || moon.Name != "moon" || moon.Body != 2 {
		t.Errorf("unexpected moon draw: %+v", moon)
	}

	want := orbit.ByName(s.System.Bodies(), s.System.Compose(5))
	for _, d := range draws {
		if d.Model != want[d.Name].Model || d.Center != want[d.Name].Center {
			t.Errorf("%s: draw does not match composed transform", d.Name)
		}
	}

	// Reusing the draw buffer must not leak the previous frame.
	again := s.Frame(1, draws)
	if len(again) != 3 {
		t.Fatalf("expected 3 draws, got %d", len(again))
	}
	if again[1].Center == earth.Center {
		t.Error("earth should have moved between t=5 and t=1")
	}
}
