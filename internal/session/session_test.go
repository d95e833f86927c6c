package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shader-preview/internal/assets"
	"shader-preview/internal/fault"
	"shader-preview/internal/lighting"
	"shader-preview/internal/material"
	"shader-preview/internal/mesh"
	"shader-preview/internal/program"
)

const goodFragment = `#version 330
out vec4 finalColor;
void main() { finalColor = vec4(1.0); }
`

const brokenFragment = `#version 330
out vec4 finalColor;
void main() { finalColor = nope; }
`

const triangleOBJ = `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

type countingProgram struct {
	dev      *countingDevice
	set      map[string]material.Value
	released bool
}

func (p *countingProgram) SetUniform(name string, v material.Value) { p.set[name] = v }

func (p *countingProgram) Release() {
	if !p.released {
		p.released = true
		p.dev.live--
	}
}

// countingDevice rejects brokenFragment with a compile diagnostic and keeps a
// live-program balance so material leaks show up as live != 1.
type countingDevice struct {
	compiled []program.Source
	progs    []*countingProgram
	live     int
}

func (d *countingDevice) Compile(src program.Source) (material.Program, error) {
	if src.FragmentText == brokenFragment {
		return nil, program.NewCompileError("ERROR: 0:3: 'nope' : undeclared identifier")
	}
	d.compiled = append(d.compiled, src)
	p := &countingProgram{dev: d, set: make(map[string]material.Value)}
	d.progs = append(d.progs, p)
	d.live++
	return p, nil
}

func (d *countingDevice) lastFragment() string {
	if len(d.compiled) == 0 {
		return ""
	}
	return d.compiled[len(d.compiled)-1].FragmentText
}

func newTestSession(t *testing.T) (*Session, *countingDevice) {
	t.Helper()
	dev := &countingDevice{}
	s, err := New(dev, assets.NewLoader(t.TempDir()), nil)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, dev
}

func writeOBJ(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.obj")
	require.NoError(t, os.WriteFile(path, []byte(triangleOBJ), 0o644))
	return path
}

// waitInstalled ticks until the pending load resolves, as the frame loop would.
func waitInstalled(t *testing.T, s *Session) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for s.LoadPending() {
		if time.Now().After(deadline) {
			t.Fatal("model load did not resolve")
		}
		time.Sleep(5 * time.Millisecond)
		s.Tick()
	}
}

func TestNewBindsEmptyFallback(t *testing.T) {
	s, dev := newTestSession(t)

	assert.Equal(t, fault.Clean, s.FaultState())
	assert.Equal(t, mesh.Primitive(mesh.Box), s.Descriptor())
	require.NotNil(t, s.Material())
	assert.True(t, s.Material().IsFallback())
	assert.Equal(t, program.EmptyFallbackFragment, dev.lastFragment())
}

func TestSetSourceIdenticalTextIsNoOp(t *testing.T) {
	s, dev := newTestSession(t)

	s.SetSource(program.New("", goodFragment))
	n := len(dev.compiled)
	s.SetSource(program.New("", goodFragment))
	assert.Len(t, dev.compiled, n, "identical text must not rebind")

	s.SetSource(program.New("", goodFragment+"\n// tweak"))
	assert.Len(t, dev.compiled, n+1, "any text change must rebind")
}

func TestCompileFaultBindsFallbackAndHolds(t *testing.T) {
	s, dev := newTestSession(t)

	s.SetSource(program.New("", brokenFragment))
	assert.Equal(t, fault.Faulted, s.FaultState())
	var ce *program.CompileError
	require.ErrorAs(t, s.FaultReason(), &ce)
	assert.Equal(t, 3, ce.Line)
	assert.Equal(t, program.FaultFallbackFragment, dev.lastFragment())

	// Further edits while faulted are stored, not bound.
	n := len(dev.compiled)
	s.SetSource(program.New("", goodFragment))
	assert.Equal(t, fault.Faulted, s.FaultState())
	assert.Len(t, dev.compiled, n)
	assert.Equal(t, goodFragment, s.Source().FragmentText)
}

func TestMeshChangeResetsFaultAndReattempts(t *testing.T) {
	s, dev := newTestSession(t)

	s.SetSource(program.New("", brokenFragment))
	require.Equal(t, fault.Faulted, s.FaultState())

	// Still-broken source re-trips on the fresh selection.
	s.SetMesh(mesh.Primitive(mesh.Sphere))
	assert.Equal(t, fault.Faulted, s.FaultState())
	assert.Equal(t, program.FaultFallbackFragment, dev.lastFragment())

	// A fix stored during the fault binds on the next reset trigger.
	s.SetSource(program.New("", goodFragment))
	s.SetMesh(mesh.Primitive(mesh.Torus))
	assert.Equal(t, fault.Clean, s.FaultState())
	assert.Nil(t, s.FaultReason())
	assert.Equal(t, goodFragment, dev.lastFragment())
}

func TestLightingModeSwap(t *testing.T) {
	s, dev := newTestSession(t)
	s.SetSource(program.New("", goodFragment))

	s.SetLightingMode(lighting.ReferenceLit)
	assert.Equal(t, lighting.ReferenceSource().FragmentText, dev.lastFragment())
	// Selection and author source survive the swap untouched.
	assert.Equal(t, mesh.Primitive(mesh.Box), s.Descriptor())
	assert.Equal(t, goodFragment, s.Source().FragmentText)

	p := dev.progs[len(dev.progs)-1]
	assert.Contains(t, p.set, "lightDir")
	assert.Contains(t, p.set, "viewPos")

	s.SetLightingMode(lighting.ShaderDriven)
	assert.Equal(t, goodFragment, dev.lastFragment())
}

func TestLightingModeResetsFault(t *testing.T) {
	s, _ := newTestSession(t)

	s.SetSource(program.New("", brokenFragment))
	require.Equal(t, fault.Faulted, s.FaultState())

	s.SetLightingMode(lighting.ReferenceLit)
	assert.Equal(t, fault.Clean, s.FaultState())
	assert.False(t, s.Material().IsFallback())
}

func TestSourceChangeWhileReferenceLitDefersBind(t *testing.T) {
	s, dev := newTestSession(t)
	s.SetLightingMode(lighting.ReferenceLit)

	n := len(dev.compiled)
	s.SetSource(program.New("", goodFragment))
	assert.Len(t, dev.compiled, n, "author edits must not disturb the reference material")

	s.SetLightingMode(lighting.ShaderDriven)
	assert.Equal(t, goodFragment, dev.lastFragment())
}

func TestTickAdvancesMonotonicClock(t *testing.T) {
	now := time.Unix(1000, 0)
	restore := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = restore }()

	s, dev := newTestSession(t)

	now = now.Add(2 * time.Second)
	s.Tick()
	assert.InDelta(t, 2.0, s.Elapsed(), 1e-6)

	// A wall-clock step backwards never rewinds the session clock.
	now = now.Add(-5 * time.Second)
	s.Tick()
	assert.InDelta(t, 2.0, s.Elapsed(), 1e-6)

	now = now.Add(8 * time.Second)
	s.Tick()
	assert.InDelta(t, 5.0, s.Elapsed(), 1e-6)

	p := dev.progs[len(dev.progs)-1]
	v, ok := p.set[material.UniformElapsedTime]
	require.True(t, ok)
	assert.InDelta(t, 5.0, v.Data[0], 1e-6)
}

func TestClockSurvivesMeshAndModeChanges(t *testing.T) {
	now := time.Unix(1000, 0)
	restore := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = restore }()

	s, _ := newTestSession(t)
	now = now.Add(3 * time.Second)
	s.Tick()

	s.SetMesh(mesh.Primitive(mesh.Knot))
	s.SetLightingMode(lighting.ReferenceLit)
	s.Tick()
	assert.InDelta(t, 3.0, s.Elapsed(), 1e-6)
}

func TestCustomModelInstall(t *testing.T) {
	s, _ := newTestSession(t)

	path := writeOBJ(t)
	s.SetMesh(mesh.CustomModel(path))
	assert.True(t, s.LoadPending())
	assert.Nil(t, s.Scene())

	waitInstalled(t, s)
	require.NotNil(t, s.Scene())
	assert.Len(t, s.Scene().Meshes, 1)
	assert.NoError(t, s.LoadErr())
}

func TestLoadFailureStaysLocal(t *testing.T) {
	s, dev := newTestSession(t)
	s.SetSource(program.New("", goodFragment))
	n := len(dev.compiled)

	s.SetMesh(mesh.CustomModel(filepath.Join(t.TempDir(), "absent.glb")))
	waitInstalled(t, s)

	var le *assets.LoadError
	require.ErrorAs(t, s.LoadErr(), &le)
	assert.Nil(t, s.Scene())
	// The failure never reaches the fault boundary or the bound material.
	assert.Equal(t, fault.Clean, s.FaultState())
	assert.Len(t, dev.compiled, n)
}

func TestStaleLoadCompletionDiscarded(t *testing.T) {
	gate := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-gate
		w.Write([]byte(triangleOBJ))
	}))
	defer srv.Close()

	s, _ := newTestSession(t)
	loader := s.loader

	url := srv.URL + "/slow.obj"
	s.SetMesh(mesh.CustomModel(url))
	h := loader.Load(url)

	// The author moves on before the download finishes.
	s.SetMesh(mesh.Primitive(mesh.Sphere))
	close(gate)
	select {
	case <-h.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("download did not finish")
	}

	s.Tick()
	assert.Nil(t, s.Scene(), "a completion for a dropped selection must not install")
	assert.NoError(t, s.LoadErr())
}

func TestMeshChangeClearsPreviousLoadError(t *testing.T) {
	s, _ := newTestSession(t)

	s.SetMesh(mesh.CustomModel(filepath.Join(t.TempDir(), "absent.obj")))
	waitInstalled(t, s)
	require.Error(t, s.LoadErr())

	s.SetMesh(mesh.Primitive(mesh.Plane))
	assert.NoError(t, s.LoadErr())
}

func TestReportRenderFault(t *testing.T) {
	s, dev := newTestSession(t)
	s.SetSource(program.New("", goodFragment))

	s.ReportRenderFault(errors.New("index out of range"))
	assert.Equal(t, fault.Faulted, s.FaultState())
	var rf *fault.RenderFault
	require.ErrorAs(t, s.FaultReason(), &rf)
	assert.True(t, strings.Contains(rf.Error(), "index out of range"))
	assert.Equal(t, program.FaultFallbackFragment, dev.lastFragment())
}

func TestExactlyOneLiveMaterial(t *testing.T) {
	s, dev := newTestSession(t)

	s.SetSource(program.New("", goodFragment))
	s.SetMesh(mesh.Primitive(mesh.Icosahedron))
	s.SetLightingMode(lighting.ReferenceLit)
	s.SetLightingMode(lighting.ShaderDriven)
	s.SetSource(program.New("", brokenFragment))
	s.SetMesh(mesh.Primitive(mesh.Ring))
	assert.Equal(t, 1, dev.live)

	s.Close()
	assert.Equal(t, 0, dev.live)
}
