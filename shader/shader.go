// Package shader builds GPU programs from a vertex/fragment source pair and
// sets their uniforms by name.
package shader

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"

	"gl-practice/gpu"
)

// Program is a linked shader program. Uniform setters only take effect while
// the program is active (see Use).
type Program struct {
	dev          gpu.ShaderDevice
	id           uint32
	vertexPath   string
	fragmentPath string

	locations map[string]int32
	reported  map[report]bool
	lastErr   error
}

// report identifies one logged uniform problem. A name is logged once per
// kind of failure.
type report struct {
	name     string
	notFound bool
}

// New reads, compiles and links the two source files.
func New(dev gpu.ShaderDevice, vertexPath, fragmentPath string) (*Program, error) {
	vs, fs, err := readSources(vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	id, err := build(dev, vs, fs)
	if err != nil {
		return nil, errors.Wrapf(err, "build program from %s and %s", vertexPath, fragmentPath)
	}
	p := newProgram(dev, id)
	p.vertexPath = vertexPath
	p.fragmentPath = fragmentPath
	slog.Debug("shader program linked", "program", id, "vertex", vertexPath, "fragment", fragmentPath)
	return p, nil
}

// NewFromSource compiles and links in-memory sources. Such a program cannot
// be reloaded.
func NewFromSource(dev gpu.ShaderDevice, vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := build(dev, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return newProgram(dev, id), nil
}

func newProgram(dev gpu.ShaderDevice, id uint32) *Program {
	return &Program{
		dev:       dev,
		id:        id,
		locations: make(map[string]int32),
		reported:  make(map[report]bool),
	}
}

func readSources(vertexPath, fragmentPath string) (string, string, error) {
	vs, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", &SourceReadError{Stage: gpu.VertexStage, Path: vertexPath, Err: err}
	}
	fs, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", &SourceReadError{Stage: gpu.FragmentStage, Path: fragmentPath, Err: err}
	}
	return string(vs), string(fs), nil
}

// build compiles both stages and links them. Stage handles never outlive it.
func build(dev gpu.ShaderDevice, vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compile(dev, gpu.VertexStage, vertexSrc)
	if err != nil {
		return 0, err
	}
	frag, err := compile(dev, gpu.FragmentStage, fragmentSrc)
	if err != nil {
		dev.DeleteShader(vert)
		return 0, err
	}

	prog, ok, log := dev.LinkProgram(vert, frag)
	dev.DeleteShader(vert)
	dev.DeleteShader(frag)
	if !ok {
		dev.DeleteProgram(prog)
		return 0, &LinkError{Log: cleanLog(log)}
	}
	return prog, nil
}

func compile(dev gpu.ShaderDevice, stage gpu.Stage, src string) (uint32, error) {
	id, ok, log := dev.CompileShader(stage, src)
	if !ok {
		dev.DeleteShader(id)
		return 0, &CompileError{Stage: stage, Log: cleanLog(log)}
	}
	return id, nil
}

func cleanLog(log string) string {
	return strings.TrimSpace(strings.TrimRight(log, "\x00"))
}

// ID returns the program handle, 0 once destroyed.
func (p *Program) ID() uint32 { return p.id }

// Use makes this the program draw calls run with.
func (p *Program) Use() {
	if p.id == 0 {
		return
	}
	p.dev.UseProgram(p.id)
}

// Active reports whether this program is currently bound.
func (p *Program) Active() bool {
	return p.id != 0 && p.dev.CurrentProgram() == p.id
}

// LastError returns the most recent uniform error, or nil.
func (p *Program) LastError() error { return p.lastErr }

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	if loc, ok := p.location(name); ok {
		p.dev.Uniform1i(loc, i)
	}
}

func (p *Program) SetInt(name string, v int) {
	if loc, ok := p.location(name); ok {
		p.dev.Uniform1i(loc, int32(v))
	}
}

func (p *Program) SetFloat(name string, v float32) {
	if loc, ok := p.location(name); ok {
		p.dev.Uniform1f(loc, v)
	}
}

// SetVec1f sets a single-component vector such as an offset.
func (p *Program) SetVec1f(name string, x float32) {
	if loc, ok := p.location(name); ok {
		p.dev.Uniform1f(loc, x)
	}
}

func (p *Program) SetVec3f(name string, x, y, z float32) {
	if loc, ok := p.location(name); ok {
		p.dev.Uniform3f(loc, x, y, z)
	}
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.SetVec3f(name, v.X(), v.Y(), v.Z())
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := p.location(name); ok {
		p.dev.UniformMatrix4fv(loc, m)
	}
}

// location resolves name through the cache. Missing names are cached as -1
// so the device is asked once per name.
func (p *Program) location(name string) (int32, bool) {
	if !p.Active() {
		p.fail(report{name: name}, errors.Wrapf(ErrProgramNotActive, "set uniform %q", name))
		return -1, false
	}
	loc, ok := p.locations[name]
	if !ok {
		loc = p.dev.UniformLocation(p.id, name)
		p.locations[name] = loc
	}
	if loc < 0 {
		p.fail(report{name: name, notFound: true}, &UniformNotFoundError{Program: p.id, Name: name})
		return -1, false
	}
	return loc, true
}

func (p *Program) fail(r report, err error) {
	p.lastErr = err
	if p.reported[r] {
		return
	}
	p.reported[r] = true
	slog.Log(context.Background(), uniformLogLevel, "uniform not set", "program", p.id, "err", err)
}

// Reload rebuilds the program from its source files. On failure the current
// program stays in place.
func (p *Program) Reload() error {
	if p.vertexPath == "" || p.fragmentPath == "" {
		return errors.Newf("program %d was not built from files", p.id)
	}
	vs, fs, err := readSources(p.vertexPath, p.fragmentPath)
	if err != nil {
		return err
	}
	id, err := build(p.dev, vs, fs)
	if err != nil {
		return errors.Wrapf(err, "reload %s and %s", p.vertexPath, p.fragmentPath)
	}
	if p.id != 0 {
		p.dev.DeleteProgram(p.id)
	}
	slog.Info("shader program reloaded", "old", p.id, "new", id)
	p.id = id
	p.locations = make(map[string]int32)
	p.reported = make(map[report]bool)
	p.lastErr = nil
	return nil
}

// Destroy releases the program. Calling it again does nothing.
func (p *Program) Destroy() {
	if p.id == 0 {
		return
	}
	p.dev.DeleteProgram(p.id)
	p.id = 0
}
