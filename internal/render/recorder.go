package render

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrUnknownGeometry - дескриптор не выдавался или уже освобождён
	ErrUnknownGeometry = errors.New("unknown geometry handle")
	// ErrDoubleRelease - повторное освобождение дескриптора
	ErrDoubleRelease = errors.New("geometry released twice")
	// ErrNotRecording - EmitQuad/EndChunkGeometry вне записи
	ErrNotRecording = errors.New("geometry recording not started")
)

// Recorder - реализация Backend в памяти. Хранит квады каждого дескриптора
// и считает вызовы; используется в headless-режиме и тестах.
type Recorder struct {
	mu sync.Mutex

	next      GeometryHandle
	live      map[GeometryHandle][]Quad
	released  map[GeometryHandle]bool
	recording bool
	reuse     GeometryHandle
	pending   []Quad

	builds     int
	draws      int
	drawnQuads int
	releases   int
	violations []error
}

// NewRecorder создаёт пустой рекордер
func NewRecorder() *Recorder {
	return &Recorder{
		live:     make(map[GeometryHandle][]Quad),
		released: make(map[GeometryHandle]bool),
	}
}

func (r *Recorder) BeginChunkGeometry(reuse GeometryHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if reuse != NoGeometry {
		if _, ok := r.live[reuse]; !ok {
			r.violations = append(r.violations, fmt.Errorf("begin reuse %d: %w", reuse, ErrUnknownGeometry))
			reuse = NoGeometry
		}
	}
	r.recording = true
	r.reuse = reuse
	r.pending = r.pending[:0]
}

func (r *Recorder) EmitQuad(q Quad) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		r.violations = append(r.violations, fmt.Errorf("emit quad: %w", ErrNotRecording))
		return
	}
	r.pending = append(r.pending, q)
}

func (r *Recorder) EndChunkGeometry() GeometryHandle {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		r.violations = append(r.violations, fmt.Errorf("end geometry: %w", ErrNotRecording))
		return NoGeometry
	}

	h := r.reuse
	if h == NoGeometry {
		r.next++
		h = r.next
	}
	quads := make([]Quad, len(r.pending))
	copy(quads, r.pending)
	r.live[h] = quads

	r.recording = false
	r.reuse = NoGeometry
	r.builds++
	return h
}

func (r *Recorder) DrawGeometry(h GeometryHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quads, ok := r.live[h]
	if !ok {
		r.violations = append(r.violations, fmt.Errorf("draw %d: %w", h, ErrUnknownGeometry))
		return
	}
	r.draws++
	r.drawnQuads += len(quads)
}

func (r *Recorder) ReleaseGeometry(h GeometryHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released[h] {
		r.violations = append(r.violations, fmt.Errorf("release %d: %w", h, ErrDoubleRelease))
		return
	}
	if _, ok := r.live[h]; !ok {
		r.violations = append(r.violations, fmt.Errorf("release %d: %w", h, ErrUnknownGeometry))
		return
	}
	delete(r.live, h)
	r.released[h] = true
	r.releases++
}

// Quads возвращает копию квадов дескриптора
func (r *Recorder) Quads(h GeometryHandle) []Quad {
	r.mu.Lock()
	defer r.mu.Unlock()

	quads := r.live[h]
	out := make([]Quad, len(quads))
	copy(out, quads)
	return out
}

// RecorderStats - счётчики рекордера
type RecorderStats struct {
	Builds     int
	Draws      int
	DrawnQuads int
	Releases   int
	Live       int
}

// Stats возвращает текущие счётчики
func (r *Recorder) Stats() RecorderStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RecorderStats{
		Builds:     r.builds,
		Draws:      r.draws,
		DrawnQuads: r.drawnQuads,
		Releases:   r.releases,
		Live:       len(r.live),
	}
}

// Violations возвращает нарушения контракта в порядке появления
func (r *Recorder) Violations() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]error, len(r.violations))
	copy(out, r.violations)
	return out
}
