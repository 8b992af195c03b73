package player

import "time"

// Mock is a test double for the media handle. It records calls and lets
// tests drive position, duration and end-of-track signals.
type Mock struct {
	path     string
	paused   bool
	loaded   bool
	position time.Duration
	duration time.Duration
	volume   float64
	loadErr  error

	loadCalls []string
	playCalls int
	seekZero  int

	finished chan struct{}
}

// NewMock creates a mock media handle.
func NewMock() *Mock {
	return &Mock{
		paused:   true,
		volume:   0.8,
		finished: make(chan struct{}, 1),
	}
}

func (m *Mock) Load(path string) error {
	m.loadCalls = append(m.loadCalls, path)
	if m.loadErr != nil {
		return m.loadErr
	}
	m.path = path
	m.loaded = true
	m.paused = true
	m.position = 0
	return nil
}

func (m *Mock) CurrentPath() string { return m.path }

func (m *Mock) Play() {
	m.playCalls++
	if m.loaded {
		m.paused = false
	}
}

func (m *Mock) Pause() { m.paused = true }

func (m *Mock) Toggle() {
	if m.paused {
		m.Play()
	} else {
		m.Pause()
	}
}

func (m *Mock) Paused() bool { return m.paused }

func (m *Mock) Idle() bool {
	return !m.loaded || (m.paused && m.position == 0)
}

func (m *Mock) SeekToStart() {
	m.seekZero++
	m.position = 0
}

func (m *Mock) SeekFraction(f float64) {
	m.position = time.Duration(f * float64(m.duration))
}

func (m *Mock) Position() time.Duration { return m.position }

func (m *Mock) Duration() time.Duration { return m.duration }

func (m *Mock) Volume() float64 { return m.volume }

func (m *Mock) SetVolume(v float64) { m.volume = v }

func (m *Mock) AdjustVolume(delta float64) { m.volume += delta }

func (m *Mock) FinishedChan() <-chan struct{} { return m.finished }

func (m *Mock) Close() {}

// Test helpers

func (m *Mock) SetLoadError(err error) { m.loadErr = err }

func (m *Mock) SetPosition(d time.Duration) { m.position = d }

func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

func (m *Mock) LoadCalls() []string { return m.loadCalls }

func (m *Mock) PlayCalls() int { return m.playCalls }

func (m *Mock) SeekToStartCalls() int { return m.seekZero }

// SimulateFinished signals an end-of-track event.
func (m *Mock) SimulateFinished() {
	select {
	case m.finished <- struct{}{}:
	default:
	}
}
