package player

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"
)

const (
	sampleRate   = 44100
	channelCount = 2
	bitDepth     = 2 // 16-bit samples
	bytesPerSec  = sampleRate * channelCount * bitDepth
	frameBytes   = channelCount * bitDepth
)

// countingReader wraps the decoder and tracks bytes handed to the audio
// device, which is what position reporting is derived from.
type countingReader struct {
	reader io.ReadSeeker
	pos    int64
	mu     sync.Mutex
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.mu.Lock()
	cr.pos += int64(n)
	cr.mu.Unlock()
	return n, err
}

func (cr *countingReader) Pos() int64 {
	cr.mu.Lock()
	defer cr.mu.Unlock()
	return cr.pos
}

func (cr *countingReader) SetPos(pos int64) {
	cr.mu.Lock()
	cr.pos = pos
	cr.mu.Unlock()
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// Player is the real media handle: MP3 decoding via go-mp3 played through a
// shared oto context. Unlike a one-shot player it is reloaded track after
// track for the whole program session.
type Player struct {
	mu sync.Mutex

	otoCtx    *oto.Context
	otoPlayer *oto.Player

	file     *os.File
	decoder  *mp3.Decoder
	counter  *countingReader
	path     string
	duration time.Duration

	volume float64
	paused bool
	gen    int // invalidates the monitor of a replaced track

	finished chan struct{}
	closed   bool
}

// NewPlayer initializes the audio device. Volume starts at 0.8.
func NewPlayer() (*Player, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, err
	}
	return &Player{
		otoCtx:   ctx,
		volume:   0.8,
		paused:   true,
		finished: make(chan struct{}, 1),
	}, nil
}

// Load replaces the loaded track with the MP3 at path. Playback does not
// start; call Play.
func (p *Player) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	dec, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.unloadLocked()

	p.file = f
	p.decoder = dec
	p.counter = &countingReader{reader: dec}
	p.path = path
	p.duration = time.Duration(float64(dec.Length()) / float64(bytesPerSec) * float64(time.Second))
	p.paused = true
	p.gen++

	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)

	go p.monitor(p.gen)
	return nil
}

func (p *Player) unloadLocked() {
	if p.otoPlayer != nil {
		p.otoPlayer.Pause()
		p.otoPlayer = nil
	}
	if p.file != nil {
		p.file.Close()
		p.file = nil
	}
	p.decoder = nil
	p.counter = nil
	p.path = ""
	p.duration = 0
}

// monitor polls the loaded track until it plays to the end, then signals
// FinishedChan. A reload bumps gen and orphans the old monitor.
func (p *Player) monitor(gen int) {
	for {
		p.mu.Lock()
		if p.closed || p.gen != gen || p.counter == nil {
			p.mu.Unlock()
			return
		}
		pos := p.counter.Pos()
		total := p.decoder.Length()
		paused := p.paused
		p.mu.Unlock()

		if !paused && pos >= total {
			select {
			case p.finished <- struct{}{}:
			default:
			}
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// CurrentPath returns the loaded track's path, "" when none.
func (p *Player) CurrentPath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Play starts or resumes audio. Without a loaded track it does nothing.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.otoPlayer == nil {
		return
	}
	p.paused = false
	p.otoPlayer.Play()
}

// Pause suspends audio.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.otoPlayer == nil {
		return
	}
	p.paused = true
	p.otoPlayer.Pause()
}

// Toggle flips between playing and paused.
func (p *Player) Toggle() {
	p.mu.Lock()
	paused := p.paused
	p.mu.Unlock()
	if paused {
		p.Play()
	} else {
		p.Pause()
	}
}

// Paused reports whether audio is suspended.
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// Idle reports that nothing is audibly playing.
func (p *Player) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.otoPlayer == nil {
		return true
	}
	return p.paused && p.counter.Pos() == 0
}

// SeekToStart rewinds the loaded track to position zero.
func (p *Player) SeekToStart() {
	p.seekBytes(0)
}

// SeekFraction seeks to a fraction [0,1] of the loaded track.
func (p *Player) SeekFraction(f float64) {
	p.mu.Lock()
	if p.decoder == nil {
		p.mu.Unlock()
		return
	}
	total := p.decoder.Length()
	p.mu.Unlock()

	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	p.seekBytes(int64(f * float64(total)))
}

// seekBytes moves the decoder to a frame-aligned byte offset and recreates
// the oto player to flush buffered audio.
func (p *Player) seekBytes(off int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.decoder == nil {
		return
	}

	if off < 0 {
		off = 0
	}
	if total := p.decoder.Length(); off > total {
		off = total
	}
	off -= off % frameBytes

	if _, err := p.decoder.Seek(off, io.SeekStart); err != nil {
		return
	}
	p.counter.SetPos(off)

	wasPaused := p.paused
	p.otoPlayer.Pause()
	p.otoPlayer = p.otoCtx.NewPlayer(p.counter)
	p.otoPlayer.SetVolume(p.volume)
	if !wasPaused {
		p.otoPlayer.Play()
	}
	p.gen++
	go p.monitor(p.gen)
}

// Position returns the playback position of the loaded track.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.counter == nil {
		return 0
	}
	secs := float64(p.counter.Pos()) / float64(bytesPerSec)
	return time.Duration(secs * float64(time.Second))
}

// Duration returns the length of the loaded track.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// Volume returns the current volume (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

// SetVolume sets the volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	p.volume = v
	if p.otoPlayer != nil {
		p.otoPlayer.SetVolume(v)
	}
}

// AdjustVolume changes the volume by delta.
func (p *Player) AdjustVolume(delta float64) {
	p.mu.Lock()
	v := p.volume + delta
	p.mu.Unlock()
	p.SetVolume(v)
}

// FinishedChan signals each time a loaded track plays to its end.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.finished
}

// Close releases the loaded track and stops the monitor.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.unloadLocked()
}
