package sound

import (
	"io"
	"time"

	"github.com/golangdaddy/parallelpark/pkg/logging"
	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// Kind identifies a sound effect.
type Kind int

const (
	Bump Kind = iota
	Chime
	Click
)

func (k Kind) String() string {
	switch k {
	case Bump:
		return "bump"
	case Chime:
		return "chime"
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// Player plays procedurally generated effects. A nil *Player is silent, so callers
// never need to check whether audio came up.
type Player struct {
	ctx    *oto.Context
	ready  chan struct{}
	volume float64
	clips  map[Kind][]byte
	log    zerolog.Logger
}

// New opens the audio device and renders every effect up front.
func New(volume float64, log zerolog.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, err
	}
	return &Player{
		ctx:    ctx,
		ready:  ready,
		volume: clampF(volume, 0, 1),
		clips:  renderAll(),
		log:    logging.Component(log, "sound"),
	}, nil
}

func renderAll() map[Kind][]byte {
	return map[Kind][]byte{
		Bump:  genBump(),
		Chime: genChime(),
		Click: genClick(),
	}
}

// Play starts kind on its own player and returns immediately.
func (p *Player) Play(kind Kind) {
	if p == nil {
		return
	}
	select {
	case <-p.ready:
	default:
		return
	}
	samples := p.clips[kind]
	if len(samples) == 0 {
		return
	}
	p.log.Trace().Stringer("kind", kind).Msg("play")
	go func() {
		reader := &soundReader{data: samples}
		player := p.ctx.NewPlayer(reader)
		player.SetVolume(p.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}
