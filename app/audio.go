package app

import (
	"bytes"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/plus3/kingfisher/config"
)

// music is the looping background track. A nil *music is silent.
type music struct {
	player *audio.Player
}

func newMusic(assets config.AssetsConfig, sampleRate int) (*music, error) {
	path := assetPath(assets.Dir, assets.Music)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read music %s: %w", path, err)
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}

	stream, err := wav.DecodeWithSampleRate(ctx.SampleRate(), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode music %s: %w", path, err)
	}

	player, err := ctx.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("create music player: %w", err)
	}
	return &music{player: player}, nil
}

func (m *music) play(volume float64) {
	if m == nil {
		return
	}
	m.player.SetVolume(volume)
	m.player.Play()
}

func (m *music) setVolume(volume float64) {
	if m == nil {
		return
	}
	m.player.SetVolume(volume)
}

func (m *music) close() error {
	if m == nil {
		return nil
	}
	return m.player.Close()
}
