package audio_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
)

// makeTonePCM は検証しやすい単純な波形 (のこぎり波) のPCMを生成します。
func makeTonePCM(samples int) []byte {
	pcm := make([]byte, samples*audio.BytesPerSample)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(pcm[i*audio.BytesPerSample:], uint16(int16(i%2000-1000)))
	}
	return pcm
}

func TestWriteWAVFile_RoundTrip(t *testing.T) {
	track := audio.Track{
		PCM:        makeTonePCM(4410),
		SampleRate: audio.DefaultSampleRate,
		Channels:   audio.DefaultChannels,
		BitDepth:   audio.DefaultBitDepth,
	}
	path := filepath.Join(t.TempDir(), "roundtrip.wav")

	assert.NoError(t, audio.WriteWAVFile(path, track))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	clip, err := audio.DecodeWAV(data)
	assert.NoError(t, err)

	// 可逆ステップなし: サンプル数・レート・チャンネルがビット単位で一致する
	assert.Equal(t, track.SampleRate, clip.SampleRate)
	assert.Equal(t, track.Channels, clip.Channels)
	assert.Equal(t, track.BitDepth, clip.BitDepth)
	assert.Equal(t, track.PCM, clip.PCM)
}

func TestWriteWAVFile_EmptyTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")

	assert.NoError(t, audio.WriteWAVFile(path, audio.EmptyTrack()))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	clip, err := audio.DecodeWAV(data)
	assert.NoError(t, err)
	assert.Empty(t, clip.PCM)
}

func TestDecodeWAV_TooShort(t *testing.T) {
	_, err := audio.DecodeWAV([]byte("RIFF"))

	var wavErr *audio.ErrInvalidWAV
	assert.ErrorAs(t, err, &wavErr)
}

func TestDecodeWAV_NotWAV(t *testing.T) {
	garbage := make([]byte, audio.WavTotalHeaderSize+16)

	_, err := audio.DecodeWAV(garbage)

	var wavErr *audio.ErrInvalidWAV
	assert.ErrorAs(t, err, &wavErr)
}
