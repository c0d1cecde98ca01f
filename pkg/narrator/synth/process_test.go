package synth_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/emotion"
	"github.com/shouni/go-narrator/pkg/narrator/synth"
)

func TestNewPiperProcess_ModelNotFound(t *testing.T) {
	// モデルアーティファクトの不在は起動時の致命的エラー
	_, err := synth.NewPiperProcess("piper", filepath.Join(t.TempDir(), "missing.onnx"))

	var modelErr *synth.ErrModelNotFound
	assert.ErrorAs(t, err, &modelErr)
}

func TestNewPiperProcess_ModelExists(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "voice.onnx")
	assert.NoError(t, os.WriteFile(modelPath, []byte("model"), 0644))

	engine, err := synth.NewPiperProcess("piper", modelPath)

	assert.NoError(t, err)
	assert.NotNil(t, engine)
}

func TestPiperProcess_EmptyTextSkipsProcess(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "voice.onnx")
	assert.NoError(t, os.WriteFile(modelPath, []byte("model"), 0644))

	// 実在しないバイナリを指定しても、空テキストならプロセスは起動されない
	engine, err := synth.NewPiperProcess("/nonexistent/piper", modelPath)
	assert.NoError(t, err)

	clip, err := engine.Synthesize(context.Background(), "   ", emotion.DefaultProfile)

	assert.NoError(t, err)
	assert.Empty(t, clip.PCM)
	assert.Equal(t, audio.DefaultSampleRate, clip.SampleRate)
	assert.Equal(t, audio.DefaultChannels, clip.Channels)
	assert.Equal(t, audio.DefaultBitDepth, clip.BitDepth)
}

func TestPiperProcess_BinaryFailure(t *testing.T) {
	modelPath := filepath.Join(t.TempDir(), "voice.onnx")
	assert.NoError(t, os.WriteFile(modelPath, []byte("model"), 0644))

	engine, err := synth.NewPiperProcess("/nonexistent/piper", modelPath)
	assert.NoError(t, err)

	_, err = engine.Synthesize(context.Background(), "こんにちは", emotion.DefaultProfile)

	var synthErr *synth.ErrSynthesis
	assert.ErrorAs(t, err, &synthErr)
	assert.Equal(t, "piper", synthErr.Backend)
}
