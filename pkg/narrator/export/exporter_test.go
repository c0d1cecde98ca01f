package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/export"
)

// fakeRunner は ffmpeg を起動せずに呼び出しを記録する Runner 実装です。
type fakeRunner struct {
	name        string
	args        []string
	err         error
	diagnostics []byte
	calls       int
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	r.calls++
	r.name = name
	r.args = args
	return r.diagnostics, r.err
}

func makeTrack(samples int) audio.Track {
	return audio.Track{
		PCM:        make([]byte, samples*audio.BytesPerSample),
		SampleRate: audio.DefaultSampleRate,
		Channels:   audio.DefaultChannels,
		BitDepth:   audio.DefaultBitDepth,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{input: "mp3", expected: export.FormatMP3},
		{input: "wav", expected: export.FormatWAV},
		{input: "ogg", expected: export.FormatOGG},
		{input: "flac", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := export.ParseFormat(tt.input)
			if tt.wantErr {
				var formatErr *export.ErrUnsupportedFormat
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestExport_WAVWithoutNormalizeIsLossless(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)
	track := makeTrack(4410)
	outputPath := filepath.Join(t.TempDir(), "out.wav")

	opts := export.DefaultOptions()
	opts.Format = export.FormatWAV
	opts.Normalize = false

	assert.NoError(t, exporter.Export(context.Background(), track, outputPath, opts))

	// 外部プロセスは起動されず、直接書き込まれたWAVはビット単位で一致する
	assert.Equal(t, 0, runner.calls)

	data, err := os.ReadFile(outputPath)
	assert.NoError(t, err)
	clip, err := audio.DecodeWAV(data)
	assert.NoError(t, err)
	assert.Equal(t, track.PCM, clip.PCM)
	assert.Equal(t, track.SampleRate, clip.SampleRate)
	assert.Equal(t, track.Channels, clip.Channels)
}

func TestExport_NormalizeBuildsLoudnormFilter(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)
	outputPath := filepath.Join(t.TempDir(), "out.mp3")

	err := exporter.Export(context.Background(), makeTrack(100), outputPath, export.DefaultOptions())
	assert.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "ffmpeg", runner.name)
	assert.Contains(t, runner.args, "loudnorm=I=-16:TP=-1.5:LRA=11")
	assert.Contains(t, runner.args, "-af")
	assert.Contains(t, runner.args, "-ar")
	assert.Contains(t, runner.args, "22050")
	assert.Contains(t, runner.args, "-ac")
	assert.Contains(t, runner.args, "1")
	assert.Contains(t, runner.args, "libmp3lame")
	assert.Equal(t, outputPath, runner.args[len(runner.args)-1])
}

func TestExport_CustomLoudnessTargets(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)

	opts := export.DefaultOptions()
	opts.TargetLUFS = -14.0
	opts.TruePeakDB = -2.0
	opts.LoudnessRangeLU = 7.0

	err := exporter.Export(context.Background(), makeTrack(100), filepath.Join(t.TempDir(), "out.mp3"), opts)
	assert.NoError(t, err)

	assert.Contains(t, runner.args, "loudnorm=I=-14:TP=-2:LRA=7")
}

func TestExport_NoNormalizeOmitsFilter(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)

	opts := export.DefaultOptions()
	opts.Normalize = false

	err := exporter.Export(context.Background(), makeTrack(100), filepath.Join(t.TempDir(), "out.mp3"), opts)
	assert.NoError(t, err)

	assert.NotContains(t, runner.args, "-af")
}

func TestExport_EmptyTrackSkipsLoudnorm(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)

	// loudnorm は空の入力を測定できないため、フィルタなしでエンコードされる
	err := exporter.Export(context.Background(), audio.EmptyTrack(), filepath.Join(t.TempDir(), "empty.mp3"), export.DefaultOptions())
	assert.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	assert.NotContains(t, runner.args, "-af")
}

func TestExport_TempFileRemovedAfterRun(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)

	err := exporter.Export(context.Background(), makeTrack(100), filepath.Join(t.TempDir(), "out.mp3"), export.DefaultOptions())
	assert.NoError(t, err)

	// args は [-y -i <temp.wav> ...] の形。中間ファイルは成功後に削除される
	assert.Equal(t, "-i", runner.args[1])
	tempPath := runner.args[2]
	_, statErr := os.Stat(tempPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{
		err:         errors.New("exit status 1"),
		diagnostics: []byte("Unknown encoder 'libmp3lame'"),
	}
	exporter := export.NewExporterWithRunner(runner)
	outputPath := filepath.Join(t.TempDir(), "out.mp3")

	// 書きかけの出力を事前に用意し、失敗時に残らないことを確認する
	assert.NoError(t, os.WriteFile(outputPath, []byte("partial"), 0644))

	err := exporter.Export(context.Background(), makeTrack(100), outputPath, export.DefaultOptions())

	var exportErr *export.ErrExport
	assert.ErrorAs(t, err, &exportErr)
	assert.Contains(t, exportErr.Diagnostics, "libmp3lame")

	// 中間ファイルと部分的な出力ファイルの両方が削除されている
	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(runner.args[2])
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_DirectWAVWriteFailureRemovesPartialOutput(t *testing.T) {
	runner := &fakeRunner{}
	exporter := export.NewExporterWithRunner(runner)
	outputPath := filepath.Join(t.TempDir(), "out.wav")

	// 既存の出力を事前に用意し、失敗時に書きかけのファイルが残らないことを確認する
	assert.NoError(t, os.WriteFile(outputPath, []byte("stale"), 0644))

	// WAVエンコーダが受け付けないビット深度で、ファイル作成後の書き込みを失敗させる
	track := audio.Track{
		PCM:        make([]byte, 100*audio.BytesPerSample),
		SampleRate: audio.DefaultSampleRate,
		Channels:   audio.DefaultChannels,
		BitDepth:   12,
	}

	opts := export.DefaultOptions()
	opts.Format = export.FormatWAV
	opts.Normalize = false

	err := exporter.Export(context.Background(), track, outputPath, opts)

	var exportErr *export.ErrExport
	assert.ErrorAs(t, err, &exportErr)
	assert.Equal(t, 0, runner.calls)

	_, statErr := os.Stat(outputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	exporter := export.NewExporterWithRunner(&fakeRunner{})

	opts := export.DefaultOptions()
	opts.Format = export.Format("flac")

	err := exporter.Export(context.Background(), makeTrack(100), filepath.Join(t.TempDir(), "out.flac"), opts)

	var formatErr *export.ErrUnsupportedFormat
	assert.ErrorAs(t, err, &formatErr)
}
