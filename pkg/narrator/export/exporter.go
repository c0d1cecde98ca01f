// Package export は、結合済みトラックをラウドネス正規化して最終的な
// 音声ファイルへ書き出します。
//
// 正規化とエンコードは外部の ffmpeg プロセスに委譲します (コーデックや
// 正規化アルゴリズムの再実装はしません)。プロセス起動は Runner
// インターフェースの背後にあり、テストで差し替え可能です。
package export

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
)

// ----------------------------------------------------------------------
// Exporter 構造体とコンストラクタ
// ----------------------------------------------------------------------

// Exporter はトラックをWAV中間ファイル経由で ffmpeg へ渡し、
// 指定フォーマットの出力ファイルを生成します。
type Exporter struct {
	runner    Runner
	ffmpegBin string
}

// NewExporter は PATH 上の ffmpeg を使用する Exporter を初期化します。
func NewExporter() *Exporter {
	return &Exporter{
		runner:    &execRunner{},
		ffmpegBin: defaultFFmpegBin,
	}
}

// NewExporterWithRunner は Runner を注入した Exporter を初期化します。
func NewExporterWithRunner(r Runner) *Exporter {
	return &Exporter{
		runner:    r,
		ffmpegBin: defaultFFmpegBin,
	}
}

// ----------------------------------------------------------------------
// エクスポートロジック
// ----------------------------------------------------------------------

// Export はトラックを outputPath へ書き出します。
//
// Normalize が有効な場合、トラックを一時的な可逆WAVへ書き出し、ffmpeg の
// loudnorm フィルタで目標値に正規化した上で 22050Hz モノラルへ再サンプル
// し、指定コンテナへエンコードします。無効な場合は正規化なしで直接
// エンコードします (wav の場合は可逆の直接書き込み)。
//
// 一時ファイルは成功・失敗を問わず必ず削除します。ffmpeg の異常終了は
// 診断出力つきの ErrExport となり、書きかけの出力ファイルは残しません。
func (e *Exporter) Export(ctx context.Context, track audio.Track, outputPath string, opts Options) error {
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return err
	}

	// 正規化なしの wav は可逆の直接書き込み (ビット単位で一致するラウンドトリップ)
	if !opts.Normalize && opts.Format == FormatWAV {
		if err := audio.WriteWAVFile(outputPath, track); err != nil {
			// エンコード途中の失敗でも書きかけの出力を残さない
			os.Remove(outputPath)
			return &ErrExport{Output: outputPath, WrappedErr: err}
		}
		return nil
	}

	// 1. 可逆WAV中間ファイルの作成。すべての終了経路で削除する
	tempFile, err := os.CreateTemp("", "narrator-*.wav")
	if err != nil {
		return &ErrExport{Output: outputPath, WrappedErr: fmt.Errorf("一時ファイルの作成失敗: %w", err)}
	}
	tempPath := tempFile.Name()
	tempFile.Close()
	defer os.Remove(tempPath)

	if err := audio.WriteWAVFile(tempPath, track); err != nil {
		return &ErrExport{Output: outputPath, WrappedErr: err}
	}

	// 2. ffmpeg コマンドの構築
	args := []string{"-y", "-i", tempPath}

	normalize := opts.Normalize
	if normalize && track.Empty() {
		// loudnorm は測定対象のサンプルがないと機能しない。
		// 空のスクリプトも有効な空の出力ファイルとして成立させる
		slog.Warn("トラックが空のためラウドネス正規化をスキップします", "output", outputPath)
		normalize = false
	}

	if normalize {
		args = append(args, "-af", fmt.Sprintf("loudnorm=I=%g:TP=%g:LRA=%g",
			opts.TargetLUFS, opts.TruePeakDB, opts.LoudnessRangeLU))
	}

	args = append(args,
		"-ar", fmt.Sprintf("%d", audio.DefaultSampleRate),
		"-ac", fmt.Sprintf("%d", audio.DefaultChannels),
		"-c:a", codecFor(opts.Format),
		"-f", string(opts.Format),
		outputPath,
	)

	// 3. 実行。失敗時は書きかけの出力を残さない
	diagnostics, err := e.runner.Run(ctx, e.ffmpegBin, args...)
	if err != nil {
		os.Remove(outputPath)
		return &ErrExport{
			Output:      outputPath,
			Diagnostics: string(diagnostics),
			WrappedErr:  err,
		}
	}

	slog.Debug("エクスポート完了", "output", outputPath, "format", opts.Format, "normalized", normalize)
	return nil
}

// codecFor はフォーマットに対応する ffmpeg のオーディオコーデック名を返します。
func codecFor(f Format) string {
	switch f {
	case FormatMP3:
		return "libmp3lame"
	case FormatOGG:
		return "libvorbis"
	default:
		return "pcm_s16le"
	}
}

// ----------------------------------------------------------------------
// デフォルトの Runner 実装 (os/exec)
// ----------------------------------------------------------------------

type execRunner struct{}

// Run は外部プロセスを起動し、完了までブロックします。
// 標準エラー出力は成否に関わらず診断用に返します。
func (r *execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.Bytes(), err
}
