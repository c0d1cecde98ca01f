package synth

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/emotion"
)

// ----------------------------------------------------------------------
// Piper サブプロセスバックエンド
// ----------------------------------------------------------------------

// PiperProcess は piper CLI をサブプロセスとして起動する Synthesizer 実装です。
// piper は signed 16-bit LE / モノラル / 22050Hz の生PCMを標準出力へ書き出します。
type PiperProcess struct {
	binPath    string
	modelPath  string
	configPath string // モデルの隣の .json。存在する場合のみ渡す
}

// NewPiperProcess は Piper バックエンドを初期化します。
// モデルアーティファクトの不在は起動時の致命的エラーです。
func NewPiperProcess(binPath, modelPath string) (*PiperProcess, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, &ErrModelNotFound{Path: modelPath, WrappedErr: err}
	}

	// モデル設定はモデルファイルの隣に置かれる慣例 (model.onnx.json)
	configPath := modelPath + ".json"
	if _, err := os.Stat(configPath); err != nil {
		configPath = ""
	}

	return &PiperProcess{
		binPath:    binPath,
		modelPath:  modelPath,
		configPath: configPath,
	}, nil
}

// Synthesize はテキストを piper に渡し、生PCMクリップを返します。
// 感情プロファイルの3つの数値はそのまま piper の合成パラメータへ転送します。
// 空テキストはプロセスを起動せず、空のクリップを返します。
func (p *PiperProcess) Synthesize(ctx context.Context, text string, profile emotion.Profile) (audio.Clip, error) {
	if strings.TrimSpace(text) == "" {
		return audio.NewClip(nil), nil
	}

	args := []string{
		"--model", p.modelPath,
		"--output_raw",
		"--length_scale", formatScale(profile.LengthScale),
		"--noise_scale", formatScale(profile.NoiseScale),
		"--noise_w", formatScale(profile.NoiseW),
	}
	if p.configPath != "" {
		args = append(args, "--config", p.configPath)
	}

	cmd := exec.CommandContext(ctx, p.binPath, args...)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return audio.Clip{}, &ErrSynthesis{
			Backend:    "piper",
			Details:    strings.TrimSpace(stderr.String()),
			WrappedErr: err,
		}
	}

	pcm := stdout.Bytes()
	if len(pcm) == 0 {
		return audio.Clip{}, &ErrSynthesis{
			Backend:    "piper",
			Details:    "オーディオデータを受信できませんでした",
			WrappedErr: errEmptyOutput,
		}
	}

	slog.Debug("piper 合成完了", "chars", len([]rune(text)), "pcm_bytes", len(pcm))
	return audio.NewClip(pcm), nil
}

func formatScale(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
