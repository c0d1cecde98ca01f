package narrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-narrator/pkg/narrator/emotion"
	"github.com/shouni/go-narrator/pkg/narrator/export"
	"github.com/shouni/go-narrator/pkg/narrator/script"
	"github.com/shouni/go-narrator/pkg/narrator/synth"
)

// ----------------------------------------------------------------------
// Factory 設定
// ----------------------------------------------------------------------

// Config は NewExecutor がパイプラインを組み立てるために必要な設定です。
type Config struct {
	// ModelPath は音声モデルのアーティファクト (.onnx) のパスです。
	// APIURL を指定しない場合は必須で、不在は致命的エラーです。
	ModelPath string

	// ConfigPath は感情設定JSONのパスです。
	ConfigPath string

	// PiperBin は piper 実行ファイルのパスです (デフォルト: PATH 上の "piper")。
	PiperBin string

	// APIURL を指定すると、ローカルプロセスの代わりにHTTPバックエンドを使用します。
	APIURL string

	// HTTPTimeout はHTTPバックエンドのリクエストタイムアウトです。
	HTTPTimeout time.Duration

	// DryRun が有効な場合、音声を合成せず原稿の解析結果だけを報告します。
	DryRun bool
}

// ----------------------------------------------------------------------
// Dry-run パターン
// ----------------------------------------------------------------------

// dryRunExecutor は Executor インターフェースを満たす検証専用の実装です。
// 原稿を解析してセグメント数と感情の内訳を報告し、音声は生成しません。
type dryRunExecutor struct{}

// Execute は原稿を解析するだけで、ファイルは書き出しません。
func (d *dryRunExecutor) Execute(ctx context.Context, scriptDoc []byte, outputPath string, opts ...ExecuteOption) error {
	segments, err := script.Parse(scriptDoc)
	if err != nil {
		return fmt.Errorf("原稿の解析に失敗しました: %w", err)
	}

	slog.Info("ドライラン: 原稿は有効です。音声は生成しません。",
		"segments", len(segments),
		"emotions", script.Emotions(segments),
		"skipped_output", outputPath)
	return nil
}

// ----------------------------------------------------------------------
// Factory 関数
// ----------------------------------------------------------------------

// NewExecutor は感情設定のロード、合成バックエンドの選択、エクスポータの
// 組み立てを行い、Executor インターフェースを実装した具象型を返します。
func NewExecutor(cfg Config) (Executor, error) {
	// ドライラン時は検証専用の Executor を返す
	if cfg.DryRun {
		slog.Info("ドライランモードです。検証専用の Executor を返します。")
		return &dryRunExecutor{}, nil
	}

	// 1. 感情設定のロード (パイプライン初期化の必須依存)
	store, err := emotion.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	slog.Info("感情設定のロード完了。", "emotions", store.Names())

	// 2. 合成バックエンドの選択
	var synthesizer synth.Synthesizer
	if cfg.APIURL != "" {
		timeout := cfg.HTTPTimeout
		if timeout == 0 {
			timeout = DefaultSegmentTimeout
		}
		synthesizer = synth.NewHTTPEngine(cfg.APIURL, timeout)
		slog.Info("HTTP合成バックエンドを使用します。", "api_url", cfg.APIURL)
	} else {
		piperBin := cfg.PiperBin
		if piperBin == "" {
			piperBin = "piper"
		}
		synthesizer, err = synth.NewPiperProcess(piperBin, cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		slog.Info("piper プロセスバックエンドを使用します。", "bin", piperBin, "model", cfg.ModelPath)
	}

	// 3. Engineの組み立てとExecutorとしての返却
	engine := NewEngine(synthesizer, store, export.NewExporter(), EngineConfig{
		MaxParallelSegments: DefaultMaxParallelSegments,
		SegmentTimeout:      DefaultSegmentTimeout,
		SynthesisInterval:   DefaultSynthesisInterval,
	})

	return engine, nil
}
