// Package narrator は、感情タグつきナレーション原稿から単一の音声ファイルを
// 生成するパイプラインを組み立てます。
//
// 処理の流れ: 原稿の解析 → セグメントごとの感情プロファイル解決 →
// 音声合成 → ポーズを挟んだ結合 → ラウドネス正規化とエンコード。
package narrator

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/emotion"
	"github.com/shouni/go-narrator/pkg/narrator/export"
	"github.com/shouni/go-narrator/pkg/narrator/script"
	"github.com/shouni/go-narrator/pkg/narrator/synth"
)

// Engine はパイプライン全体を統括する Executor 実装です。
type Engine struct {
	synth    synth.Synthesizer
	profiles emotion.Resolver
	exporter TrackExporter
	config   EngineConfig
}

// EngineConfig は Engine の実行時パラメータを保持します。
type EngineConfig struct {
	MaxParallelSegments int
	SegmentTimeout      time.Duration
	SynthesisInterval   time.Duration
}

// segmentResult は1セグメントの合成結果をインデックスつきで保持します。
// 並列に合成しても、結合時にこのインデックスで原稿順へ並べ直します。
type segmentResult struct {
	index int
	clip  audio.Clip
	err   error
}

// ----------------------------------------------------------------------
// Executeメソッド用のオプション定義 (Functional Options Pattern)
// ----------------------------------------------------------------------

// ExecuteConfig は Execute メソッドの実行中に適用されるオプション設定を保持します。
type ExecuteConfig struct {
	exportOptions export.Options
}

// ExecuteOption はオプションを適用するための関数シグネチャです。
type ExecuteOption func(*ExecuteConfig)

// newExecuteConfig は Execute のデフォルト設定を初期化します。
func newExecuteConfig() *ExecuteConfig {
	return &ExecuteConfig{
		exportOptions: export.DefaultOptions(),
	}
}

// WithFormat は出力フォーマット (mp3 / wav / ogg) を指定するオプションです。
func WithFormat(f export.Format) ExecuteOption {
	return func(cfg *ExecuteConfig) {
		if f != "" {
			cfg.exportOptions.Format = f
		}
	}
}

// WithNormalize はラウドネス正規化の有効/無効を指定するオプションです。
func WithNormalize(enabled bool) ExecuteOption {
	return func(cfg *ExecuteConfig) {
		cfg.exportOptions.Normalize = enabled
	}
}

// WithLoudnessTargets は正規化の目標値を上書きするオプションです。
func WithLoudnessTargets(targetLUFS, truePeakDB, loudnessRangeLU float64) ExecuteOption {
	return func(cfg *ExecuteConfig) {
		cfg.exportOptions.TargetLUFS = targetLUFS
		cfg.exportOptions.TruePeakDB = truePeakDB
		cfg.exportOptions.LoudnessRangeLU = loudnessRangeLU
	}
}

// ----------------------------------------------------------------------
// コンストラクタ
// ----------------------------------------------------------------------

// NewEngine は新しい Engine インスタンスを作成し、依存関係を注入します。
func NewEngine(s synth.Synthesizer, profiles emotion.Resolver, exporter TrackExporter, config EngineConfig) *Engine {
	if config.MaxParallelSegments == 0 {
		config.MaxParallelSegments = DefaultMaxParallelSegments
	}
	if config.SegmentTimeout == 0 {
		config.SegmentTimeout = DefaultSegmentTimeout
	}
	if config.SynthesisInterval == 0 {
		config.SynthesisInterval = DefaultSynthesisInterval
	}

	return &Engine{
		synth:    s,
		profiles: profiles,
		exporter: exporter,
		config:   config,
	}
}

// ----------------------------------------------------------------------
// メイン処理 (Execute メソッド)
// ----------------------------------------------------------------------

// Execute は原稿JSONを処理し、outputPath へ音声ファイルを生成します。
//
// セグメントの数だけクリップが生成され、クリップ間 (N-1箇所) に
// pause_after で指定された無音が挿入されます。1セグメントでも合成に
// 失敗した場合、実行全体を中止します (失敗は全件まとめて報告します)。
// 空の原稿はエラーではなく、空の有効な出力ファイルを生成します。
func (e *Engine) Execute(ctx context.Context, scriptDoc []byte, outputPath string, opts ...ExecuteOption) error {
	// 1. デフォルト設定の初期化とオプションの適用
	cfg := newExecuteConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	// 2. 原稿の解析
	segments, err := script.Parse(scriptDoc)
	if err != nil {
		return fmt.Errorf("原稿の解析に失敗しました: %w", err)
	}

	if len(segments) == 0 {
		slog.Warn("原稿にセグメントがありません。空の出力ファイルを生成します。", "output", outputPath)
		if err := e.ensureOutputDir(outputPath); err != nil {
			return err
		}
		return e.exporter.Export(ctx, audio.EmptyTrack(), outputPath, cfg.exportOptions)
	}

	// 3. 事前解決: 1セグメントにつき1プロファイルと1ポーズ。
	//    どちらも総関数であり、未知の名前はデフォルトへフォールバックする
	profiles := make([]emotion.Profile, len(segments))
	pausesMS := make([]int, len(segments))
	for i, seg := range segments {
		profiles[i] = e.profiles.ResolveProfile(seg.Emotion)
		pausesMS[i] = e.profiles.ResolvePauseMS(seg.PauseAfter)
	}

	slog.Info("音声合成バッチ処理開始",
		"total_segments", len(segments),
		"max_parallel", e.config.MaxParallelSegments,
		"emotions", script.Emotions(segments))

	// 4. 並列処理の準備。各セグメントは独立しており、順序は結合時に
	//    インデックスで復元されるため、合成自体は並列化できる
	semaphore := make(chan struct{}, e.config.MaxParallelSegments)
	wg := sync.WaitGroup{}
	resultsChan := make(chan segmentResult, len(segments))
	limiter := rate.NewLimiter(rate.Every(e.config.SynthesisInterval), 1)

	// 5. セグメントごとの並列処理開始
	for i, seg := range segments {
		// ループでコンテキストとセマフォを監視
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "バッチ処理ループが外部コンテキストキャンセルにより終了しました。")
			goto END_LOOP
		case semaphore <- struct{}{}:
			// セマフォ確保成功
		}

		wg.Add(1)

		go func(i int, seg script.Segment, profile emotion.Profile) {
			defer wg.Done()
			defer func() { <-semaphore }()

			// レートリミッターとコンテキストキャンセルを同時に監視
			if err := limiter.Wait(ctx); err != nil {
				slog.InfoContext(ctx, "セグメント処理がコンテキストキャンセルにより中断されました", "segment_index", i)
				return
			}

			segCtx, cancel := context.WithTimeout(ctx, e.config.SegmentTimeout)
			defer cancel()

			slog.Info("セグメントを合成します",
				"segment", i+1, "total", len(segments),
				"emotion", seg.Emotion, "text", preview(seg.Text))

			clip, err := e.synth.Synthesize(segCtx, seg.Text, profile)
			if err != nil {
				resultsChan <- segmentResult{index: i, err: fmt.Errorf("セグメント %d の音声合成失敗: %w", i, err)}
				return
			}
			resultsChan <- segmentResult{index: i, clip: clip}
		}(i, seg, profiles[i])
	}

END_LOOP:
	// 6. 並列処理終了後の集約
	wg.Wait()
	close(resultsChan)

	clips := make([]audio.Clip, len(segments))
	received := make([]bool, len(segments))
	var runtimeErrors []string

	for res := range resultsChan {
		if res.err != nil {
			runtimeErrors = append(runtimeErrors, res.err.Error())
			continue
		}
		clips[res.index] = res.clip
		received[res.index] = true
	}

	// 7. 最終エラー処理。部分的な成果物は作らずに中止する
	if len(runtimeErrors) > 0 {
		return &ErrSynthesisBatch{
			TotalErrors: len(runtimeErrors),
			Details:     runtimeErrors,
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("バッチ処理がキャンセルされました: %w", err)
	}
	for i, ok := range received {
		if !ok {
			return fmt.Errorf("セグメント %d の合成結果が欠落しています", i)
		}
	}

	// 8. ポーズを挟んだ結合。クリップ数 N に対して無音は N-1 個
	track, err := audio.Assemble(clips, pausesMS)
	if err != nil {
		return fmt.Errorf("トラックの結合に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "全てのセグメントの合成と結合が完了しました。ファイル書き出しを行います。",
		"output", outputPath,
		"duration", track.Duration().Round(time.Millisecond).String(),
		"format", cfg.exportOptions.Format)

	// 9. エクスポート (正規化 + エンコード)
	if err := e.ensureOutputDir(outputPath); err != nil {
		return err
	}
	return e.exporter.Export(ctx, track, outputPath, cfg.exportOptions)
}

// ensureOutputDir は出力先ディレクトリを必要に応じて作成します。
func (e *Engine) ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("出力ディレクトリの作成に失敗しました (%s): %w", dir, err)
	}
	return nil
}

// preview はログ用にテキストを先頭50文字へ丸めます。
func preview(text string) string {
	const max = 50
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}
