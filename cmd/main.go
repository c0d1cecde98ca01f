package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/go-narrator/pkg/narrator"
	"github.com/shouni/go-narrator/pkg/narrator/export"
)

// ----------------------------------------------------------------------
// 設定定数 (アプリケーション全体に関わるもののみ残す)
// ----------------------------------------------------------------------

const (
	// HTTPバックエンド使用時のリクエストタイムアウト
	appHTTPTimeout = 60 * time.Second

	// デフォルトの感情設定ファイル (リポジトリ同梱)
	defaultConfigPath = "config/emotions.json"
)

// ----------------------------------------------------------------------
// コマンド定義
// ----------------------------------------------------------------------

var (
	flagOutput      string
	flagModel       string
	flagConfig      string
	flagFormat      string
	flagNoNormalize bool
	flagPiperBin    string
	flagAPIURL      string
	flagDryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "narrator <input.json>",
	Short: "感情タグつきナレーション原稿から音声ファイルを生成します",
	Long: `narrator は、JSON形式のナレーション原稿 (テキスト + 感情タグ + ポーズ指定)
を読み込み、セグメントごとに合成パラメータを変えながら音声合成し、
ポーズを挟んで結合した単一の音声ファイルを生成します。

出力はラウドネス正規化 (EBU R128 loudnorm) を経て mp3 / wav / ogg へ
エンコードされます。合成には piper の音声モデル (.onnx) が必要です。`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "output.mp3", "出力音声ファイルのパス")
	rootCmd.Flags().StringVarP(&flagModel, "model", "m", "", "piper 音声モデル (.onnx) のパス (--api-url / --dry-run 時は不要)")
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", defaultConfigPath, "感情設定JSONのパス")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "mp3", "出力フォーマット (mp3 / wav / ogg)")
	rootCmd.Flags().BoolVar(&flagNoNormalize, "no-normalize", false, "ラウドネス正規化をスキップする")
	rootCmd.Flags().StringVar(&flagPiperBin, "piper-bin", "piper", "piper 実行ファイルのパス")
	rootCmd.Flags().StringVar(&flagAPIURL, "api-url", "", "HTTP合成バックエンドのURL (指定時はローカルの piper を使わない)")
	rootCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "原稿の検証のみ行い、音声を生成しない")
}

// run はパイプライン全体を実行します。ファイルの存在検証は合成を
// 始める前にまとめて行い、途中で失敗して部分的な成果物を残さないようにします。
func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	// 1. 事前検証 (フェイルファスト)
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("入力ファイルが見つかりません: %s", inputPath)
	}
	// モデルはローカルの piper バックエンドでのみ使用する。
	// HTTPバックエンド (--api-url) とドライランでは要求しない
	if flagAPIURL == "" && !flagDryRun {
		if flagModel == "" {
			return fmt.Errorf("piper モデルのパス (--model) が指定されていません")
		}
		if _, err := os.Stat(flagModel); err != nil {
			return fmt.Errorf("piper モデルが見つかりません: %s", flagModel)
		}
	}
	if !flagDryRun {
		if _, err := os.Stat(flagConfig); err != nil {
			return fmt.Errorf("感情設定ファイルが見つかりません: %s", flagConfig)
		}
	}
	format, err := export.ParseFormat(flagFormat)
	if err != nil {
		return err
	}

	slog.Info("オーディオブックナレーター",
		"input", inputPath,
		"model", flagModel,
		"output", flagOutput,
		"format", format)

	// 2. Executorの初期化 (narratorパッケージに集約されたロジックを使用)
	executor, err := narrator.NewExecutor(narrator.Config{
		ModelPath:   flagModel,
		ConfigPath:  flagConfig,
		PiperBin:    flagPiperBin,
		APIURL:      flagAPIURL,
		HTTPTimeout: appHTTPTimeout,
		DryRun:      flagDryRun,
	})
	if err != nil {
		return err
	}

	// 3. 原稿の読み込みとパイプラインの実行
	scriptDoc, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("入力ファイルの読み込みに失敗しました (%s): %w", inputPath, err)
	}

	err = executor.Execute(cmd.Context(), scriptDoc, flagOutput,
		narrator.WithFormat(format),
		narrator.WithNormalize(!flagNoNormalize),
	)
	if err != nil {
		return err
	}

	if !flagDryRun {
		absPath, _ := filepath.Abs(flagOutput)
		slog.Info(fmt.Sprintf("✅ ナレーションの生成が正常に完了しました。ファイル: %s", absPath))
	}
	return nil
}

func main() {
	// ログ設定
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ エラー: %v\n", err)
		os.Exit(1)
	}
}
