package narrator

import (
	"context"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/export"
)

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// Executor は、ナレーション原稿を実行して音声ファイルを生成するための契約を
// 定義します。オプションの処理 (出力フォーマットや正規化の有無) は、
// Functional Options Pattern を通じて提供されます。
type Executor interface {
	// Execute は原稿JSONドキュメントを処理し、outputPath へ音声ファイルを生成します。
	Execute(ctx context.Context, scriptDoc []byte, outputPath string, opts ...ExecuteOption) error
}

// TrackExporter は Engine が最終トラックの書き出しに要求するメソッドを定義します。
// export.Exporter がこれを満たします。
type TrackExporter interface {
	Export(ctx context.Context, track audio.Track, outputPath string, opts export.Options) error
}
