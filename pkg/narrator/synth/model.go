package synth

import (
	"context"

	"github.com/shouni/go-narrator/pkg/narrator/audio"
	"github.com/shouni/go-narrator/pkg/narrator/emotion"
)

// ----------------------------------------------------------------------
// インターフェース
// ----------------------------------------------------------------------

// Synthesizer は、テキストと感情プロファイルから固定フォーマット
// (22050Hz / モノラル / 16bit LE) の生PCMクリップを生成する契約を定義します。
//
// 音響モデルそのものは外部の能力であり、このパッケージはパラメータの
// 受け渡しとPCMフレーミングだけを担う薄いアダプタです。エンジンを
// 決定論的なフェイクに差し替えられるよう、パイプラインはこの
// インターフェースにのみ依存します。
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, profile emotion.Profile) (audio.Clip, error)
}
