package export

import "context"

// ----------------------------------------------------------------------
// データモデル (エクスポート設定)
// ----------------------------------------------------------------------

// Format は出力コンテナ/コーデックを表します。
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatWAV Format = "wav"
	FormatOGG Format = "ogg"
)

// ParseFormat は文字列を Format へ変換します。
// サポート外の値は ErrUnsupportedFormat を返します。
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMP3, FormatWAV, FormatOGG:
		return Format(s), nil
	default:
		return "", &ErrUnsupportedFormat{Format: s}
	}
}

// Options はエクスポート時の動作を制御します。
type Options struct {
	Format    Format
	Normalize bool

	// EBU R128 ラウドネス正規化の目標値
	TargetLUFS      float64 // 統合ラウドネス (LUFS)
	TruePeakDB      float64 // トゥルーピーク上限 (dBTP)
	LoudnessRangeLU float64 // ラウドネスレンジ (LU)
}

// DefaultOptions はオーディオブック向けのデフォルト設定を返します。
func DefaultOptions() Options {
	return Options{
		Format:          FormatMP3,
		Normalize:       true,
		TargetLUFS:      DefaultTargetLUFS,
		TruePeakDB:      DefaultTruePeakDB,
		LoudnessRangeLU: DefaultLoudnessRangeLU,
	}
}

// Runner は外部プロセスの起動を抽象化します。テストでは実際の ffmpeg を
// 起動せず、決定論的なフィクスチャへ差し替えられます。
// 戻り値の diagnostics はプロセスの標準エラー出力です。
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (diagnostics []byte, err error)
}
