package export

// ----------------------------------------------------------------------
// ラウドネス正規化のデフォルト目標値 (EBU R128)
// ----------------------------------------------------------------------

const (
	DefaultTargetLUFS      = -16.0 // ポッドキャスト/オーディオブックの標準的な統合ラウドネス
	DefaultTruePeakDB      = -1.5  // クリッピング防止
	DefaultLoudnessRangeLU = 11.0  // ダイナミクスを保つレンジ

	// defaultFFmpegBin は PATH 上の ffmpeg を指します。
	defaultFFmpegBin = "ffmpeg"
)
