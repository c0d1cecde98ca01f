package emotion

// ----------------------------------------------------------------------
// デフォルト値 (設定ファイルに項目がない場合のフォールバック)
// ----------------------------------------------------------------------

// フィールド単位のデフォルト値。設定ファイル内のプロファイルで
// 省略されたフィールドにもこの値が適用されます。
const (
	DefaultLengthScale = 1.0
	DefaultNoiseScale  = 0.5
	DefaultNoiseW      = 0.6

	// DefaultPauseMS は未知のポーズ名に適用される無音長 (ミリ秒) です。
	DefaultPauseMS = 500
)

// DefaultProfile は未知の感情名に適用される組み込みプロファイルです。
var DefaultProfile = Profile{
	LengthScale: DefaultLengthScale,
	NoiseScale:  DefaultNoiseScale,
	NoiseW:      DefaultNoiseW,
	Description: "",
}

// defaultPauseTable は設定ファイルに "pauses" キーがない場合に
// そのまま採用される組み込みのポーズ表です。
var defaultPauseTable = map[string]int{
	"short":     250,
	"medium":    500,
	"long":      1000,
	"very_long": 2000,
}
