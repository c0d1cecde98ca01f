package audio

// ----------------------------------------------------------------------
// PCM フォーマット定数
// ----------------------------------------------------------------------

// 合成エンジンの出力は固定フォーマットです。アセンブラへの入力を
// 均一に保つため、バックエンドの種類に関わらずこの値を使用します。
const (
	DefaultSampleRate = 22050
	DefaultChannels   = 1
	DefaultBitDepth   = 16

	// 16bit PCM の 1サンプルあたりのバイト数
	BytesPerSample = DefaultBitDepth / 8
)

// ----------------------------------------------------------------------
// WAV ファイル定数
// ----------------------------------------------------------------------

const (
	// WavTotalHeaderSize は標準的なリニアPCM WAVヘッダーの合計サイズです。
	// これより短いバイト列はWAVとしてデコードを試みません。
	WavTotalHeaderSize = 44

	// WAV の audioFormat フィールド値 (リニアPCM)
	wavFormatPCM = 1
)
