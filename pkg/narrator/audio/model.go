package audio

import "time"

// ----------------------------------------------------------------------
// データモデル (PCM オーディオ)
// ----------------------------------------------------------------------

// Clip は1セグメント分の生PCMオーディオを表します。
// 合成エンジンが生成し、アセンブラが即座に消費する一時的なデータです。
type Clip struct {
	PCM        []byte // signed 16-bit LE のサンプル列
	SampleRate int
	Channels   int
	BitDepth   int
}

// NewClip は固定フォーマット (22050Hz / モノラル / 16bit) の Clip を生成します。
func NewClip(pcm []byte) Clip {
	return Clip{
		PCM:        pcm,
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   DefaultBitDepth,
	}
}

// Track は Clip と無音スパンを順序どおりに連結した最終トラックです。
// エクスポータに渡されるまでアセンブラが単独で所有します。
type Track struct {
	PCM        []byte
	SampleRate int
	Channels   int
	BitDepth   int
}

// EmptyTrack は長さゼロの有効なトラックを返します。
// 空のスクリプトもエラーではなく空の出力ファイルとして扱うための値です。
func EmptyTrack() Track {
	return Track{
		SampleRate: DefaultSampleRate,
		Channels:   DefaultChannels,
		BitDepth:   DefaultBitDepth,
	}
}

// Empty はトラックにサンプルが1つも含まれないかどうかを返します。
func (t Track) Empty() bool {
	return len(t.PCM) == 0
}

// SampleCount はトラックに含まれるサンプル数を返します。
func (t Track) SampleCount() int {
	bytesPerFrame := (t.BitDepth / 8) * t.Channels
	if bytesPerFrame == 0 {
		return 0
	}
	return len(t.PCM) / bytesPerFrame
}

// Duration はトラックの再生時間を返します。
func (t Track) Duration() time.Duration {
	if t.SampleRate == 0 {
		return 0
	}
	return time.Duration(t.SampleCount()) * time.Second / time.Duration(t.SampleRate)
}
