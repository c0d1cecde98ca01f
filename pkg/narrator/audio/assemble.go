package audio

import (
	"bytes"
	"fmt"
)

// DefaultPauseMS はポーズリストが不足している場合に適用される無音長 (ミリ秒) です。
// emotion パッケージのデフォルトポーズと同じ値を維持します。
const DefaultPauseMS = 500

// ----------------------------------------------------------------------
// 公開ロジック
// ----------------------------------------------------------------------

// Assemble は複数のクリップを順序どおりに連結し、クリップ間に無音スパンを
// 挿入した単一のトラックを生成します。
//
// pausesMS[i] は clips[i] の直後に挿入される無音長 (ミリ秒) です。
// 最後のクリップの後には無音を挿入しません。リストが不足する場合は
// DefaultPauseMS にフォールバックし、余剰分は無視します。
// クリップ数 N に対して、無音スパンは常に N-1 個です (N=0 なら 0 個)。
func Assemble(clips []Clip, pausesMS []int) (Track, error) {
	if len(clips) == 0 {
		return EmptyTrack(), nil
	}

	// 1. 全クリップのフォーマット一致を検証
	first := clips[0]
	for i, clip := range clips[1:] {
		if clip.SampleRate != first.SampleRate ||
			clip.Channels != first.Channels ||
			clip.BitDepth != first.BitDepth {
			return Track{}, &ErrFormatMismatch{
				Index: i + 1,
				Details: fmt.Sprintf("%dHz/%dch/%dbit に対して %dHz/%dch/%dbit",
					first.SampleRate, first.Channels, first.BitDepth,
					clip.SampleRate, clip.Channels, clip.BitDepth),
			}
		}
	}

	// 2. クリップと無音の連結
	var buf bytes.Buffer
	for i, clip := range clips {
		buf.Write(clip.PCM)

		// 最後のクリップの後には無音を挿入しない
		if i == len(clips)-1 {
			continue
		}

		pauseMS := DefaultPauseMS
		if i < len(pausesMS) {
			pauseMS = pausesMS[i]
		}
		buf.Write(silencePCM(pauseMS, first))
	}

	return Track{
		PCM:        buf.Bytes(),
		SampleRate: first.SampleRate,
		Channels:   first.Channels,
		BitDepth:   first.BitDepth,
	}, nil
}

// SilenceSampleCount はミリ秒単位の無音長をサンプル数に変換します。
// ミリ秒未満の端数はサンプル単位で切り捨てます。
func SilenceSampleCount(durationMS int, sampleRate int) int {
	if durationMS < 0 {
		return 0
	}
	return sampleRate * durationMS / 1000
}

// silencePCM は指定フォーマットの全ゼロPCM (無音) を生成します。
func silencePCM(durationMS int, format Clip) []byte {
	samples := SilenceSampleCount(durationMS, format.SampleRate)
	return make([]byte, samples*format.Channels*(format.BitDepth/8))
}
