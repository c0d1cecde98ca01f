package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ----------------------------------------------------------------------
// WAV コンテナ入出力 (go-audio ベース)
// ----------------------------------------------------------------------

// WriteWAVFile はトラックをリニアPCMのWAVファイルとして書き出します。
// 可逆な中間形式であり、サンプル数・レート・チャンネルはトラックと
// ビット単位で一致します。
func WriteWAVFile(path string, track Track) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("WAVファイルの作成に失敗しました (%s): %w", path, err)
	}

	enc := wav.NewEncoder(f, track.SampleRate, track.BitDepth, track.Channels, wavFormatPCM)

	buf := &gaudio.IntBuffer{
		Format: &gaudio.Format{
			NumChannels: track.Channels,
			SampleRate:  track.SampleRate,
		},
		Data:           pcmToInts(track.PCM),
		SourceBitDepth: track.BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		f.Close()
		return &ErrInvalidWAV{Details: fmt.Sprintf("WAVエンコード (%s)", path), WrappedErr: err}
	}

	if err := enc.Close(); err != nil {
		f.Close()
		return &ErrInvalidWAV{Details: fmt.Sprintf("WAVヘッダーの確定 (%s)", path), WrappedErr: err}
	}

	return f.Close()
}

// DecodeWAV はWAVバイト列をデコードし、生PCMのクリップへ変換します。
// 合成バックエンドのWAV応答やテストのラウンドトリップ検証で使用します。
func DecodeWAV(wavBytes []byte) (Clip, error) {
	if len(wavBytes) < WavTotalHeaderSize {
		return Clip{}, &ErrInvalidWAV{
			Details: fmt.Sprintf("WAVデータのサイズが短すぎます (%dバイト)", len(wavBytes)),
		}
	}

	dec := wav.NewDecoder(bytes.NewReader(wavBytes))
	if !dec.IsValidFile() {
		return Clip{}, &ErrInvalidWAV{Details: "RIFF/WAVE 構造を認識できません"}
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Clip{}, &ErrInvalidWAV{Details: "PCMデータの読み取り", WrappedErr: err}
	}

	return Clip{
		PCM:        intsToPCM(buf.Data),
		SampleRate: buf.Format.SampleRate,
		Channels:   buf.Format.NumChannels,
		BitDepth:   int(dec.BitDepth),
	}, nil
}

// ----------------------------------------------------------------------
// 内部ヘルパー関数 (PCM バイト列 <-> サンプル値)
// ----------------------------------------------------------------------

// pcmToInts は signed 16-bit LE のバイト列をサンプル値スライスへ変換します。
// 末尾の半端なバイトは切り捨てます。
func pcmToInts(pcm []byte) []int {
	samples := make([]int, len(pcm)/BytesPerSample)
	for i := range samples {
		samples[i] = int(int16(binary.LittleEndian.Uint16(pcm[i*BytesPerSample:])))
	}
	return samples
}

// intsToPCM はサンプル値スライスを signed 16-bit LE のバイト列へ変換します。
func intsToPCM(samples []int) []byte {
	pcm := make([]byte, len(samples)*BytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*BytesPerSample:], uint16(int16(s)))
	}
	return pcm
}
