// Package script は、ナレーション原稿のJSONドキュメントを順序付きの
// セグメント列へ解析します。
//
// 感情名・ポーズ名の意味的な検証はここでは行いません。未解決の名前は
// 後段の emotion ストアのフォールバックポリシーが処理します
// (解析とマッピングの関心を分離するためです)。
package script

import (
	"encoding/json"
	"os"
)

// ----------------------------------------------------------------------
// データモデル (ナレーション原稿)
// ----------------------------------------------------------------------

// Segment は原稿の一片を表します。解析後は不変で、出現順がそのまま
// 音声の結合順になります。
type Segment struct {
	Text       string // 空文字列も許容 (空の合成結果になる)
	Emotion    string // 例: "neutral", "tense"
	PauseAfter string // 例: "medium", "long"
}

// document は原稿JSONのトップレベル構造です。
type document struct {
	Segments []rawSegment `json:"segments"`
}

// rawSegment はフィールドの省略を検出するためポインタで受けます。
type rawSegment struct {
	Text       *string `json:"text"`
	Emotion    *string `json:"emotion"`
	PauseAfter *string `json:"pause_after"`
}

// ----------------------------------------------------------------------
// 解析ロジック
// ----------------------------------------------------------------------

// Parse は原稿JSONを解析し、出現順のセグメント列を返します。
// "segments" キーがない場合は空のセグメント列を返します (エラーではありません)。
// 省略されたフィールドにはデフォルト値を適用します:
// emotion = "neutral"、pause_after = "medium"、text = ""。
func Parse(doc []byte) ([]Segment, error) {
	var d document
	if err := json.Unmarshal(doc, &d); err != nil {
		return nil, &ErrInvalidScript{Details: "原稿JSONのデコード", WrappedErr: err}
	}

	segments := make([]Segment, 0, len(d.Segments))
	for _, raw := range d.Segments {
		seg := Segment{
			Text:       DefaultText,
			Emotion:    DefaultEmotion,
			PauseAfter: DefaultPause,
		}
		if raw.Text != nil {
			seg.Text = *raw.Text
		}
		if raw.Emotion != nil {
			seg.Emotion = *raw.Emotion
		}
		if raw.PauseAfter != nil {
			seg.PauseAfter = *raw.PauseAfter
		}
		segments = append(segments, seg)
	}

	return segments, nil
}

// ParseFile は原稿JSONファイルを読み込んで Parse を適用します。
func ParseFile(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrInvalidScript{Details: "原稿ファイルの読み込み (" + path + ")", WrappedErr: err}
	}
	return Parse(data)
}

// Emotions はセグメント列に出現する感情名の重複なしリストを
// 出現順で返します。CLIの進捗表示で使用します。
func Emotions(segments []Segment) []string {
	seen := make(map[string]struct{}, len(segments))
	var names []string
	for _, seg := range segments {
		if _, ok := seen[seg.Emotion]; ok {
			continue
		}
		seen[seg.Emotion] = struct{}{}
		names = append(names, seg.Emotion)
	}
	return names
}
