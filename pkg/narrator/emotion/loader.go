package emotion

import (
	"encoding/json"
	"log/slog"
	"os"
)

// ----------------------------------------------------------------------
// ロードロジック
// ----------------------------------------------------------------------

// configDocument は感情設定JSONのトップレベル構造です。
type configDocument struct {
	Emotions map[string]rawProfile `json:"emotions"`
	Pauses   map[string]int        `json:"pauses"`
}

// rawProfile はフィールドの省略を検出するためポインタで受けます。
type rawProfile struct {
	LengthScale *float64 `json:"length_scale"`
	NoiseScale  *float64 `json:"noise_scale"`
	NoiseW      *float64 `json:"noise_w"`
	Description *string  `json:"description"`
}

// Load は感情設定ファイルを読み込み、Store を構築します。
// ファイルが読めない、またはJSONとして不正な場合は ErrInvalidConfig を返します。
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ErrInvalidConfig{Path: path, WrappedErr: err}
	}

	store, err := Parse(data)
	if err != nil {
		if cfgErr, ok := err.(*ErrInvalidConfig); ok {
			cfgErr.Path = path
		}
		return nil, err
	}

	slog.Debug("感情設定をロードしました", "path", path, "emotions", len(store.profiles), "pauses", len(store.pauses))
	return store, nil
}

// Parse は感情設定JSONバイト列から Store を構築します。
// 省略されたフィールドにはフィールド単位のデフォルト値を適用し、
// "pauses" キー自体がない場合は組み込みのポーズ表を採用します。
func Parse(data []byte) (*Store, error) {
	var doc configDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ErrInvalidConfig{WrappedErr: err}
	}

	store := &Store{
		profiles: make(map[string]Profile, len(doc.Emotions)),
		pauses:   make(map[string]int),
	}

	for name, raw := range doc.Emotions {
		store.profiles[name] = Profile{
			LengthScale: floatOrDefault(raw.LengthScale, DefaultLengthScale),
			NoiseScale:  floatOrDefault(raw.NoiseScale, DefaultNoiseScale),
			NoiseW:      floatOrDefault(raw.NoiseW, DefaultNoiseW),
			Description: stringOrDefault(raw.Description, ""),
		}
	}

	if doc.Pauses != nil {
		store.pauses = doc.Pauses
	} else {
		for name, ms := range defaultPauseTable {
			store.pauses[name] = ms
		}
	}

	return store, nil
}

func floatOrDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}

func stringOrDefault(v *string, def string) string {
	if v != nil {
		return *v
	}
	return def
}
