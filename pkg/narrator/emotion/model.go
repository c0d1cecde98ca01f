package emotion

import "sort"

// ----------------------------------------------------------------------
// データモデル (感情プロファイル)
// ----------------------------------------------------------------------

// Profile は1つの感情に対応する音声合成パラメータです。ロード後は不変です。
//
// 数値が合成エンジンにとって安全な範囲にあるかどうかの検証は行いません。
// 範囲の妥当性は設定ファイルを書く側の責任です。
type Profile struct {
	LengthScale float64 // 話速の逆数。大きいほど遅い (>0)
	NoiseScale  float64 // 音響的な揺らぎ (0〜1)
	NoiseW      float64 // 音素長の揺らぎ (0〜1)
	Description string
}

// Resolver は感情名・ポーズ名から合成パラメータを引く機能を抽象化します。
// Store がこれを満たします。
type Resolver interface {
	ResolveProfile(name string) Profile
	ResolvePauseMS(name string) int
}

// Store は感情名→Profile とポーズ名→無音長 (ミリ秒) の対応表を保持します。
type Store struct {
	profiles map[string]Profile
	pauses   map[string]int
}

// ResolveProfile は感情名に対応するプロファイルを返します。
// 未知の名前は異常ではなく、組み込みのデフォルトプロファイルへ
// フォールバックします。この関数が失敗することはありません。
func (s *Store) ResolveProfile(name string) Profile {
	if p, ok := s.profiles[name]; ok {
		return p
	}
	return DefaultProfile
}

// ResolvePauseMS はポーズ名に対応する無音長 (ミリ秒) を返します。
// 未知の名前は DefaultPauseMS へフォールバックし、失敗することはありません。
func (s *Store) ResolvePauseMS(name string) int {
	if ms, ok := s.pauses[name]; ok {
		return ms
	}
	return DefaultPauseMS
}

// Names は設定済みの感情名をソート済みで返します。
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
