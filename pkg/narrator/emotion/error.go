package emotion

import "fmt"

// ErrInvalidConfig は感情設定ファイルが読めない、または構造的に
// 不正であることを示します。感情名やポーズ名の解決に失敗しても
// このエラーにはなりません (未知の名前はデフォルトへフォールバックします)。
type ErrInvalidConfig struct {
	Path       string
	WrappedErr error
}

func (e *ErrInvalidConfig) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("感情設定の読み込みに失敗しました (%s): %v", e.Path, e.WrappedErr)
	}
	return fmt.Sprintf("感情設定の読み込みに失敗しました: %v", e.WrappedErr)
}

func (e *ErrInvalidConfig) Unwrap() error {
	return e.WrappedErr
}
