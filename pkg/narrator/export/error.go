package export

import "fmt"

// ErrUnsupportedFormat はサポート外の出力フォーマットが指定されたことを示します。
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("サポートされていない出力フォーマットです: %q (mp3 / wav / ogg のいずれかを指定してください)", e.Format)
}

// ErrExport は正規化またはエンコードの失敗を示します。
// 外部プロセスの診断出力を Diagnostics に保持します。リトライはしません。
type ErrExport struct {
	Output      string
	Diagnostics string
	WrappedErr  error
}

func (e *ErrExport) Error() string {
	if e.Diagnostics != "" {
		return fmt.Sprintf("エクスポートに失敗しました (%s): %v\n%s", e.Output, e.WrappedErr, e.Diagnostics)
	}
	return fmt.Sprintf("エクスポートに失敗しました (%s): %v", e.Output, e.WrappedErr)
}

func (e *ErrExport) Unwrap() error {
	return e.WrappedErr
}
