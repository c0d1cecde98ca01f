package audio

import "fmt"

// ErrFormatMismatch は結合対象のクリップ間でPCMフォーマット
// (サンプリングレート、チャンネル数、ビット深度) が一致しないことを示します。
type ErrFormatMismatch struct {
	Index   int // 不一致が検出されたクリップのインデックス
	Details string
}

func (e *ErrFormatMismatch) Error() string {
	return fmt.Sprintf("クリップ #%d のフォーマットが一致しません: %s", e.Index, e.Details)
}

// ErrInvalidWAV はWAVデータが短すぎる、またはデコードできないことを示します。
type ErrInvalidWAV struct {
	Details    string
	WrappedErr error
}

func (e *ErrInvalidWAV) Error() string {
	if e.WrappedErr != nil {
		return fmt.Sprintf("不正なWAVデータ: %s (詳細: %v)", e.Details, e.WrappedErr)
	}
	return fmt.Sprintf("不正なWAVデータ: %s", e.Details)
}

func (e *ErrInvalidWAV) Unwrap() error {
	return e.WrappedErr
}
