package script

import "fmt"

// ErrInvalidScript は原稿が読めない、またはJSONとして不正であることを示します。
type ErrInvalidScript struct {
	Details    string
	WrappedErr error
}

func (e *ErrInvalidScript) Error() string {
	return fmt.Sprintf("不正な原稿データ: %s (詳細: %v)", e.Details, e.WrappedErr)
}

func (e *ErrInvalidScript) Unwrap() error {
	return e.WrappedErr
}
