package synth

import (
	"errors"
	"fmt"
)

// errEmptyOutput はバックエンドが音声データを1バイトも返さなかったことを示します。
var errEmptyOutput = errors.New("空の合成結果")

// errUnexpectedFormat はバックエンドが固定フォーマット以外の音声を返したことを示します。
var errUnexpectedFormat = errors.New("固定フォーマット外の音声")

// ErrSynthesis は1セグメント分の音声合成が失敗したことを示します。
// バックエンドの診断出力 (stderr など) を Details に保持します。
type ErrSynthesis struct {
	Backend    string // 例: "piper", "http"
	Details    string
	WrappedErr error
}

func (e *ErrSynthesis) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("音声合成に失敗しました (%s): %v: %s", e.Backend, e.WrappedErr, e.Details)
	}
	return fmt.Sprintf("音声合成に失敗しました (%s): %v", e.Backend, e.WrappedErr)
}

func (e *ErrSynthesis) Unwrap() error {
	return e.WrappedErr
}

// ErrModelNotFound は音声モデルのアーティファクトが存在しないことを示します。
// 起動時の致命的エラーとして扱われます。
type ErrModelNotFound struct {
	Path       string
	WrappedErr error
}

func (e *ErrModelNotFound) Error() string {
	return fmt.Sprintf("音声モデルが見つかりません (%s): %v", e.Path, e.WrappedErr)
}

func (e *ErrModelNotFound) Unwrap() error {
	return e.WrappedErr
}
