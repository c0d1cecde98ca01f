package narrator

import (
	"fmt"
	"strings"
)

// ErrSynthesisBatch は合成バッチ全体で発生した複数のエラーをラップする
// カスタムエラー型です。1セグメントの失敗でも実行全体を中止しますが、
// 長い原稿の不良セグメントを一度に報告できるよう全件を集約します。
type ErrSynthesisBatch struct {
	TotalErrors int
	Details     []string
}

func (e *ErrSynthesisBatch) Error() string {
	return fmt.Sprintf("音声合成バッチ処理中に %d 件のエラーが発生しました:\n- %s",
		e.TotalErrors, strings.Join(e.Details, "\n- "))
}
