package narrator

import "time"

// ----------------------------------------------------------------------
// エンジン処理定数
// ----------------------------------------------------------------------

const (
	// DefaultMaxParallelSegments は同時に合成するセグメント数の上限です。
	// 各セグメントは独立しており、結合時に原稿順へ並べ直されます。
	DefaultMaxParallelSegments = 4

	// DefaultSegmentTimeout は1セグメントの合成に許容する最大時間です。
	DefaultSegmentTimeout = 300 * time.Second

	// DefaultSynthesisInterval は合成リクエストの最小間隔です。
	// ローカルの piper プロセスや合成サーバーへの過負荷を防ぎます。
	DefaultSynthesisInterval = 100 * time.Millisecond
)
