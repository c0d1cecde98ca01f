package script

const (
	// 省略されたフィールドに適用されるデフォルト値
	DefaultText    = ""
	DefaultEmotion = "neutral"
	DefaultPause   = "medium"
)
