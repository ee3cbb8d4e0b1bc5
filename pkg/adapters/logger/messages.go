package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting conversion":                      "変換を開始します",
		"Conversion completed successfully":        "変換が正常に完了しました",
		"Conversion cancelled":                     "変換がキャンセルされました",
		"Input: %dx%d @ %.2f fps, ~%d frames":      "入力: %dx%d @ %.2f fps, 約%dフレーム",
		"Finalizing video (%d frames)":             "動画を仕上げ中 (%dフレーム)",
		"Failed to open input: %s":                 "入力を開けませんでした: %s",
		"Failed to start encoder: %s":              "エンコーダーを開始できませんでした: %s",
		"Failed to decode frame %d: %s":            "フレーム %d をデコードできませんでした: %s",
		"Failed to encode frame %d: %s":            "フレーム %d をエンコードできませんでした: %s",
		"Failed to finalize video: %s":             "動画を仕上げられませんでした: %s",
		"Failed to write output: %s":               "出力を書き込めませんでした: %s",
		"Depth estimation failed at frame %d: %s":  "フレーム %d の深度推定に失敗しました: %s",
		"Stereo synthesis failed at frame %d: %s":  "フレーム %d のステレオ合成に失敗しました: %s",
		"Composition failed at frame %d: %s":       "フレーム %d の合成に失敗しました: %s",

		// Extract stage (debug)
		"Container check passed: brand=%s codec=%s":  "コンテナ検査に合格: brand=%s codec=%s",
		"Opened %s: %dx%d @ %.2f fps, ~%d frames":    "%s を開きました: %dx%d @ %.2f fps, 約%dフレーム",

		// Progress
		"Processed %d/%d frames": "%d/%d フレームを処理しました",
		"Processed %d frames":    "%d フレームを処理しました",
	})
}
