package main

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// CLI messages
		"Interrupted, shutting down...":               "中断されました。シャットダウンしています...",
		"Converting %s (%s preset)...":                "%s を変換しています (%s プリセット)...",
		"Output saved to %s":                          "出力を %s に保存しました",
		"Failed to write summary: %s":                 "サマリーを書き込めませんでした: %s",
		"ffmpeg not found; install it or set FFMPEG_PATH": "ffmpeg が見つかりません。インストールするか FFMPEG_PATH を設定してください",
		"vr180 version %s":                            "vr180 バージョン %s",

		// Probe output
		"Resolution": "解像度",
		"Frame rate": "フレームレート",
		"Duration":   "再生時間",
		"Frames":     "フレーム数",
		"Codec":      "コーデック",
		"Audio":      "音声",
		"Container":  "コンテナ",

		// Summary labels
		"Conversion Summary":                  "変換サマリー",
		"Generated":                           "生成日時",
		"Source":                              "入力",
		"Path":                                "パス",
		"Frame Rate":                          "フレームレート",
		"Settings":                            "設定",
		"Quality":                             "品質",
		"Max Parallax":                        "最大視差",
		"Depth Weights (gradient/brightness)": "深度の重み (勾配/輝度)",
		"Audio Passthrough":                   "音声パススルー",
		"Output":                              "出力",
		"File Size":                           "ファイルサイズ",
		"Audio Copied":                        "音声コピー",
		"Generated by vr180":                  "vr180 により生成",
		"yes":                                 "はい",
		"no":                                  "いいえ",
	})
}
