package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration
		"Sampling %s into %s":               "%s を %s にサンプリング中",
		"Video: %dx%d, %.3f fps, %d frames": "動画: %dx%d, %.3f fps, %d フレーム",
		"Resolved %d target frames (%s)":    "対象フレームを %d 件解決しました (%s)",
		"Using %s backend":                  "%s バックエンドを使用します",
		"Wrote %d frames in %d ms":          "%d フレームを %d ms で書き出しました",
		"Skipped %d frames: %v":             "%d フレームをスキップしました: %v",
		"Contact sheet saved to %s":         "コンタクトシートを %s に保存しました",
		"Summary saved to %s":               "サマリーを %s に保存しました",
		"Metrics written to %s":             "メトリクスを %s に書き出しました",
		"Interrupted, shutting down...":     "中断されました。シャットダウン中...",
		"Parallel backend requested but the transcoder is unavailable, falling back to sequential": "並列バックエンドが要求されましたがトランスコーダーが利用できないため、逐次処理にフォールバックします",

		// Sequential backend
		"Opening %s":               "%s を開いています",
		"Frame %d written to %s":   "フレーム %d を %s に書き出しました",
		"Cannot read frame %d: %s": "フレーム %d を読み取れません: %s",

		// Parallel backend
		"Running transcoder with %d threads":                "%d スレッドでトランスコーダーを実行中",
		"Filter chain: %s":                                  "フィルタチェーン: %s",
		"Transcoder produced %d files for %d targets":       "トランスコーダーが %[2]d 個のターゲットに対して %[1]d 個のファイルを出力しました",
		"No output for target frame %d":                     "対象フレーム %d の出力がありません",
		"Leaving %d unexpected transcoder outputs in place": "想定外のトランスコーダー出力 %d 個をそのまま残します",
		"No target frames to extract":                       "抽出する対象フレームがありません",

		// Errors
		"Extraction failed: %s":      "抽出に失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}
