// Package main provides localization for the framesampler CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Selection": "選択",
		"Backend":   "バックエンド",
		"Output":    "出力",
		"Debug":     "デバッグ",
		"Logging":   "ログ",

		// Root command
		"Extract labeled still frames from a video":                                                                                                         "動画からラベル付きの静止フレームを抽出",
		"framesampler writes still images of selected frames of a video file, either by seeking frame by frame or with a single multi-threaded ffmpeg run.": "framesamplerは動画ファイルの選択したフレームを静止画として書き出します。フレーム単位のシーク、またはマルチスレッドのffmpeg一回の実行で処理します。",

		// Commands
		"Extract frames at a fixed interval or at explicit points":          "一定間隔または指定した位置のフレームを抽出",
		"Print frame rate, frame count, duration and resolution of a video": "動画のフレームレート、フレーム数、長さ、解像度を表示",
		"Show version information":                                          "バージョン情報を表示",
		"framesampler version %s":                                           "framesampler バージョン %s",

		// Selection flags
		"YAML configuration file":                                  "YAML設定ファイル",
		"Unit of interval and points (seconds, frames)":            "間隔と位置の単位（seconds, frames）",
		"Sample every N units starting at zero":                    "0から N 単位ごとにサンプリング",
		"Sample these points in the given order (comma separated)": "指定した位置を指定順にサンプリング（カンマ区切り）",
		"Resize output: none, a scale factor such as 0.5, or WxH":  "出力サイズ: none、0.5 のような倍率、または 幅x高さ",

		// Backend flags
		"Use a single multi-threaded ffmpeg run when available":       "利用可能ならマルチスレッドのffmpegを一回だけ実行",
		"Thread count for the parallel backend (0 = one per CPU)":     "並列バックエンドのスレッド数（0 = CPU数）",
		"Resampling filter (catmullrom, bilinear, approx, nearest)":   "リサンプリングフィルタ（catmullrom, bilinear, approx, nearest）",
		"Path to the ffmpeg executable":                               "ffmpeg実行ファイルのパス",

		// Output flags
		"Output directory (default: {output-root}/{name}_{YYYYMMDD_HHMM})": "出力ディレクトリ（デフォルト: {output-root}/{name}_{YYYYMMDD_HHMM}）",
		"Parent directory of per-run output directories":                   "実行ごとの出力ディレクトリの親ディレクトリ",
		"Also render a contact sheet of the written frames":                "書き出したフレームのコンタクトシートも作成",
		"Contact sheet columns":                                            "コンタクトシートのカラム数",
		"Contact sheet thumbnail width in pixels":                          "コンタクトシートのサムネイル幅（ピクセル）",
		"Do not write summary.md":                                          "summary.md を書き出さない",
		"Write Prometheus metrics to this textfile":                        "Prometheusメトリクスをこのテキストファイルに書き出す",
		"Print as JSON":                                                    "JSONで表示",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":           "ログ形式（console, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Extracting": "抽出中",

		// Error messages
		"A video argument is required":                "動画引数が必要です",
		"Use either --interval or --points, not both": "--interval と --points はどちらか一方のみ指定してください",

		// Summary content
		"Extraction Summary": "抽出サマリー",
		"Source":         "入力",
		"Item":           "項目",
		"Value":          "値",
		"File":           "ファイル",
		"Resolution":     "解像度",
		"Frame Rate":     "フレームレート",
		"Frame Count":    "フレーム数",
		"Duration":       "長さ",
		"Sampling":       "サンプリング",
		"Resize":         "リサイズ",
		"Targets":        "対象フレーム数",
		"threads":        "スレッド",
		"(fallback)":     "（フォールバック）",
		"Directory":      "ディレクトリ",
		"Written":        "書き出し",
		"Skipped":        "スキップ",
		"Elapsed":        "処理時間",
		"Contact Sheet":  "コンタクトシート",
		"Frames":         "フレーム",
		"Frame":          "フレーム番号",
		"Label":          "ラベル",
		"Size":           "サイズ",
		"Skipped Frames": "スキップしたフレーム",
		"Reason":         "理由",
		"read_failed":    "読み込み失敗",
		"unmatched":      "出力なし",
		"Generated at":   "生成日時",
		"N/A":            "該当なし",
	})
}
