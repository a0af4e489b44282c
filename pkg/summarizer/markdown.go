package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the function used to translate headings and labels.
func WithTranslator(fn func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = fn
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Extraction Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("File"), filepath.Base(s.Source.Path))
	fmt.Fprintf(&b, "| %s | %dx%d |\n", t("Resolution"), s.Source.Width, s.Source.Height)
	fmt.Fprintf(&b, "| %s | %.3f fps |\n", t("Frame Rate"), s.Source.FrameRate)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Frame Count"), s.Source.FrameCount)
	fmt.Fprintf(&b, "| %s | %s |\n\n", t("Duration"), formatDuration(s.Source.FrameCount, s.Source.FrameRate, t))

	fmt.Fprintf(&b, "## %s\n\n", t("Selection"))
	fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", t("Item"), t("Value"))
	fmt.Fprintf(&b, "| %s | %s |\n", t("Sampling"), s.Selection.Spec)
	fmt.Fprintf(&b, "| %s | %s |\n", t("Resize"), s.Selection.Resize)
	fmt.Fprintf(&b, "| %s | %d |\n", t("Targets"), s.Selection.Targets)
	backend := s.Backend.Name
	if s.Backend.Threads > 0 {
		backend = fmt.Sprintf("%s (%d %s)", backend, s.Backend.Threads, t("threads"))
	}
	if s.Backend.FellBack {
		backend += " " + t("(fallback)")
	}
	fmt.Fprintf(&b, "| %s | %s |\n\n", t("Backend"), backend)

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "- %s: `%s`\n", t("Directory"), s.Output.Dir)
	fmt.Fprintf(&b, "- %s: %d (%s)\n", t("Written"), len(s.Output.Frames), formatBytes(s.Output.TotalBytes()))
	fmt.Fprintf(&b, "- %s: %d\n", t("Skipped"), len(s.Output.Skipped))
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Elapsed"), s.Output.ElapsedMs)
	if s.Output.ContactSheet != "" {
		fmt.Fprintf(&b, "- %s: `%s`\n", t("Contact Sheet"), filepath.Base(s.Output.ContactSheet))
	}
	b.WriteString("\n")

	if len(s.Output.Frames) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", t("Frames"))
		fmt.Fprintf(&b, "| # | %s | %s | %s | %s |\n|---|---|---|---|---|\n", t("Frame"), t("Label"), t("File"), t("Size"))
		for _, fr := range s.Output.Frames {
			fmt.Fprintf(&b, "| %d | %d | %s | %s | %s |\n",
				fr.SequenceIndex, fr.FrameIndex, orDash(fr.Label), filepath.Base(fr.Path), formatBytes(fr.Size))
		}
		b.WriteString("\n")
	}

	if len(s.Output.Skipped) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", t("Skipped Frames"))
		fmt.Fprintf(&b, "| # | %s | %s | %s |\n|---|---|---|---|\n", t("Frame"), t("Label"), t("Reason"))
		for _, sk := range s.Output.Skipped {
			fmt.Fprintf(&b, "| %d | %d | %s | %s |\n", sk.SequenceIndex, sk.FrameIndex, orDash(sk.Label), t(sk.Reason))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if f.version != "" {
		footer += fmt.Sprintf(" · framesampler %s", f.version)
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func formatDuration(frameCount int, frameRate float64, t func(string) string) string {
	if frameRate <= 0 {
		return t("N/A")
	}
	seconds := float64(frameCount) / frameRate
	return fmt.Sprintf("%.2f s", seconds)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

var _ Formatter = (*MarkdownFormatter)(nil)
