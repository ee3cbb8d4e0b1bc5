package summarizer

import (
	"fmt"
	"strings"
)

// Translator converts a display string to the active locale.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the translator used for section and field labels.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion includes the tool version in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Conversion Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", t("Generated"), summary.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Path"), summary.Source.Path)
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Resolution"), summary.Source.Width, summary.Source.Height)
	fmt.Fprintf(&b, "- %s: %.2f fps\n", t("Frame Rate"), summary.Source.FPS)
	if summary.Source.FrameCount > 0 {
		fmt.Fprintf(&b, "- %s: ~%d\n", t("Frames"), summary.Source.FrameCount)
	}
	fmt.Fprintf(&b, "- %s: %s\n\n", t("Audio"), yesNo(t, summary.Source.HasAudio))

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	if summary.Settings.Quality != "" {
		fmt.Fprintf(&b, "- %s: %s\n", t("Quality"), summary.Settings.Quality)
	}
	fmt.Fprintf(&b, "- %s: %.1f px\n", t("Max Parallax"), summary.Settings.MaxParallax)
	fmt.Fprintf(&b, "- %s: %.2f / %.2f\n", t("Depth Weights (gradient/brightness)"),
		summary.Settings.GradientWeight, summary.Settings.BrightnessWeight)
	fmt.Fprintf(&b, "- CRF: %d\n", summary.Settings.CRF)
	fmt.Fprintf(&b, "- %s: %s\n\n", t("Audio Passthrough"), yesNo(t, summary.Settings.AudioPassthrough))

	fmt.Fprintf(&b, "## %s\n\n", t("Output"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Path"), summary.Video.Path)
	fmt.Fprintf(&b, "- %s: %dx%d\n", t("Resolution"), summary.Video.Width, summary.Video.Height)
	fmt.Fprintf(&b, "- %s: %.2f fps\n", t("Frame Rate"), summary.Video.FPS)
	fmt.Fprintf(&b, "- %s: %d\n", t("Frames"), summary.Video.FrameCount)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Duration"), summary.Video.DurationMs)
	fmt.Fprintf(&b, "- %s: %s\n", t("File Size"), formatBytes(summary.Video.FileSize))
	fmt.Fprintf(&b, "- %s: %s\n", t("Audio Copied"), yesNo(t, summary.Video.AudioCopied))

	if f.version != "" {
		fmt.Fprintf(&b, "\n---\n%s %s\n", t("Generated by vr180"), f.version)
	}

	return b.String()
}

func yesNo(t Translator, v bool) string {
	if v {
		return t("yes")
	}
	return t("no")
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(bytes int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2f GB", float64(bytes)/gb)
	case bytes >= mb:
		return fmt.Sprintf("%.2f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.2f KB", float64(bytes)/kb)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// Ensure MarkdownFormatter implements Formatter
var _ Formatter = (*MarkdownFormatter)(nil)
