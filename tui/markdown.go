package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdown 渲染模型返回的 Markdown，按宽度缓存
type markdown struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdown() *markdown {
	return &markdown{cache: make(map[string]string)}
}

func (m *markdown) Render(text string, width int) string {
	if width < 20 {
		width = 20
	}
	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			slog.Warn("create markdown renderer failed", "error", err)
			return text
		}
		m.renderer = r
		m.width = width
		m.cache = make(map[string]string)
	}

	if out, ok := m.cache[text]; ok {
		return out
	}
	out, err := m.renderer.Render(text)
	if err != nil {
		slog.Warn("render markdown failed", "error", err)
		return text
	}
	out = strings.TrimRight(out, "\n")
	m.cache[text] = out
	return out
}
