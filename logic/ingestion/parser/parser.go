package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"
)

// 直接按纯文本读取的扩展名
var textExts = []string{".txt", ".md", ".json", ".csv"}

// NewDocumentParser 按扩展名分发：pdf 走 pdf 解析器，其余走纯文本
func NewDocumentParser(ctx context.Context) (parser.Parser, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("create pdf parser failed: %w", err)
	}

	parsers := map[string]parser.Parser{".pdf": p}
	for _, ext := range textExts {
		parsers[ext] = parser.TextParser{}
	}

	ext, err := parser.NewExtParser(ctx, &parser.ExtParserConfig{
		Parsers:        parsers,
		FallbackParser: parser.TextParser{},
	})
	if err != nil {
		return nil, fmt.Errorf("create ext parser failed: %w", err)
	}
	return ext, nil
}

// Supported 是否能提取出真实文本 (.docx 之类的二进制格式不行)
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".pdf" {
		return true
	}
	for _, e := range textExts {
		if ext == e {
			return true
		}
	}
	return false
}
