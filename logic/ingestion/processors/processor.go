package processors

import (
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/schema"
)

// Clean 去掉 Null 字节和无效 UTF-8，丢弃空文档
func Clean(src []*schema.Document) []*schema.Document {
	var cleanDocs []*schema.Document
	for _, doc := range src {
		if doc == nil {
			continue
		}
		// PDF 解析常见的 Null 字节
		content := strings.ReplaceAll(doc.Content, "\x00", "")
		if !utf8.ValidString(content) {
			content = strings.ToValidUTF8(content, "")
		}
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}

		doc.Content = content
		cleanDocs = append(cleanDocs, doc)
	}
	return cleanDocs
}

// Join 多页文档拼成一份合同正文
func Join(docs []*schema.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Content)
	}
	return strings.Join(parts, "\n\n")
}
