package extract

import (
	"context"
	"errors"
	"fmt"
	"io"

	"contractai/logic/ingestion/loaders"
	"contractai/logic/ingestion/parser"
	"contractai/logic/ingestion/processors"
	"contractai/pkg/logger"
	"contractai/vars"

	einoparser "github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
)

// ErrNoText 文件里没有可用文本
var ErrNoText = errors.New("document contains no extractable text")

// Source 一个待入库的文件；Path 非空时直接从磁盘读，否则调用 Open
type Source struct {
	Name string
	Path string
	Open func() (io.ReadCloser, error)
}

// Extractor 把上传的文件转成合同正文
type Extractor interface {
	Extract(ctx context.Context, src Source) (string, error)
}

// PlaceholderContent 默认的占位正文
func PlaceholderContent(name string) string {
	return fmt.Sprintf(vars.PLACEHOLDER_CONTENT, name)
}

// Placeholder 不读文件内容
type Placeholder struct{}

func (Placeholder) Extract(_ context.Context, src Source) (string, error) {
	return PlaceholderContent(src.Name), nil
}

// DocumentExtractor 读取真实文本 (upload.extract_content=true)
type DocumentExtractor struct {
	parser einoparser.Parser
	loader *loaders.PathLoader
}

func NewDocumentExtractor(ctx context.Context) (*DocumentExtractor, error) {
	p, err := parser.NewDocumentParser(ctx)
	if err != nil {
		return nil, err
	}
	l, err := loaders.NewPathLoader(ctx, p)
	if err != nil {
		return nil, err
	}
	return &DocumentExtractor{parser: p, loader: l}, nil
}

func (e *DocumentExtractor) Extract(ctx context.Context, src Source) (string, error) {
	// 不认识的格式退回占位内容，上传本身不失败
	if !parser.Supported(src.Name) {
		logger.Info(ctx, "unsupported format, keeping placeholder content", "file", src.Name)
		return PlaceholderContent(src.Name), nil
	}

	docs, err := e.load(ctx, src)
	if err != nil {
		return "", err
	}

	docs = processors.Clean(docs)
	if len(docs) == 0 {
		return "", ErrNoText
	}
	content := processors.Join(docs)
	logger.Debug(ctx, "document extracted", "file", src.Name, "docs", len(docs), "chars", len(content))
	return content, nil
}

func (e *DocumentExtractor) load(ctx context.Context, src Source) ([]*schema.Document, error) {
	if src.Path != "" {
		return e.loader.Load(ctx, src.Path)
	}
	if src.Open == nil {
		return nil, fmt.Errorf("source %s has neither path nor reader", src.Name)
	}

	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s failed: %w", src.Name, err)
	}
	defer rc.Close()

	docs, err := e.parser.Parse(ctx, rc, einoparser.WithURI(src.Name))
	if err != nil {
		return nil, fmt.Errorf("parse %s failed: %w", src.Name, err)
	}
	return docs, nil
}
