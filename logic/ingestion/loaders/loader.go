package loaders

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/document/loader/file"
	"github.com/cloudwego/eino/components/document"
	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"
)

// PathLoader 读取本地文件 (TUI 上传时用户输入的是路径)
type PathLoader struct {
	loader *file.FileLoader
}

func NewPathLoader(ctx context.Context, p parser.Parser) (*PathLoader, error) {
	l, err := file.NewFileLoader(ctx, &file.FileLoaderConfig{
		UseNameAsID: true,
		Parser:      p,
	})
	if err != nil {
		return nil, fmt.Errorf("create file loader failed: %w", err)
	}
	return &PathLoader{loader: l}, nil
}

func (l *PathLoader) Load(ctx context.Context, path string) ([]*schema.Document, error) {
	docs, err := l.loader.Load(ctx, document.Source{URI: path})
	if err != nil {
		return nil, fmt.Errorf("load %s failed: %w", path, err)
	}
	return docs, nil
}
