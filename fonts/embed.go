// Package fonts 提供内置字体：矢量输出使用 Latin Modern Sans，位图缩略图使用 Go 字体。
package fonts

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-fonts/latin-modern/lmsans10bold"
	"github.com/go-fonts/latin-modern/lmsans10oblique"
	"github.com/go-fonts/latin-modern/lmsans10regular"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// 内置矢量字体名称，FontResource.Src 写作 "embed:<名称>"。
const (
	SansRegular = "lmsans10-regular"
	SansBold    = "lmsans10-bold"
	SansOblique = "lmsans10-oblique"
)

var vector = map[string][]byte{
	SansRegular: lmsans10regular.TTF,
	SansBold:    lmsans10bold.TTF,
	SansOblique: lmsans10oblique.TTF,
}

// Src 返回内置字体在 FontResource.Src 中的写法。
func Src(name string) string { return "embed:" + name }

// Load 返回内置矢量字体的字节数据，path 可写为 "embed:lmsans10-regular" 或直接 "lmsans10-regular"。
func Load(path string) ([]byte, error) {
	name := strings.TrimPrefix(strings.TrimSpace(path), "embed:")
	data, ok := vector[name]
	if !ok {
		return nil, fmt.Errorf("读取内置字体 %s 失败: 未知字体", name)
	}
	return data, nil
}

// Names 列出内置矢量字体名称。
func Names() []string {
	out := make([]string, 0, len(vector))
	for name := range vector {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// ForStyle 按 regular/bold/italic 选择内置矢量字体名称。
func ForStyle(style string) string {
	switch strings.ToLower(style) {
	case "bold":
		return SansBold
	case "italic", "oblique":
		return SansOblique
	default:
		return SansRegular
	}
}

// Raster 返回 freetype 可解析的 TrueType 数据（Go 字体），供位图渲染使用。
func Raster(style string) []byte {
	switch strings.ToLower(style) {
	case "bold":
		return gobold.TTF
	case "italic", "oblique":
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}
