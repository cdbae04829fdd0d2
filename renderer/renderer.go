// Package renderer 定义布局结果到最终文件的输出接口。
package renderer

import "github.com/ByLCY/lessonpress/layout"

// 各渲染器输出的 MIME 类型。
const (
	ContentTypePDF  = "application/pdf"
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ContentTypePNG  = "image/png"
)

// Renderer 将布局结果输出为最终文件，例如 PDF、pptx 或 PNG。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(result *layout.Result) ([]byte, error)
}

// Func 让普通函数满足 Renderer。
type Func func(result *layout.Result) ([]byte, error)

// Render 调用 f。
func (f Func) Render(result *layout.Result) ([]byte, error) { return f(result) }
