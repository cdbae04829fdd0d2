package layout

// 该文件定义布局结果与资源描述，供排版策略、各渲染器与调试 JSON 共用。

// Result 保存布局后的页面与资源信息。
type Result struct {
	Pages     []Page       `json:"pages"`
	Resources ResourceSet  `json:"resources"`
	Meta      DocumentMeta `json:"meta"`
}

// ResourceSet 记录渲染时需要解析的字体定义，键为 TextBox.Font 使用的名称。
type ResourceSet struct {
	Fonts map[string]FontResource `json:"fonts"`
}

// FontResource 描述字体资源，src 可以是文件路径、内置 embed 名称或 built-in:* 形式。
type FontResource struct {
	Name  string `json:"name"`
	Src   string `json:"src"`
	Style string `json:"style"` // regular/bold/italic，渲染器据此选择字重
}

// Color 采用 0-255 的 RGB 数值。
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Page 记录页面尺寸与最终可以直接渲染的元素（单位：mm，原点在左上角）。
// 绘制顺序：背景 → 线 → 矩形 → 圆 → 文本；同类元素按追加顺序绘制。
type Page struct {
	Number     int         `json:"number"`
	Width      float64     `json:"width"`
	Height     float64     `json:"height"`
	Background *Color      `json:"background,omitempty"`
	Texts      []TextBox   `json:"texts"`
	Lines      []Line      `json:"lines,omitempty"`
	Rects      []Rect      `json:"rects,omitempty"`
	Circles    []Circle    `json:"circles,omitempty"`
	Glyphs     []GlyphCell `json:"glyphs,omitempty"`
	// Notes 仅对幻灯片有意义（演讲者备注，不在画布上绘制）。
	Notes string `json:"notes,omitempty"`
}

// Margin 以毫米为单位。
type Margin struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// TextBox 表示一个已经排好坐标的文本块。
type TextBox struct {
	Content    string     `json:"content"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	LineHeight float64    `json:"lineHeight"`
	Font       string     `json:"font"`
	FontSize   float64    `json:"fontSize"`
	Color      Color      `json:"color"`
	Lines      []TextLine `json:"lines"`
	Height     float64    `json:"height"`
	Align      string     `json:"align,omitempty"` // left（默认）/center/right
	Wrap       string     `json:"wrap,omitempty"`  // anywhere(默认)/break-word/nowrap
	Role       Role       `json:"role,omitempty"`
}

// Role 标注文本块的语义角色，供 pptx 渲染器与测试按内容结构检索。
type Role string

const (
	RoleTitle       Role = "title"
	RoleSubtitle    Role = "subtitle"
	RoleHeader      Role = "header"
	RolePageNumber  Role = "page-number"
	RoleHeading     Role = "heading"
	RoleBody        Role = "body"
	RoleBullet      Role = "bullet"
	RoleObjective   Role = "objective"
	RoleKeyTerm     Role = "key-term"
	RolePractice    Role = "practice"
	RoleInstruction Role = "instruction"
	RoleItem        Role = "item"
	RoleMatchLeft   Role = "match-left"
	RoleMatchRight  Role = "match-right"
	RoleBlank       Role = "blank"
	RoleQuestion    Role = "question"
	RoleOption      Role = "option"
	RoleKeyHeading  Role = "key-heading"
	RoleAnswer      Role = "answer"
	RoleExplanation Role = "explanation"
	RoleGlyphLabel  Role = "glyph-label"
	RoleMarker      Role = "marker" // 项目符号、题型标签等装饰性文本
)

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// 基本图形：直线、矩形、圆形（单位均为 mm）。
// Line 表示一条线段。
type Line struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color Color   `json:"color"`
	Width float64 `json:"width"` // 线宽（mm），<=0 时由渲染器给默认值
}

// Rect 表示一个矩形，Radius > 0 时为圆角矩形。
type Rect struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Radius      float64 `json:"radius,omitempty"`
	StrokeColor *Color  `json:"strokeColor,omitempty"` // 为空表示不描边
	StrokeWidth float64 `json:"strokeWidth"`           // mm
	FillColor   *Color  `json:"fillColor,omitempty"`   // 为空表示不填充
}

// Circle 表示一个圆。
type Circle struct {
	CX          float64 `json:"cx"`
	CY          float64 `json:"cy"`
	R           float64 `json:"r"`
	StrokeColor *Color  `json:"strokeColor,omitempty"`
	StrokeWidth float64 `json:"strokeWidth"` // mm
	FillColor   *Color  `json:"fillColor,omitempty"`
}

// GlyphCell 记录一个已放置的点字单元（图形本身已展开为 Rect/Circle/TextBox）。
// Pattern 采用规范顺序 [1,4,2,5,3,6]。
type GlyphCell struct {
	Pattern [6]bool `json:"pattern"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Size    string  `json:"size"`
	Label   string  `json:"label,omitempty"`
	Ghost   bool    `json:"ghost,omitempty"`
}

// DocumentMeta 保存文档元信息（PDF Info / pptx core properties）。
type DocumentMeta struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Creator  string   `json:"creator"`
	Keywords []string `json:"keywords"`
}

// Ptr 返回颜色的指针，便于填写可选的描边/填充色。
func (c Color) Ptr() *Color { return &c }

// TextsWithRole 按页面顺序返回全部指定角色的文本块。
func (r *Result) TextsWithRole(role Role) []TextBox {
	if r == nil {
		return nil
	}
	var out []TextBox
	for _, p := range r.Pages {
		for _, tb := range p.Texts {
			if tb.Role == role {
				out = append(out, tb)
			}
		}
	}
	return out
}
