package layout

// Flow 即单次渲染的 PageState：纵向游标、当前页码以及分页时的装饰回调。
// 每个渲染请求持有自己的 Flow，不存在跨请求共享的可变状态。
//
// 状态机：首页（NewFlow 创建，不装饰）→ 输出内容/阈值检查 → 溢出时 NewPage（装饰、重置游标）→ … → Result。

// Decorator 在第 2 页起的每个新页开始时被调用，用于重绘页眉、页码等。
type Decorator func(f *Flow)

// FlowOptions 配置页面尺寸、边距与排版后端。
type FlowOptions struct {
	Width  float64 // mm
	Height float64 // mm
	Margin Margin
	// Top 为分页后游标重置到的纵向位置（mm）；<=0 时取 Margin.Top。
	Top        float64
	Typesetter Typesetter
	Fonts      map[string]FontResource
}

// Flow 跟踪当前页与游标，并把图元追加到当前页。
type Flow struct {
	// Y 为当前书写位置（mm，自页面顶部起算）。
	Y float64

	page      int
	top       float64
	opts      FlowOptions
	collector *pageCollector
	decorate  Decorator
	dry       bool
	err       error
}

// NewFlow 创建首页并把游标放在上边距处。
func NewFlow(opts FlowOptions) *Flow {
	top := opts.Top
	if top <= 0 {
		top = opts.Margin.Top
	}
	f := &Flow{
		Y:         opts.Margin.Top,
		page:      1,
		top:       top,
		opts:      opts,
		collector: newPageCollector(opts.Width, opts.Height),
	}
	return f
}

// OnNewPage 注册分页装饰回调（仅作用于第 2 页及之后）。
func (f *Flow) OnNewPage(d Decorator) { f.decorate = d }

// Page 返回当前页码（从 1 开始）。
func (f *Flow) Page() int { return f.page }

// Width / Height / Margin 暴露页面几何，供排版策略计算内容区域。
func (f *Flow) Width() float64  { return f.opts.Width }
func (f *Flow) Height() float64 { return f.opts.Height }
func (f *Flow) Margin() Margin  { return f.opts.Margin }

// ContentWidth 为左右边距之间的宽度。
func (f *Flow) ContentWidth() float64 {
	return f.opts.Width - f.opts.Margin.Left - f.opts.Margin.Right
}

// BreakIfPast 在游标越过 limit 时强制分页，返回是否发生了分页。
// 调用方在输出每个逻辑条目之前检查，保证条目不会被静默拆到两页。
func (f *Flow) BreakIfPast(limit float64) bool {
	if f.Y <= limit {
		return false
	}
	f.NewPage()
	return true
}

// NewPage 开始新的一页：页码加一、执行装饰回调，然后把游标重置到固定顶部位置。
func (f *Flow) NewPage() {
	f.page++
	if !f.dry {
		f.collector.newPage()
		if f.decorate != nil {
			f.decorate(f)
		}
	}
	f.Y = f.top
}

// Top 返回分页后游标重置到的位置。
func (f *Flow) Top() float64 { return f.top }

// Measure 以影子流执行 fn，只推进游标而不输出任何图元。
// 返回 fn 消耗的高度以及是否跨越了分页边界（两遍排版中的测量遍）。
func (f *Flow) Measure(fn func(*Flow)) (height float64, crossed bool) {
	return f.MeasureAt(f.Y, fn)
}

// MeasureAt 与 Measure 相同，但影子流从 y 开始（例如用 Top() 判断内容能否放进一整页）。
func (f *Flow) MeasureAt(y float64, fn func(*Flow)) (height float64, crossed bool) {
	shadow := &Flow{
		Y:    y,
		page: f.page,
		top:  f.top,
		opts: f.opts,
		dry:  true,
	}
	fn(shadow)
	if shadow.err != nil && f.err == nil {
		f.err = shadow.err
	}
	return shadow.Y - y, shadow.page != f.page
}

// Text 在当前游标处输出文本并推进游标，返回文本高度。
func (f *Flow) Text(content string, st TextStyle, x, width float64, role Role) float64 {
	h := f.TextAt(content, st, x, f.Y, width, role)
	f.Y += h
	return h
}

// TextAt 在指定位置输出文本，不移动游标，返回文本高度。
func (f *Flow) TextAt(content string, st TextStyle, x, y, width float64, role Role) float64 {
	return f.TextBoxAt(content, st, x, y, width, role).Height
}

// TextBoxAt 与 TextAt 相同，但返回排好的文本块（例如需要首行宽度来放置行内图元时）。
func (f *Flow) TextBoxAt(content string, st TextStyle, x, y, width float64, role Role) TextBox {
	tb, err := ComposeText(f.opts.Typesetter, f.opts.Fonts, content, st, x, y, width)
	if err != nil {
		f.fail(err)
		return TextBox{}
	}
	tb.Role = role
	f.AddText(tb)
	return tb
}

// MeasureText 返回文本在给定宽度下的高度，不输出。
func (f *Flow) MeasureText(content string, st TextStyle, width float64) float64 {
	tb, err := ComposeText(f.opts.Typesetter, f.opts.Fonts, content, st, 0, 0, width)
	if err != nil {
		f.fail(err)
		return 0
	}
	return tb.Height
}

// Advance 推进游标。
func (f *Flow) Advance(dy float64) { f.Y += dy }

// AddText 追加一个已排好的文本块。
func (f *Flow) AddText(tb TextBox) {
	if acc := f.acc(); acc != nil {
		acc.texts = append(acc.texts, tb)
	}
}

// AddRect 追加矩形。
func (f *Flow) AddRect(r Rect) {
	if acc := f.acc(); acc != nil {
		acc.rects = append(acc.rects, r)
	}
}

// AddCircle 追加圆形。
func (f *Flow) AddCircle(c Circle) {
	if acc := f.acc(); acc != nil {
		acc.circles = append(acc.circles, c)
	}
}

// AddLine 追加线段。
func (f *Flow) AddLine(l Line) {
	if acc := f.acc(); acc != nil {
		acc.lines = append(acc.lines, l)
	}
}

// AddGlyph 记录一个点字单元。
func (f *Flow) AddGlyph(g GlyphCell) {
	if acc := f.acc(); acc != nil {
		acc.glyphs = append(acc.glyphs, g)
	}
}

// SetBackground 设置当前页背景色。
func (f *Flow) SetBackground(c Color) {
	if acc := f.acc(); acc != nil {
		acc.background = c.Ptr()
	}
}

// SetNotes 设置当前页的演讲者备注。
func (f *Flow) SetNotes(notes string) {
	if acc := f.acc(); acc != nil {
		acc.notes = notes
	}
}

// Err 返回排版过程中遇到的第一个错误。
func (f *Flow) Err() error { return f.err }

// Result 汇总所有页面；若排版过程中出现错误则返回该错误。
func (f *Flow) Result(meta DocumentMeta) (*Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	fonts := make(map[string]FontResource, len(f.opts.Fonts))
	for k, v := range f.opts.Fonts {
		fonts[k] = v
	}
	return &Result{
		Pages:     f.collector.pages(),
		Resources: ResourceSet{Fonts: fonts},
		Meta:      meta,
	}, nil
}

func (f *Flow) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *Flow) acc() *pageAccumulator {
	if f.dry || f.collector == nil {
		return nil
	}
	return f.collector.curr()
}

type pageAccumulator struct {
	background *Color
	texts      []TextBox
	lines      []Line
	rects      []Rect
	circles    []Circle
	glyphs     []GlyphCell
	notes      string
}

type pageCollector struct {
	width   float64
	height  float64
	accs    []*pageAccumulator
	current int
}

func newPageCollector(width, height float64) *pageCollector {
	pc := &pageCollector{width: width, height: height}
	pc.newPage()
	return pc
}

func (pc *pageCollector) newPage() *pageAccumulator {
	acc := &pageAccumulator{}
	pc.accs = append(pc.accs, acc)
	pc.current = len(pc.accs) - 1
	return acc
}

func (pc *pageCollector) curr() *pageAccumulator {
	if len(pc.accs) == 0 {
		return pc.newPage()
	}
	return pc.accs[pc.current]
}

func (pc *pageCollector) pages() []Page {
	out := make([]Page, len(pc.accs))
	for i, acc := range pc.accs {
		out[i] = Page{
			Number:     i + 1,
			Width:      pc.width,
			Height:     pc.height,
			Background: acc.background,
			Texts:      acc.texts,
			Lines:      acc.lines,
			Rects:      acc.rects,
			Circles:    acc.circles,
			Glyphs:     acc.glyphs,
			Notes:      acc.notes,
		}
	}
	return out
}
