package compose

import (
	"fmt"
	"strings"

	"github.com/ByLCY/lessonpress/content"
	"github.com/ByLCY/lessonpress/layout"
)

// Quiz lays out the questions followed by an answer-key page in the same order.
func (c *Composer) Quiz(title string, q *content.Quiz) (*layout.Result, error) {
	d := c.newDocument(title)
	t := c.theme
	d.titleBlock()
	d.nameDateLine()
	d.flow.Text(fmt.Sprintf("Total questions: %d", len(q.Questions)), t.style(FontBold, 10, t.Muted), d.x(), d.width(), layout.RoleSubtitle)
	d.flow.Advance(layout.Pt(14))

	for i, qq := range q.Questions {
		d.question(i, qq)
	}
	d.quizKey(q.Questions)
	return d.result(content.FormatQuiz)
}

func (d *document) question(i int, q content.QuizQuestion) {
	t := d.c.theme
	f := d.flow
	if q.Type.HasOptions() {
		f.BreakIfPast(blockLimit)
	} else {
		f.BreakIfPast(itemLimit)
	}

	tagW := layout.Pt(30)
	y := f.Y
	f.TextAt(q.Type.Tag(), t.style(FontBold, 8, t.Accent), d.x(), y+layout.Pt(2), tagW, layout.RoleMarker)
	h := f.TextAt(fmt.Sprintf("%d. %s", i+1, q.Question), t.style(FontBold, t.bodySize(), t.Ink), d.x()+tagW, y, d.width()-tagW, layout.RoleQuestion)
	f.Y = y + h
	f.Advance(layout.Pt(4))

	if q.Type.HasOptions() {
		for j, opt := range q.Options {
			f.Text(fmt.Sprintf("%s. %s", letter(j), opt), t.body(), d.x()+tagW+layout.Pt(12), d.width()-tagW-layout.Pt(12), layout.RoleOption)
			f.Advance(layout.Pt(2))
		}
		f.Advance(layout.Pt(10))
		return
	}
	d.blank(d.x()+tagW, d.width()-tagW)
	f.Advance(layout.Pt(6))
}

func (d *document) quizKey(questions []content.QuizQuestion) {
	t := d.c.theme
	f := d.flow
	f.NewPage()
	f.Text("Answer Key", t.style(FontBold, 18, t.Ink), d.x(), d.width(), layout.RoleKeyHeading)
	f.Advance(layout.Pt(4))
	d.rule(t.Accent, 1.5, layout.Pt(72))
	f.Advance(layout.Pt(10))

	for i, q := range questions {
		f.BreakIfPast(itemLimit)
		f.Text(fmt.Sprintf("%d. %s", i+1, keyAnswer(q)), t.style(FontBold, t.bodySize(), t.Ink), d.x(), d.width(), layout.RoleAnswer)
		if q.Explanation != "" {
			f.Advance(layout.Pt(2))
			f.Text(q.Explanation, t.style(FontItalic, 10, t.Muted), d.x()+layout.Pt(14), d.width()-layout.Pt(14), layout.RoleExplanation)
		}
		f.Advance(layout.Pt(8))
	}
}

// keyAnswer prefixes the option letter when the answer matches one of the printed options.
func keyAnswer(q content.QuizQuestion) string {
	if !q.Type.HasOptions() {
		return q.Answer
	}
	want := strings.TrimSpace(q.Answer)
	for j, opt := range q.Options {
		if strings.EqualFold(strings.TrimSpace(opt), want) {
			return letter(j) + ". " + q.Answer
		}
	}
	return q.Answer
}
