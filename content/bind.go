package content

import "github.com/ByLCY/lessonpress/binding"

// Bind replaces ${path} placeholders in every text field of m using data. It mutates m in place.
func Bind(m Model, data any) {
	s := binding.NewScope(data)
	if s.Empty() {
		return
	}
	str := func(p *string) { *p = s.Interpolate(*p) }
	list := func(l []string) {
		for i := range l {
			str(&l[i])
		}
	}
	slides := func(sl []Slide) {
		for i := range sl {
			str(&sl[i].Title)
			list(sl[i].Bullets)
			str(&sl[i].SpeakerNotes)
		}
	}
	sections := func(secs []Section) {
		for i := range secs {
			sec := &secs[i]
			str(&sec.Heading)
			str(&sec.Content)
			list(sec.Bullets)
			list(sec.PracticeQuestions)
			for j := range sec.KeyTerms {
				str(&sec.KeyTerms[j].Term)
				str(&sec.KeyTerms[j].Definition)
			}
		}
	}
	worksheet := func(secs []WorksheetSection) {
		for i := range secs {
			sec := &secs[i]
			str(&sec.Heading)
			str(&sec.Instructions)
			for j := range sec.Items {
				str(&sec.Items[j].Prompt)
				str(&sec.Items[j].Answer)
			}
		}
	}

	switch v := m.(type) {
	case *Deck:
		slides(v.Slides)
	case *Handout:
		sections(v.Sections)
	case *StudyGuide:
		list(v.Objectives)
		sections(v.Sections)
	case *Worksheet:
		worksheet(v.Sections)
	case *Quiz:
		for i := range v.Questions {
			q := &v.Questions[i]
			str(&q.Question)
			list(q.Options)
			str(&q.Answer)
			str(&q.Explanation)
		}
	case *Bundle:
		slides(v.Slides)
		sections(v.Handout)
		worksheet(v.Worksheet)
	}
}
