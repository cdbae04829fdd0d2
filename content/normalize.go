package content

// Normalize replaces absent optional arrays with empty ones and gives true/false questions their
// default options. Required text fields are left as they are, empty or not.
func Normalize(m Model) {
	switch v := m.(type) {
	case *Deck:
		v.Slides = normalizeSlides(v.Slides)
	case *Handout:
		v.Sections = normalizeSections(v.Sections)
	case *StudyGuide:
		v.Objectives = orEmpty(v.Objectives)
		v.Sections = normalizeSections(v.Sections)
	case *Worksheet:
		v.Sections = normalizeWorksheet(v.Sections)
	case *Quiz:
		if v.Questions == nil {
			v.Questions = []QuizQuestion{}
		}
		for i := range v.Questions {
			q := &v.Questions[i]
			q.Options = orEmpty(q.Options)
			if q.Type == QuestionTrueFalse && len(q.Options) == 0 {
				q.Options = []string{"True", "False"}
			}
		}
	case *Bundle:
		v.Slides = normalizeSlides(v.Slides)
		v.Handout = normalizeSections(v.Handout)
		v.Worksheet = normalizeWorksheet(v.Worksheet)
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func normalizeSlides(slides []Slide) []Slide {
	slides = orEmpty(slides)
	for i := range slides {
		slides[i].Bullets = orEmpty(slides[i].Bullets)
	}
	return slides
}

func normalizeSections(sections []Section) []Section {
	sections = orEmpty(sections)
	for i := range sections {
		s := &sections[i]
		s.Bullets = orEmpty(s.Bullets)
		s.KeyTerms = orEmpty(s.KeyTerms)
		s.PracticeQuestions = orEmpty(s.PracticeQuestions)
	}
	return sections
}

func normalizeWorksheet(sections []WorksheetSection) []WorksheetSection {
	sections = orEmpty(sections)
	for i := range sections {
		sections[i].Items = orEmpty(sections[i].Items)
	}
	return sections
}
