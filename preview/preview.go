// Package preview builds a structural digest of lesson content without rendering it.
package preview

import "github.com/ByLCY/lessonpress/content"

// Summary is the JSON digest shown to a reviewer before a full render.
type Summary struct {
	Format   content.Format `json:"format,omitempty"`
	Category string         `json:"category,omitempty"`

	SlideCount  int      `json:"slideCount"`
	SlideTitles []string `json:"slideTitles,omitempty"`

	SectionCount          int      `json:"sectionCount"`
	SectionHeadings       []string `json:"sectionHeadings,omitempty"`
	ObjectiveCount        int      `json:"objectiveCount"`
	KeyTermCount          int      `json:"keyTermCount"`
	PracticeQuestionCount int      `json:"practiceQuestionCount"`

	WorksheetSections []WorksheetSection       `json:"worksheetSections,omitempty"`
	TotalItems        int                      `json:"totalItems"`
	ItemTypeCounts    map[content.ItemType]int `json:"itemTypeCounts,omitempty"`

	TotalQuestions int            `json:"totalQuestions"`
	QuestionCounts QuestionCounts `json:"questionCounts"`
}

// WorksheetSection summarises one worksheet section.
type WorksheetSection struct {
	Heading   string           `json:"heading"`
	Type      content.ItemType `json:"type"`
	ItemCount int              `json:"itemCount"`
}

// QuestionCounts splits quiz questions by kind; unknown types count as short answer.
type QuestionCounts struct {
	MultipleChoice int `json:"multipleChoice"`
	TrueFalse      int `json:"trueFalse"`
	ShortAnswer    int `json:"shortAnswer"`
}

// Total returns the sum of the three counts.
func (q QuestionCounts) Total() int { return q.MultipleChoice + q.TrueFalse + q.ShortAnswer }

// Empty reports whether the digest carries nothing, which is what unknown formats produce.
func (s Summary) Empty() bool { return s.Format == "" }

// Build digests m as format f. An unknown format or a model that does not match it yields an empty
// Summary rather than an error.
func Build(f content.Format, m content.Model) Summary {
	if m == nil || content.CategoryLabel(f) == "" || m.Format() != f {
		return Summary{}
	}
	s := Summary{Format: f, Category: content.CategoryLabel(f)}
	switch v := m.(type) {
	case *content.Deck:
		s.slides(v.Slides)
	case *content.Handout:
		s.sections(v.Sections)
	case *content.StudyGuide:
		s.ObjectiveCount = len(v.Objectives)
		s.sections(v.Sections)
		for _, sec := range v.Sections {
			s.KeyTermCount += len(sec.KeyTerms)
			s.PracticeQuestionCount += len(sec.PracticeQuestions)
		}
	case *content.Worksheet:
		s.worksheet(v.Sections)
	case *content.Quiz:
		s.quiz(v.Questions)
	case *content.Bundle:
		s.slides(v.Slides)
		s.sections(v.Handout)
		s.worksheet(v.Worksheet)
	}
	return s
}

func (s *Summary) slides(slides []content.Slide) {
	s.SlideCount = len(slides)
	for _, sl := range slides {
		s.SlideTitles = append(s.SlideTitles, sl.Title)
	}
}

func (s *Summary) sections(secs []content.Section) {
	s.SectionCount = len(secs)
	for _, sec := range secs {
		s.SectionHeadings = append(s.SectionHeadings, sec.Heading)
	}
}

func (s *Summary) worksheet(secs []content.WorksheetSection) {
	for _, sec := range secs {
		s.WorksheetSections = append(s.WorksheetSections, WorksheetSection{
			Heading:   sec.Heading,
			Type:      sec.Type,
			ItemCount: len(sec.Items),
		})
		s.TotalItems += len(sec.Items)
		if s.ItemTypeCounts == nil {
			s.ItemTypeCounts = map[content.ItemType]int{}
		}
		s.ItemTypeCounts[sec.Type] += len(sec.Items)
	}
}

func (s *Summary) quiz(qs []content.QuizQuestion) {
	s.TotalQuestions = len(qs)
	for _, q := range qs {
		switch q.Type.Kind() {
		case content.QuestionMultipleChoice:
			s.QuestionCounts.MultipleChoice++
		case content.QuestionTrueFalse:
			s.QuestionCounts.TrueFalse++
		default:
			s.QuestionCounts.ShortAnswer++
		}
	}
}
