// Package content holds the typed lesson content consumed by the layout strategies.
//
// Every model is produced upstream and treated as read-only here; Normalize fills in absent optional
// arrays before a strategy reads them.
package content

// Model is implemented by the six top-level content shapes.
type Model interface {
	Format() Format
	isModel()
}

// IsNil reports whether m is nil or a typed nil pointer to one of the content models.
func IsNil(m Model) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *Deck:
		return v == nil
	case *Handout:
		return v == nil
	case *StudyGuide:
		return v == nil
	case *Worksheet:
		return v == nil
	case *Quiz:
		return v == nil
	case *Bundle:
		return v == nil
	}
	return false
}

// Slide is one slide of a deck. The first slide of a deck is its title slide.
type Slide struct {
	Title        string   `json:"title"`
	Bullets      []string `json:"bullets"`
	SpeakerNotes string   `json:"speakerNotes,omitempty"`
}

// Deck is rendered to pptx.
type Deck struct {
	Slides []Slide `json:"slides"`
}

// KeyTerm is a vocabulary entry of a study-guide section.
type KeyTerm struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// Section is a handout or study-guide section. KeyTerms and PracticeQuestions only render in study guides.
type Section struct {
	Heading           string    `json:"heading"`
	Content           string    `json:"content"`
	Bullets           []string  `json:"bullets,omitempty"`
	KeyTerms          []KeyTerm `json:"keyTerms,omitempty"`
	PracticeQuestions []string  `json:"practiceQuestions,omitempty"`
}

// Handout is the plain-section document (format pdf).
type Handout struct {
	Sections []Section `json:"sections"`
}

// StudyGuide adds objectives, key terms and practice questions to the section layout.
type StudyGuide struct {
	Objectives []string  `json:"objectives"`
	Sections   []Section `json:"sections"`
}

// ItemType selects how worksheet items are laid out.
type ItemType string

const (
	ItemFillInTheBlank    ItemType = "fill-in-the-blank"
	ItemMatching          ItemType = "matching"
	ItemPracticeDrill     ItemType = "practice-drill"
	ItemBrailleToPrint    ItemType = "braille-to-print"
	ItemPrintToBraille    ItemType = "print-to-braille"
	ItemDotIdentification ItemType = "dot-identification"
)

// BrailleSpecific reports whether items of this type get an answer line and inline key cells.
func (t ItemType) BrailleSpecific() bool {
	switch t {
	case ItemBrailleToPrint, ItemPrintToBraille, ItemDotIdentification:
		return true
	}
	return false
}

// Label is the human-readable type name printed under a section heading.
func (t ItemType) Label() string {
	switch t {
	case ItemFillInTheBlank:
		return "Fill in the blank"
	case ItemMatching:
		return "Matching"
	case ItemPracticeDrill:
		return "Practice drill"
	case ItemBrailleToPrint:
		return "Braille to print"
	case ItemPrintToBraille:
		return "Print to braille"
	case ItemDotIdentification:
		return "Dot identification"
	}
	return string(t)
}

// WorksheetItem is one prompt with its expected answer.
type WorksheetItem struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// WorksheetSection groups items of one type.
type WorksheetSection struct {
	Heading      string          `json:"heading"`
	Type         ItemType        `json:"type"`
	Instructions string          `json:"instructions"`
	Items        []WorksheetItem `json:"items"`
}

// Worksheet is rendered with an answer key.
type Worksheet struct {
	Sections []WorksheetSection `json:"sections"`
}

// QuestionType is the quiz question kind.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

// Kind folds unknown types into short-answer.
func (t QuestionType) Kind() QuestionType {
	switch t {
	case QuestionMultipleChoice, QuestionTrueFalse:
		return t
	}
	return QuestionShortAnswer
}

// Tag is the short marker printed before a question.
func (t QuestionType) Tag() string {
	switch t.Kind() {
	case QuestionMultipleChoice:
		return "MC"
	case QuestionTrueFalse:
		return "T/F"
	}
	return "SA"
}

// HasOptions reports whether the question lists lettered options.
func (t QuestionType) HasOptions() bool { return t.Kind() != QuestionShortAnswer }

// QuizQuestion is one quiz entry.
type QuizQuestion struct {
	Type        QuestionType `json:"type"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation"`
}

// Quiz always renders with an answer key.
type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

// Bundle holds the three sub-models of a session bundle.
type Bundle struct {
	Slides    []Slide            `json:"slides"`
	Handout   []Section          `json:"handout"`
	Worksheet []WorksheetSection `json:"worksheet"`
}

// Deck returns the bundle's slide sub-model.
func (b *Bundle) Deck() *Deck { return &Deck{Slides: b.Slides} }

// HandoutModel returns the bundle's handout sub-model.
func (b *Bundle) HandoutModel() *Handout { return &Handout{Sections: b.Handout} }

// WorksheetModel returns the bundle's worksheet sub-model.
func (b *Bundle) WorksheetModel() *Worksheet { return &Worksheet{Sections: b.Worksheet} }

func (*Deck) Format() Format       { return FormatDeck }
func (*Handout) Format() Format    { return FormatHandout }
func (*StudyGuide) Format() Format { return FormatStudyGuide }
func (*Worksheet) Format() Format  { return FormatWorksheet }
func (*Quiz) Format() Format       { return FormatQuiz }
func (*Bundle) Format() Format     { return FormatBundle }

func (*Deck) isModel()       {}
func (*Handout) isModel()    {}
func (*StudyGuide) isModel() {}
func (*Worksheet) isModel()  {}
func (*Quiz) isModel()       {}
func (*Bundle) isModel()     {}
