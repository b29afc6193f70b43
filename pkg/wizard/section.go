package wizard

import "fmt"

type Section string

const (
	SectionContext  Section = "context"
	SectionSystem   Section = "system"
	SectionMustHave Section = "mustHave"
	SectionContent  Section = "content"
)

// Order is the fixed sequence the wizard walks through.
var Order = []Section{SectionContext, SectionSystem, SectionMustHave, SectionContent}

func ParseSection(s string) (Section, error) {
	for _, sec := range Order {
		if string(sec) == s {
			return sec, nil
		}
	}
	// route params use kebab case
	if s == "must-have" {
		return SectionMustHave, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
}

func (s Section) index() int {
	for i, sec := range Order {
		if sec == s {
			return i
		}
	}
	return -1
}

// required reports whether the section blocks forward navigation until filled.
func (s Section) required() bool {
	return s != SectionMustHave
}

// SectionFlags is one boolean per section. It is also the JSON shape of the
// durable visibility and collapse records.
type SectionFlags struct {
	Context  bool `json:"context"`
	System   bool `json:"system"`
	MustHave bool `json:"mustHave"`
	Content  bool `json:"content"`
}

func (f SectionFlags) Get(s Section) bool {
	switch s {
	case SectionContext:
		return f.Context
	case SectionSystem:
		return f.System
	case SectionMustHave:
		return f.MustHave
	case SectionContent:
		return f.Content
	}
	return false
}

// With returns a copy of f with section s set to v.
func (f SectionFlags) With(s Section, v bool) SectionFlags {
	switch s {
	case SectionContext:
		f.Context = v
	case SectionSystem:
		f.System = v
	case SectionMustHave:
		f.MustHave = v
	case SectionContent:
		f.Content = v
	}
	return f
}

func and(a, b SectionFlags) SectionFlags {
	return SectionFlags{
		Context:  a.Context && b.Context,
		System:   a.System && b.System,
		MustHave: a.MustHave && b.MustHave,
		Content:  a.Content && b.Content,
	}
}

func initialVisibility() SectionFlags {
	return SectionFlags{Context: true}
}

func initialCollapsed() SectionFlags {
	return SectionFlags{}
}
