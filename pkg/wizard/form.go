package wizard

import "strings"

// DefaultPrompt is the rewriting instruction used when the user supplies none.
const DefaultPrompt = `Please paraphrase the following content by rewording and changing word order, but keep all existing nouns and entities exactly the same. Ensure the paraphrased content is suitable for the given context and user. Format the output with each paragraph separated by "========
[paraphrased content]
========"`

// Validation messages shown next to each section.
const (
	MsgNameRequired           = "Name is required"
	MsgContextRequired        = "Context is required"
	MsgSystemSettingsRequired = "System settings are required"
	MsgContentRequired        = "Content to paraphrase is required"
)

type FormData struct {
	Name            string `json:"name"`
	Context         string `json:"context"`
	SystemSettings  string `json:"systemSettings"`
	MustHaveContent string `json:"mustHaveContent"`
	Content         string `json:"content"`
	Prompt          string `json:"prompt"`
}

func newFormData() FormData {
	return FormData{Prompt: DefaultPrompt}
}

// FormPatch carries a partial update. Nil fields are left untouched.
type FormPatch struct {
	Name            *string `json:"name,omitempty"`
	Context         *string `json:"context,omitempty"`
	SystemSettings  *string `json:"systemSettings,omitempty"`
	MustHaveContent *string `json:"mustHaveContent,omitempty"`
	Content         *string `json:"content,omitempty"`
	Prompt          *string `json:"prompt,omitempty"`
}

func (f FormData) merge(p FormPatch) FormData {
	if p.Name != nil {
		f.Name = *p.Name
	}
	if p.Context != nil {
		f.Context = *p.Context
	}
	if p.SystemSettings != nil {
		f.SystemSettings = *p.SystemSettings
	}
	if p.MustHaveContent != nil {
		f.MustHaveContent = *p.MustHaveContent
	}
	if p.Content != nil {
		f.Content = *p.Content
	}
	if p.Prompt != nil {
		f.Prompt = *p.Prompt
	}
	return f
}

// ValidationErrors maps the three validated sections to their messages.
type ValidationErrors struct {
	Context []string `json:"context"`
	System  []string `json:"system"`
	Content []string `json:"content"`
}

func newValidationErrors() ValidationErrors {
	return ValidationErrors{Context: []string{}, System: []string{}, Content: []string{}}
}

func (v ValidationErrors) Empty() bool {
	return len(v.Context) == 0 && len(v.System) == 0 && len(v.Content) == 0
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func validateContext(name, context string) []string {
	errs := []string{}
	if blank(name) {
		errs = append(errs, MsgNameRequired)
	}
	if blank(context) {
		errs = append(errs, MsgContextRequired)
	}
	return errs
}

func validateSystem(systemSettings string) []string {
	errs := []string{}
	if blank(systemSettings) {
		errs = append(errs, MsgSystemSettingsRequired)
	}
	return errs
}

func validateContent(content string) []string {
	errs := []string{}
	if blank(content) {
		errs = append(errs, MsgContentRequired)
	}
	return errs
}
