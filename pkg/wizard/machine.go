package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type ContextInput struct {
	Name    string `json:"name"`
	Context string `json:"context"`
}

type SystemInput struct {
	SystemSettings string `json:"systemSettings"`
	Prompt         string `json:"prompt"`
}

type MustHaveInput struct {
	MustHaveContent string `json:"mustHaveContent"`
}

type ContentInput struct {
	Content string `json:"content"`
}

// State is a point-in-time copy of everything the wizard renders.
type State struct {
	Form        FormData         `json:"form"`
	Errors      ValidationErrors `json:"validation_errors"`
	Visibility  SectionFlags     `json:"visibility"`
	Collapsed   SectionFlags     `json:"collapsed"`
	CurrentStep Section          `json:"current_step"`
	Filled      SectionFlags     `json:"filled"`
}

// Machine holds one wizard session. Visibility and collapse survive restarts
// through the Store; form data, errors and the current step live in memory.
type Machine struct {
	mu    sync.Mutex
	store Store

	visibilityKey string
	collapsedKey  string

	form       FormData
	errors     ValidationErrors
	visibility SectionFlags
	collapsed  SectionFlags
	step       Section
}

// NewMachine restores durable state for namespace from store. Missing or
// unreadable records fall back to the initial values.
func NewMachine(ctx context.Context, store Store, namespace string) (*Machine, error) {
	m := &Machine{
		store:         store,
		visibilityKey: RecordKey(namespace, VisibilityRecord),
		collapsedKey:  RecordKey(namespace, CollapsedRecord),
	}
	if err := m.load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) load(ctx context.Context) error {
	vis, err := m.readFlags(ctx, m.visibilityKey, initialVisibility())
	if err != nil {
		return err
	}
	col, err := m.readFlags(ctx, m.collapsedKey, initialCollapsed())
	if err != nil {
		return err
	}

	m.form = newFormData()
	m.errors = newValidationErrors()
	m.visibility = vis
	// a hidden section cannot be collapsed
	m.collapsed = and(col, vis)
	m.step = SectionContext
	return nil
}

func (m *Machine) readFlags(ctx context.Context, key string, fallback SectionFlags) (SectionFlags, error) {
	raw, ok, err := m.store.Get(ctx, key)
	if err != nil {
		return fallback, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}
	var flags SectionFlags
	if err := json.Unmarshal(raw, &flags); err != nil {
		return fallback, nil
	}
	return flags, nil
}

func (m *Machine) writeFlags(ctx context.Context, key string, flags SectionFlags) error {
	raw, err := json.Marshal(flags)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// commit persists the changed records and only then swaps them into memory.
// If the second write fails the first one is rolled back.
func (m *Machine) commit(ctx context.Context, vis, col SectionFlags) error {
	visChanged := vis != m.visibility
	colChanged := col != m.collapsed

	if visChanged {
		if err := m.writeFlags(ctx, m.visibilityKey, vis); err != nil {
			return err
		}
	}
	if colChanged {
		if err := m.writeFlags(ctx, m.collapsedKey, col); err != nil {
			if visChanged {
				_ = m.writeFlags(ctx, m.visibilityKey, m.visibility)
			}
			return err
		}
	}

	m.visibility = vis
	m.collapsed = col
	return nil
}

// advanceFrom moves the current step to the section after s unless the
// wizard is already further along.
func (m *Machine) advanceFrom(s Section) {
	next := s.index() + 1
	if next >= len(Order) {
		return
	}
	if next > m.step.index() {
		m.step = Order[next]
	}
}

func (m *Machine) requireVisible(s Section) error {
	if !m.visibility.Get(s) {
		return fmt.Errorf("%w: %s", ErrSectionHidden, s)
	}
	return nil
}

// SubmitContext validates the name and context fields. On success it stores
// them, collapses the context section, reveals the system section and advances.
func (m *Machine) SubmitContext(ctx context.Context, in ContextInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireVisible(SectionContext); err != nil {
		return false, err
	}

	errs := validateContext(in.Name, in.Context)
	m.errors.Context = errs
	if len(errs) > 0 {
		return false, nil
	}

	vis := m.visibility.With(SectionSystem, true)
	col := m.collapsed.With(SectionContext, true)
	if err := m.commit(ctx, vis, col); err != nil {
		return false, err
	}

	m.form.Name = in.Name
	m.form.Context = in.Context
	m.advanceFrom(SectionContext)
	return true, nil
}

// SubmitSystem validates system settings. A blank prompt is replaced with
// DefaultPrompt. The system section stays expanded after a successful submit.
func (m *Machine) SubmitSystem(ctx context.Context, in SystemInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireVisible(SectionSystem); err != nil {
		return false, err
	}

	errs := validateSystem(in.SystemSettings)
	m.errors.System = errs
	if len(errs) > 0 {
		return false, nil
	}

	vis := m.visibility.With(SectionMustHave, true)
	if err := m.commit(ctx, vis, m.collapsed); err != nil {
		return false, err
	}

	m.form.SystemSettings = in.SystemSettings
	m.form.Prompt = in.Prompt
	if blank(m.form.Prompt) {
		m.form.Prompt = DefaultPrompt
	}
	m.advanceFrom(SectionSystem)
	return true, nil
}

// SubmitMustHave always succeeds; the field is optional.
func (m *Machine) SubmitMustHave(ctx context.Context, in MustHaveInput) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireVisible(SectionMustHave); err != nil {
		return err
	}

	vis := m.visibility.With(SectionContent, true)
	col := m.collapsed.With(SectionMustHave, true)
	if err := m.commit(ctx, vis, col); err != nil {
		return err
	}

	m.form.MustHaveContent = in.MustHaveContent
	m.advanceFrom(SectionMustHave)
	return nil
}

// SubmitContent validates the content to rewrite. Content is the last
// section so nothing is revealed and the step does not move.
func (m *Machine) SubmitContent(ctx context.Context, in ContentInput) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireVisible(SectionContent); err != nil {
		return false, err
	}

	errs := validateContent(in.Content)
	m.errors.Content = errs
	if len(errs) > 0 {
		return false, nil
	}

	col := m.collapsed.With(SectionContent, true)
	if err := m.commit(ctx, m.visibility, col); err != nil {
		return false, err
	}

	m.form.Content = in.Content
	return true, nil
}

// Update merges a partial form edit without validating or moving the wizard.
func (m *Machine) Update(patch FormPatch) FormData {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.form = m.form.merge(patch)
	return m.form
}

func (m *Machine) SetCollapsed(ctx context.Context, s Section, collapsed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.index() < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	if collapsed {
		if err := m.requireVisible(s); err != nil {
			return err
		}
	}
	return m.commit(ctx, m.visibility, m.collapsed.With(s, collapsed))
}

// GoToStep moves the cursor. Moving back is always allowed; moving forward
// needs the target to be visible and every required section before it filled.
func (m *Machine) GoToStep(s Section) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := s.index()
	if target < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	if target <= m.step.index() {
		m.step = s
		return nil
	}

	if !m.visibility.Get(s) {
		return fmt.Errorf("%w: %s", ErrStepLocked, s)
	}
	filled := m.filled()
	for _, prev := range Order[:target] {
		if prev.required() && !filled.Get(prev) {
			return fmt.Errorf("%w: %s is not filled", ErrStepLocked, prev)
		}
	}
	m.step = s
	return nil
}

func (m *Machine) filled() SectionFlags {
	return SectionFlags{
		Context:  !blank(m.form.Name) || !blank(m.form.Context),
		System:   !blank(m.form.SystemSettings),
		MustHave: !blank(m.form.MustHaveContent),
		Content:  !blank(m.form.Content),
	}
}

// Filled reports which sections hold data. Context counts as filled when
// either of its two fields is non-blank.
func (m *Machine) Filled() SectionFlags {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filled()
}

// ValidateRequired re-runs every section check against the current form and
// records the results. It reports whether the form is ready to submit.
func (m *Machine) ValidateRequired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validateRequiredLocked()
}

func (m *Machine) validateRequiredLocked() bool {
	m.errors = ValidationErrors{
		Context: validateContext(m.form.Name, m.form.Context),
		System:  validateSystem(m.form.SystemSettings),
		Content: validateContent(m.form.Content),
	}
	return m.errors.Empty()
}

// ValidatedForm runs ValidateRequired and returns the form it checked, so a
// concurrent update cannot slip in between the two.
func (m *Machine) ValidatedForm() (FormData, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ok := m.validateRequiredLocked()
	return m.form, ok
}

func (m *Machine) Form() FormData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

func (m *Machine) CurrentStep() Section {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.step
}

func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return State{
		Form:        m.form,
		Errors:      cloneErrors(m.errors),
		Visibility:  m.visibility,
		Collapsed:   m.collapsed,
		CurrentStep: m.step,
		Filled:      m.filled(),
	}
}

// Reset deletes the durable records and returns the session to its initial state.
func (m *Machine) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, m.visibilityKey, m.collapsedKey); err != nil {
		return fmt.Errorf("reset wizard: %w", err)
	}
	return m.load(ctx)
}

func cloneErrors(v ValidationErrors) ValidationErrors {
	return ValidationErrors{
		Context: append([]string{}, v.Context...),
		System:  append([]string{}, v.System...),
		Content: append([]string{}, v.Content...),
	}
}
