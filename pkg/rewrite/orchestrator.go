package rewrite

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"paraphrase-be/pkg/utils"
	"paraphrase-be/pkg/wizard"
)

// FormSource is the part of the wizard the orchestrator reads from.
type FormSource interface {
	// ValidatedForm validates and returns the form under one lock.
	ValidatedForm() (wizard.FormData, bool)
}

type Result struct {
	OriginalParagraphs    []string `json:"originalParagraphs"`
	ParaphrasedParagraphs []string `json:"paraphrasedParagraphs"`
	MainError             string   `json:"mainError,omitempty"`
}

func (r Result) clone() Result {
	return Result{
		OriginalParagraphs:    append([]string{}, r.OriginalParagraphs...),
		ParaphrasedParagraphs: append([]string{}, r.ParaphrasedParagraphs...),
		MainError:             r.MainError,
	}
}

// Hooks observe a submission. OnStart runs after the original paragraphs
// are published and before the backend is called.
type Hooks struct {
	OnStart  func(original []string)
	OnFinish func(result Result, err error)
}

// Orchestrator runs at most one rewrite at a time for a session.
type Orchestrator struct {
	form     FormSource
	rewriter Rewriter
	hooks    Hooks

	busy atomic.Bool

	mu     sync.RWMutex
	result Result
}

func NewOrchestrator(form FormSource, rewriter Rewriter, hooks Hooks) *Orchestrator {
	return &Orchestrator{
		form:     form,
		rewriter: rewriter,
		hooks:    hooks,
		result:   Result{OriginalParagraphs: []string{}, ParaphrasedParagraphs: []string{}},
	}
}

func (o *Orchestrator) Busy() bool {
	return o.busy.Load()
}

func (o *Orchestrator) Result() Result {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.result.clone()
}

// Clear drops the last result and any error.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	o.result = Result{OriginalParagraphs: []string{}, ParaphrasedParagraphs: []string{}}
	o.mu.Unlock()
}

// Submit validates the whole form and sends it for rewriting. A call made
// while another is in flight returns ErrBusy without touching the backend.
// On failure, including a panicking backend, the previous rewritten
// paragraphs are kept and MainError is set.
func (o *Orchestrator) Submit(ctx context.Context) (res Result, err error) {
	if !o.busy.CompareAndSwap(false, true) {
		return o.Result(), ErrBusy
	}
	defer o.busy.Store(false)

	started := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrUpstream, r)
			o.setError(UserMessage(err))
			res = o.Result()
		}
		if started && o.hooks.OnFinish != nil {
			o.hooks.OnFinish(res, err)
		}
	}()

	form, ok := o.form.ValidatedForm()
	if !ok {
		o.setError(MsgIncompleteForm)
		return o.Result(), ErrIncompleteForm
	}

	original := utils.SplitParagraphs(form.Content)

	o.mu.Lock()
	o.result.MainError = ""
	o.result.OriginalParagraphs = original
	o.mu.Unlock()

	started = true
	if o.hooks.OnStart != nil {
		o.hooks.OnStart(append([]string{}, original...))
	}

	if o.rewriter == nil {
		err = ErrNotConfigured
		o.setError(UserMessage(err))
		return o.Result(), err
	}

	text, err := o.rewriter.Rewrite(ctx, Request{
		Content:         form.Content,
		Prompt:          form.Prompt,
		Name:            form.Name,
		Context:         form.Context,
		SystemSettings:  form.SystemSettings,
		MustHaveContent: form.MustHaveContent,
	}.trimmed())
	if err != nil {
		o.setError(UserMessage(err))
		return o.Result(), err
	}

	o.mu.Lock()
	o.result.ParaphrasedParagraphs = utils.SplitDelimited(text)
	o.mu.Unlock()
	return o.Result(), nil
}

func (o *Orchestrator) setError(msg string) {
	o.mu.Lock()
	o.result.MainError = msg
	o.mu.Unlock()
}
