package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"paraphrase-be/internal/dto"
	"paraphrase-be/internal/pkg/logger"
	"paraphrase-be/internal/repository/memory"
	"paraphrase-be/pkg/events"
	"paraphrase-be/pkg/persona"
	"paraphrase-be/pkg/rewrite"
	"paraphrase-be/pkg/wizard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEvents struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recordingEvents) Publish(_ context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
}

func (r *recordingEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.got))
	for _, e := range r.got {
		out = append(out, e.EventType())
	}
	return out
}

type fixture struct {
	events   *recordingEvents
	state    *memory.StateRepository
	sessions ISessionService
	wizard   IWizardService
	rewrite  IRewriteService
}

func newFixture(rw rewrite.Rewriter) *fixture {
	ev := &recordingEvents{}
	state := memory.NewStateRepository(0)
	sessions := NewSessionService(memory.NewSessionRepository(time.Hour), state, rw, ev, logger.NewNop())
	return &fixture{
		events:   ev,
		state:    state,
		sessions: sessions,
		wizard:   NewWizardService(sessions, ev),
		rewrite:  NewRewriteService(sessions, rw, nil),
	}
}

func (f *fixture) fill(t *testing.T, sid string) {
	t.Helper()
	ctx := context.Background()

	res, err := f.wizard.SubmitContext(ctx, sid, &dto.SubmitContextRequest{Name: "Ana", Context: "teacher"})
	require.NoError(t, err)
	require.True(t, res.Accepted)
	res, err = f.wizard.SubmitSystem(ctx, sid, &dto.SubmitSystemRequest{SystemSettings: "macOS"})
	require.NoError(t, err)
	require.True(t, res.Accepted)
	_, err = f.wizard.SubmitMustHave(ctx, sid, &dto.SubmitMustHaveRequest{})
	require.NoError(t, err)
	res, err = f.wizard.SubmitContent(ctx, sid, &dto.SubmitContentRequest{Content: "one\n\ntwo"})
	require.NoError(t, err)
	require.True(t, res.Accepted)
}

func TestWizardService_Flow(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	snap, err := f.wizard.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, wizard.SectionContext, snap.State.CurrentStep)
	assert.False(t, snap.State.Visibility.System)

	res, err := f.wizard.SubmitContext(ctx, "s1", &dto.SubmitContextRequest{Name: "", Context: ""})
	require.NoError(t, err)
	assert.False(t, res.Accepted)
	assert.NotEmpty(t, res.Wizard.State.Errors.Context)

	_, err = f.wizard.SubmitContent(ctx, "s1", &dto.SubmitContentRequest{Content: "x"})
	assert.ErrorIs(t, err, wizard.ErrSectionHidden)

	f.fill(t, "s1")
	snap, err = f.wizard.Snapshot(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, wizard.SectionContent, snap.State.CurrentStep)
	assert.True(t, snap.State.Filled.Content)
	assert.Equal(t, wizard.DefaultPrompt, snap.State.Form.Prompt)

	assert.Contains(t, f.events.types(), events.SectionSubmitted)
}

func TestWizardService_UpdateAndPersona(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()

	content := "draft"
	res, err := f.wizard.UpdateForm(ctx, "s1", &dto.UpdateFormRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "draft", res.State.Form.Content)

	res, err = f.wizard.ApplyPersona(ctx, "s1", &dto.ApplyPersonaRequest{Name: "Maya", Context: "29 year old woman"})
	require.NoError(t, err)
	assert.Equal(t, "Maya", res.State.Form.Name)
	assert.Equal(t, "draft", res.State.Form.Content)
}

func TestWizardService_CollapsedAndStep(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	yes := true

	_, err := f.wizard.SetCollapsed(ctx, "s1", "bogus", &dto.SetCollapsedRequest{Collapsed: &yes})
	assert.ErrorIs(t, err, wizard.ErrUnknownSection)

	_, err = f.wizard.SetCollapsed(ctx, "s1", "system", &dto.SetCollapsedRequest{Collapsed: &yes})
	assert.ErrorIs(t, err, wizard.ErrSectionHidden)

	res, err := f.wizard.SetCollapsed(ctx, "s1", "context", &dto.SetCollapsedRequest{Collapsed: &yes})
	require.NoError(t, err)
	assert.True(t, res.State.Collapsed.Context)

	_, err = f.wizard.GoToStep(ctx, "s1", &dto.GoToStepRequest{Step: "content"})
	assert.ErrorIs(t, err, wizard.ErrStepLocked)
}

func TestWizardService_ResetClearsEverything(t *testing.T) {
	f := newFixture(rewrite.RewriterFunc(func(context.Context, rewrite.Request) (string, error) {
		return "A\n========\nB", nil
	}))
	ctx := context.Background()
	f.fill(t, "s1")

	_, err := f.rewrite.Submit(ctx, "s1")
	require.NoError(t, err)

	res, err := f.wizard.Reset(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, res.State.Visibility.System)
	assert.Empty(t, res.State.Form.Content)

	out, err := f.rewrite.Result(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, out.Result.ParaphrasedParagraphs)
	assert.Contains(t, f.events.types(), events.WizardReset)
}

func TestSessionService_RebuildsFromDurableState(t *testing.T) {
	f := newFixture(nil)
	ctx := context.Background()
	f.fill(t, "s1")

	// a fresh registry over the same store simulates session expiry
	rebuilt := NewSessionService(memory.NewSessionRepository(time.Hour), f.state, nil, f.events, logger.NewNop())
	sess, err := rebuilt.Get(ctx, "s1")
	require.NoError(t, err)

	snap := sess.Wizard.Snapshot()
	assert.True(t, snap.Visibility.Content)
	assert.Empty(t, snap.Form.Content)
}

func TestRewriteService_Submit(t *testing.T) {
	f := newFixture(rewrite.RewriterFunc(func(_ context.Context, req rewrite.Request) (string, error) {
		assert.Equal(t, "Ana", req.Name)
		return "First\n========\nSecond", nil
	}))
	ctx := context.Background()
	f.fill(t, "s1")

	out, err := f.rewrite.Submit(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, out.Busy)
	assert.Equal(t, []string{"one", "two"}, out.Result.OriginalParagraphs)
	assert.Equal(t, []string{"First", "Second"}, out.Result.ParaphrasedParagraphs)

	assert.Equal(t, []string{events.RewriteStarted, events.RewriteCompleted}, f.events.types()[len(f.events.types())-2:])
}

func TestRewriteService_SubmitFailure(t *testing.T) {
	f := newFixture(rewrite.RewriterFunc(func(context.Context, rewrite.Request) (string, error) {
		return "", rewrite.ErrUpstream
	}))
	ctx := context.Background()

	out, err := f.rewrite.Submit(ctx, "s1")
	assert.ErrorIs(t, err, rewrite.ErrIncompleteForm)
	assert.Equal(t, rewrite.MsgIncompleteForm, out.Result.MainError)

	f.fill(t, "s1")
	out, err = f.rewrite.Submit(ctx, "s1")
	assert.ErrorIs(t, err, rewrite.ErrUpstream)
	assert.Equal(t, rewrite.MsgFailed, out.Result.MainError)

	types := f.events.types()
	assert.Equal(t, events.RewriteFailed, types[len(types)-1])
}

func TestRewriteService_SubmitBackendPanic(t *testing.T) {
	f := newFixture(rewrite.RewriterFunc(func(context.Context, rewrite.Request) (string, error) {
		panic("provider exploded")
	}))
	ctx := context.Background()
	f.fill(t, "s1")

	out, err := f.rewrite.Submit(ctx, "s1")
	assert.ErrorIs(t, err, rewrite.ErrUpstream)
	assert.False(t, out.Busy)
	assert.Equal(t, rewrite.MsgFailed, out.Result.MainError)

	types := f.events.types()
	assert.Equal(t, []string{events.RewriteStarted, events.RewriteFailed}, types[len(types)-2:])
	assert.NotContains(t, types, events.RewriteCompleted)
}

func TestRewriteService_Paraphrase(t *testing.T) {
	f := newFixture(rewrite.RewriterFunc(func(_ context.Context, req rewrite.Request) (string, error) {
		if req.Content == "" {
			return "", rewrite.ErrContentMissing
		}
		return "one\n\ntwo", nil
	}))
	ctx := context.Background()

	res, err := f.rewrite.Paraphrase(ctx, &dto.ParaphraseRequest{Content: "text"})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, res.Paragraphs)

	_, err = f.rewrite.Paraphrase(ctx, &dto.ParaphraseRequest{})
	assert.ErrorIs(t, err, rewrite.ErrContentMissing)

	_, err = NewRewriteService(f.sessions, nil, nil).Paraphrase(ctx, &dto.ParaphraseRequest{Content: "x"})
	assert.ErrorIs(t, err, rewrite.ErrNotConfigured)
}

type deviceFunc func(context.Context, rewrite.DeviceRequest) (string, error)

func (f deviceFunc) DescribeDevice(ctx context.Context, req rewrite.DeviceRequest) (string, error) {
	return f(ctx, req)
}

func TestRewriteService_DescribeDevice(t *testing.T) {
	f := newFixture(nil)
	svc := NewRewriteService(f.sessions, nil, deviceFunc(func(_ context.Context, req rewrite.DeviceRequest) (string, error) {
		return "A laptop in " + req.SystemSettings, nil
	}))

	res, err := svc.DescribeDevice(context.Background(), &dto.DeviceInfoRequest{SystemSettings: "Berlin"})
	require.NoError(t, err)
	assert.Equal(t, "A laptop in Berlin", res.DeviceInfo)

	_, err = f.rewrite.DescribeDevice(context.Background(), &dto.DeviceInfoRequest{SystemSettings: "x"})
	assert.ErrorIs(t, err, rewrite.ErrNotConfigured)
}

func TestPersonaService(t *testing.T) {
	ev := &recordingEvents{}
	svc := NewPersonaService(persona.NewGenerator(persona.DefaultTables(), persona.NewSource(7)), ev)
	ctx := context.Background()

	batch := svc.GenerateBatch(ctx, "s1", &dto.GeneratePersonasRequest{Count: 3})
	assert.Len(t, batch, 3)

	p := svc.GenerateConstrained(ctx, "s1", &dto.ConstrainedPersonaRequest{Gender: "female", LifeStage: "retired"})
	assert.Equal(t, "female", p.Gender)
	assert.Equal(t, "retired", p.LifeStage)

	assert.Equal(t, []string{events.PersonasGenerated, events.PersonasGenerated}, ev.types())
	assert.Equal(t, 3, ev.got[0].Payload()["count"])
}

type failingPublisher struct{ calls int }

func (f *failingPublisher) Publish(context.Context, events.Event) error {
	f.calls++
	return errors.New("broker down")
}

func TestEventService_SwallowsErrors(t *testing.T) {
	pub := &failingPublisher{}
	svc := NewEventService(pub, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Publish(ctx, events.NewSessionEvent(events.WizardReset, "s1", nil))
	assert.Equal(t, 1, pub.calls)

	NewEventService(nil, logger.NewNop()).Publish(context.Background(), events.NewSessionEvent(events.WizardReset, "s1", nil))
}

type chanDelivery chan string

func (c chanDelivery) Send(sessionID string, _ []byte) { c <- sessionID }

func TestRelayService_DeliversBySession(t *testing.T) {
	bus := events.NewChannelBus(nil)
	defer bus.Close()
	delivered := make(chanDelivery, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewRelayService(bus, delivered, logger.NewNop()).Consume(ctx))

	require.NoError(t, bus.Publish(ctx, events.BaseEvent{Type: "NO_SESSION", Data: map[string]interface{}{}}))
	require.NoError(t, bus.Publish(ctx, events.NewSessionEvent(events.RewriteStarted, "s7", nil)))

	select {
	case sid := <-delivered:
		assert.Equal(t, "s7", sid)
	case <-time.After(2 * time.Second):
		t.Fatal("event not relayed")
	}
}

func TestAuditService_HandleEvent(t *testing.T) {
	svc := NewAuditService(nil, logger.NewNop())
	assert.NoError(t, svc.handleEvent(context.Background(), events.NewSessionEvent(events.RewriteFailed, "s1", map[string]interface{}{"error": "x"})))
	assert.NoError(t, svc.handleEvent(context.Background(), events.NewSessionEvent(events.RewriteCompleted, "s1", nil)))
}
