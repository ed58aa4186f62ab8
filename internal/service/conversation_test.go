package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adviseCall struct {
	prompt string
	lang   i18n.Language
	image  *domain.InlineImage
}

type fakeAdvisor struct {
	mu     sync.Mutex
	calls  []adviseCall
	gate   chan struct{}
	advice Advice
	panics bool
}

func (f *fakeAdvisor) Advise(_ context.Context, prompt string, lang i18n.Language, image *domain.InlineImage) Advice {
	f.mu.Lock()
	f.calls = append(f.calls, adviseCall{prompt: prompt, lang: lang, image: image})
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.panics {
		panic("advisor exploded")
	}
	return f.advice
}

func (f *fakeAdvisor) Calls() []adviseCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]adviseCall(nil), f.calls...)
}

func newTestConversation(adv Advisor, lang i18n.Language) *Conversation {
	return NewConversation(context.Background(), adv, i18n.NewLocale(lang))
}

func wait(t *testing.T, p *Pending) domain.Message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	msg, err := p.Wait(ctx)
	require.NoError(t, err)
	return msg
}

func countRole(msgs []domain.Message, role domain.Role) int {
	n := 0
	for _, m := range msgs {
		if m.Role == role {
			n++
		}
	}
	return n
}

func TestConversationGreeting(t *testing.T) {
	c := newTestConversation(&fakeAdvisor{}, i18n.French)

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleModel, msgs[0].Role)
	assert.Equal(t, i18n.T(i18n.French, "assistant_greeting"), msgs[0].Text)
	assert.Equal(t, StateIdle, c.State())
}

func TestConversationTextScenario(t *testing.T) {
	adv := &fakeAdvisor{advice: Advice{Text: "Check nitrogen levels.", Outcome: OutcomeOK}}
	c := newTestConversation(adv, i18n.English)

	c.UpdateDraftText("How do I treat yellow leaves?")
	p, err := c.Submit()
	require.NoError(t, err)
	assert.True(t, c.Draft().Empty())

	reply := wait(t, p)
	assert.Equal(t, "Check nitrogen levels.", reply.Text)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.RoleModel, msgs[0].Role)
	assert.Equal(t, domain.RoleUser, msgs[1].Role)
	assert.Equal(t, "How do I treat yellow leaves?", msgs[1].Text)
	assert.False(t, msgs[1].HasImage())
	assert.Equal(t, domain.RoleModel, msgs[2].Role)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "", c.Draft().Text)

	calls := adv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "How do I treat yellow leaves?", calls[0].prompt)
	assert.Nil(t, calls[0].image)
}

func TestConversationEmptySubmit(t *testing.T) {
	adv := &fakeAdvisor{}
	c := newTestConversation(adv, i18n.English)

	c.UpdateDraftText("   \n")
	_, err := c.Submit()
	assert.ErrorIs(t, err, domain.ErrEmptyDraft)
	assert.Len(t, c.Messages(), 1)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "   \n", c.Draft().Text)
	assert.Empty(t, adv.Calls())
}

func TestConversationRejectsWhileAwaiting(t *testing.T) {
	adv := &fakeAdvisor{gate: make(chan struct{}), advice: Advice{Text: "ok"}}
	c := newTestConversation(adv, i18n.English)

	c.UpdateDraftText("first")
	p, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, StateAwaiting, c.State())

	c.UpdateDraftText("second")
	_, err = c.Submit()
	assert.ErrorIs(t, err, domain.ErrRequestInFlight)
	assert.Len(t, c.Messages(), 2)
	assert.Equal(t, "second", c.Draft().Text)

	close(adv.gate)
	wait(t, p)
	assert.Equal(t, StateIdle, c.State())

	p, err = c.Submit()
	require.NoError(t, err)
	wait(t, p)

	msgs := c.Messages()
	assert.Len(t, msgs, 5)
	assert.Equal(t, 2, countRole(msgs, domain.RoleUser))
}

func TestConversationFailureAddsErrorText(t *testing.T) {
	cases := []Advice{
		{Text: i18n.T(i18n.English, "advisor_error_no_credential"), Outcome: OutcomeNoCredential},
		{Text: i18n.T(i18n.English, "advisor_error_request"), Outcome: OutcomeFailed},
	}
	for _, advice := range cases {
		c := newTestConversation(&fakeAdvisor{advice: advice}, i18n.English)
		c.UpdateDraftText("hello")
		p, err := c.Submit()
		require.NoError(t, err)

		assert.Equal(t, advice.Outcome, p.Advice().Outcome)
		msgs := c.Messages()
		require.Len(t, msgs, 3)
		assert.Equal(t, advice.Text, msgs[2].Text)
		assert.Equal(t, StateIdle, c.State())
	}
}

func TestConversationAdvisorPanic(t *testing.T) {
	c := newTestConversation(&fakeAdvisor{panics: true}, i18n.English)
	c.UpdateDraftText("hello")
	p, err := c.Submit()
	require.NoError(t, err)

	reply := wait(t, p)
	assert.Equal(t, i18n.T(i18n.English, "advisor_error_request"), reply.Text)
	assert.Equal(t, StateIdle, c.State())
}

func TestConversationImageOnly(t *testing.T) {
	adv := &fakeAdvisor{advice: Advice{Text: "Leaf rust."}}
	previews := capture.NewPreviewStore()
	c := newTestConversation(adv, i18n.French)

	att := capture.SelectFile(previews, capture.File{Name: "leaf.png", Load: capture.BytesLoader([]byte("png"))})
	c.AttachImage(att)
	p, err := c.Submit()
	require.NoError(t, err)
	assert.Nil(t, c.Draft().Attachment)
	wait(t, p)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "", msgs[1].Text)
	assert.Equal(t, att.Preview, msgs[1].AttachedImage)
	_, err = previews.Get(att.Preview)
	assert.NoError(t, err)

	calls := adv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, i18n.T(i18n.French, "assistant_image_prompt"), calls[0].prompt)
	require.NotNil(t, calls[0].image)
	assert.Equal(t, "image/png", calls[0].image.MimeType)
	for _, m := range msgs {
		assert.NotEqual(t, calls[0].prompt, m.Text)
	}
}

func TestConversationImageEncodeFailure(t *testing.T) {
	adv := &fakeAdvisor{advice: Advice{Text: "unused"}}
	c := newTestConversation(adv, i18n.English)

	c.AttachImage(capture.SelectFile(capture.NewPreviewStore(), capture.File{
		Name: "leaf.jpg",
		Load: func(context.Context) ([]byte, error) { return nil, errors.New("download failed") },
	}))
	c.UpdateDraftText("what is this?")
	p, err := c.Submit()
	require.NoError(t, err)

	reply := wait(t, p)
	assert.Equal(t, i18n.T(i18n.English, "assistant_image_error"), reply.Text)
	assert.Equal(t, OutcomeFailed, p.Advice().Outcome)
	assert.Empty(t, adv.Calls())
	assert.Len(t, c.Messages(), 3)
}

func TestConversationAttachmentReplacement(t *testing.T) {
	previews := capture.NewPreviewStore()
	c := newTestConversation(&fakeAdvisor{}, i18n.English)

	first := capture.SelectFile(previews, capture.File{Name: "a.jpg"})
	second := capture.SelectFile(previews, capture.File{Name: "b.jpg"})
	c.AttachImage(first)
	c.AttachImage(second)

	_, err := previews.Get(first.Preview)
	assert.ErrorIs(t, err, domain.ErrPreviewNotFound)
	assert.Same(t, second, c.Draft().Attachment)

	c.ClearAttachment()
	assert.Nil(t, c.Draft().Attachment)
	assert.Equal(t, 0, previews.Len())
}

func TestConversationLanguageSwitchKeepsLog(t *testing.T) {
	locale := i18n.NewLocale(i18n.English)
	c := NewConversation(context.Background(), &fakeAdvisor{advice: Advice{Text: "ok"}}, locale)
	c.UpdateDraftText("hi")
	p, err := c.Submit()
	require.NoError(t, err)
	wait(t, p)

	before := c.Messages()
	locale.Set(i18n.French)
	assert.Equal(t, before, c.Messages())
	assert.Equal(t, StateIdle, c.State())
}
