package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/set-night/agripay/internal/capture"
	"github.com/set-night/agripay/internal/domain"
	"github.com/set-night/agripay/internal/i18n"
)

type ConversationState int

const (
	StateIdle ConversationState = iota
	StateAwaiting
)

func (s ConversationState) String() string {
	if s == StateAwaiting {
		return "awaiting"
	}
	return "idle"
}

// Draft is the unsent input of a conversation.
type Draft struct {
	Text       string
	Attachment *capture.Attachment
}

func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Text) == "" && d.Attachment == nil
}

// Conversation is one farmer's exchange with the advisor: an append-only log,
// a draft, and at most one request in flight.
type Conversation struct {
	mu       sync.Mutex
	ctx      context.Context
	advisor  Advisor
	locale   *i18n.Locale
	messages []domain.Message
	draft    Draft
	awaiting bool
}

// NewConversation starts an idle conversation seeded with the greeting in the
// locale's current language. Requests run on ctx, not on the caller's context.
func NewConversation(ctx context.Context, advisor Advisor, locale *i18n.Locale) *Conversation {
	return &Conversation{
		ctx:     ctx,
		advisor: advisor,
		locale:  locale,
		messages: []domain.Message{{
			Role:      domain.RoleModel,
			Text:      locale.T("assistant_greeting"),
			CreatedAt: time.Now(),
		}},
	}
}

func (c *Conversation) State() ConversationState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.awaiting {
		return StateAwaiting
	}
	return StateIdle
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []domain.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Conversation) UpdateDraftText(text string) {
	c.mu.Lock()
	c.draft.Text = text
	c.mu.Unlock()
}

// AttachImage replaces the draft attachment. A replaced one is released.
func (c *Conversation) AttachImage(att *capture.Attachment) {
	c.mu.Lock()
	old := c.draft.Attachment
	c.draft.Attachment = att
	c.mu.Unlock()

	if old != nil && old != att {
		old.Release()
	}
}

// ClearAttachment removes and releases the draft attachment, if any.
func (c *Conversation) ClearAttachment() {
	c.mu.Lock()
	old := c.draft.Attachment
	c.draft.Attachment = nil
	c.mu.Unlock()

	if old != nil {
		old.Release()
	}
}

// Pending is a submitted request. Reply and Advice are valid once Done is closed.
type Pending struct {
	done   chan struct{}
	reply  domain.Message
	advice Advice
}

func (p *Pending) Done() <-chan struct{} {
	return p.done
}

func (p *Pending) Reply() domain.Message {
	<-p.done
	return p.reply
}

func (p *Pending) Advice() Advice {
	<-p.done
	return p.advice
}

// Wait blocks until the reply is appended or ctx ends.
func (p *Pending) Wait(ctx context.Context) (domain.Message, error) {
	select {
	case <-p.done:
		return p.reply, nil
	case <-ctx.Done():
		return domain.Message{}, ctx.Err()
	}
}

// Submit appends the draft as a user message, clears it and starts the
// advisory request. It fails with ErrEmptyDraft or ErrRequestInFlight and then
// changes nothing.
func (c *Conversation) Submit() (*Pending, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.Empty() {
		return nil, domain.ErrEmptyDraft
	}
	if c.awaiting {
		return nil, domain.ErrRequestInFlight
	}

	draft := c.draft
	lang := c.locale.Language()

	msg := domain.Message{
		Role:      domain.RoleUser,
		Text:      draft.Text,
		CreatedAt: time.Now(),
	}
	if draft.Attachment != nil {
		msg.AttachedImage = draft.Attachment.Preview
	}
	c.messages = append(c.messages, msg)
	c.draft = Draft{}
	c.awaiting = true

	prompt := draft.Text
	if strings.TrimSpace(prompt) == "" {
		prompt = i18n.T(lang, "assistant_image_prompt")
	}

	p := &Pending{done: make(chan struct{})}
	go c.resolve(p, prompt, lang, draft.Attachment)
	return p, nil
}

func (c *Conversation) resolve(p *Pending, prompt string, lang i18n.Language, att *capture.Attachment) {
	advice := c.ask(prompt, lang, att)

	c.mu.Lock()
	p.advice = advice
	p.reply = domain.Message{
		Role:      domain.RoleModel,
		Text:      advice.Text,
		CreatedAt: time.Now(),
	}
	c.messages = append(c.messages, p.reply)
	c.awaiting = false
	c.mu.Unlock()

	close(p.done)
}

func (c *Conversation) ask(prompt string, lang i18n.Language, att *capture.Attachment) (advice Advice) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("advisor panic", "panic", fmt.Sprint(r))
			advice = Advice{Text: i18n.T(lang, "advisor_error_request"), Outcome: OutcomeFailed}
		}
	}()

	var image *domain.InlineImage
	if att != nil {
		encoded, err := att.Encode(c.ctx)
		if err != nil {
			slog.Warn("encode attachment failed", "error", err)
			return Advice{Text: i18n.T(lang, "assistant_image_error"), Outcome: OutcomeFailed}
		}
		image = &encoded
	}

	advice = c.advisor.Advise(c.ctx, prompt, lang, image)
	if !advice.OK() {
		slog.Warn("advice not available", "outcome", advice.Outcome.String())
	}
	return advice
}
