package handler

import (
	"strings"
	"sync"
	"time"

	"wordballs/internal/domain"
	"wordballs/internal/engine"
	"wordballs/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// renderDelay batches the events of one interaction into a single message edit
const renderDelay = 50 * time.Millisecond

// Editor is the part of the bot a View talks to
type Editor interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// View renders one game into one chat message. It is the session's Dispatcher:
// events only record state and schedule a redraw, since they arrive while the
// session is locked and the redraw reads the session back.
type View struct {
	editor    Editor
	chat      tele.Recipient
	language  string
	scheduler engine.Scheduler
	logger    *zap.Logger

	renderMu sync.Mutex

	mu         sync.Mutex
	session    *engine.Session
	msg        tele.Editable
	letters    []rune
	suggestion *domain.WordEntry
	matched    []domain.WordEntry
	scheduled  bool
	lastText   string
	lastKeys   string
}

// NewView creates a view for chat. Attach must be called before the first render.
func NewView(editor Editor, chat tele.Recipient, scheduler engine.Scheduler, logger *zap.Logger) *View {
	if scheduler == nil {
		scheduler = engine.ClockScheduler{}
	}
	return &View{
		editor:    editor,
		chat:      chat,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Attach binds the view to the game it shows
func (v *View) Attach(game *service.Game) {
	res := game.Session.Result()

	v.mu.Lock()
	defer v.mu.Unlock()
	v.session = game.Session
	v.language = game.Language
	v.letters = res.ValidNextLetters
	v.suggestion = res.Suggestion
}

// Message returns the game message once it has been sent
func (v *View) Message() tele.Editable {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.msg
}

// OnAvailabilityChanged implements engine.Dispatcher
func (v *View) OnAvailabilityChanged(letters []rune) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.letters = letters
	v.scheduleLocked()
}

// OnSuggestionChanged implements engine.Dispatcher
func (v *View) OnSuggestionChanged(suggestion *domain.WordEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.suggestion = suggestion
	v.scheduleLocked()
}

// OnExactMatch implements engine.Dispatcher
func (v *View) OnExactMatch(entry domain.WordEntry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.matched = append(v.matched, entry)
	v.scheduleLocked()
}

// OnBufferCleared implements engine.Dispatcher
func (v *View) OnBufferCleared() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scheduleLocked()
}

func (v *View) scheduleLocked() {
	if v.scheduled {
		return
	}
	v.scheduled = true
	v.scheduler.AfterFunc(renderDelay, v.Render)
}

// Render draws the game message now and announces any completed words
func (v *View) Render() {
	v.renderMu.Lock()
	defer v.renderMu.Unlock()

	v.mu.Lock()
	v.scheduled = false
	session := v.session
	state := gameState{
		Language:   v.language,
		Letters:    v.letters,
		Suggestion: v.suggestion,
	}
	matched := v.matched
	v.matched = nil
	v.mu.Unlock()

	if session == nil {
		return
	}
	state.Exact = session.Result().ExactMatch
	state.Tokens = session.Tokens()
	state.Committed = session.CommittedWords()
	state.SentenceMode = session.SentenceMode()

	v.draw(state)
	for _, entry := range matched {
		v.announce(entry)
	}
}

func (v *View) draw(state gameState) {
	text, markup := renderGame(state)
	keys := keyboardSignature(markup)

	v.mu.Lock()
	msg := v.msg
	unchanged := msg != nil && text == v.lastText && keys == v.lastKeys
	v.mu.Unlock()

	if unchanged {
		return
	}

	if msg == nil {
		sent, err := v.editor.Send(v.chat, text, markup)
		if err != nil {
			v.logger.Error("Failed to send game message", zap.Error(err))
			return
		}
		v.mu.Lock()
		v.msg = sent
		v.mu.Unlock()
	} else if _, err := v.editor.Edit(msg, text, markup); err != nil && !isNotModified(err) {
		v.logger.Warn("Failed to edit game message", zap.Error(err))
		return
	}

	v.mu.Lock()
	v.lastText = text
	v.lastKeys = keys
	v.mu.Unlock()
}

func (v *View) announce(entry domain.WordEntry) {
	if _, err := v.editor.Send(v.chat, matchText(entry)); err != nil {
		v.logger.Warn("Failed to announce match",
			zap.String("word", entry.Text),
			zap.Error(err),
		)
	}
}

// isNotModified reports Telegram's answer to an edit that changes nothing
func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}

func keyboardSignature(markup *tele.ReplyMarkup) string {
	var b strings.Builder
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			b.WriteString(btn.Unique)
			b.WriteByte('|')
			b.WriteString(btn.Data)
			b.WriteByte('|')
			b.WriteString(btn.Text)
			b.WriteByte(';')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
