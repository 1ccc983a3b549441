package handler

import (
	"fmt"
	"strconv"
	"strings"

	"wordballs/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// Callback uniques of buttons that carry a payload
const (
	uniqueLetter   = "letter"
	uniqueSuggest  = "suggest"
	uniqueToken    = "token"
	uniqueEvict    = "evict"
	uniqueLanguage = "lang"
	uniqueCategory = "cat"
)

const (
	lettersPerRow = 6
	tokensPerRow  = 8
)

// Inline keyboard buttons
var (
	btnNewGame = tele.Btn{
		Unique: "new_game",
		Text:   "▶️ New game",
	}
	btnLanguages = tele.Btn{
		Unique: "languages",
		Text:   "🌐 Language",
	}
	btnCategories = tele.Btn{
		Unique: "categories",
		Text:   "🗂 Categories",
	}
	btnMode = tele.Btn{
		Unique: "mode",
		Text:   "🔀 Mode",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Menu",
	}
	btnBackspace = tele.Btn{
		Unique: "backspace",
		Text:   "⌫",
	}
	btnClear = tele.Btn{
		Unique: "clear",
		Text:   "🧹 Clear",
	}
	btnCommit = tele.Btn{
		Unique: "commit",
		Text:   "✅ Commit",
	}
	btnPlay = tele.Btn{
		Unique: "play",
		Text:   "🔊 Play",
	}
)

// gameState is everything the game message shows
type gameState struct {
	Language     string
	SentenceMode bool
	Tokens       []domain.Token
	Committed    []domain.CommittedWord
	Letters      []rune
	Suggestion   *domain.WordEntry
	Exact        *domain.WordEntry
}

// renderGame builds the game message. Only letters that keep the buffer on a
// dictionary path get a button.
func renderGame(state gameState) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	fmt.Fprintf(&b, "🎈 %s · %s\n\n", strings.ToUpper(state.Language), modeName(state.SentenceMode))

	if state.SentenceMode {
		words := make([]string, len(state.Committed))
		for i, w := range state.Committed {
			words[i] = w.Text()
		}
		if len(words) == 0 {
			b.WriteString("Sentence: …\n")
		} else {
			fmt.Fprintf(&b, "Sentence: %s\n", strings.Join(words, " "))
		}
	}

	if len(state.Tokens) == 0 {
		b.WriteString("Word: …")
	} else {
		fmt.Fprintf(&b, "Word: %s", domain.TokensText(state.Tokens))
	}
	if len(state.Tokens) > 0 && len(state.Letters) == 0 && state.Exact == nil {
		b.WriteString("\n\nNo word continues this way.")
	}

	markup := &tele.ReplyMarkup{}
	var rows []tele.Row

	var tokenBtns []tele.Btn
	for _, tok := range state.Tokens {
		tokenBtns = append(tokenBtns, markup.Data(string(tok.Letter), uniqueToken, strconv.FormatUint(uint64(tok.ID), 10)))
	}
	rows = append(rows, chunk(markup, tokenBtns, tokensPerRow)...)

	var letterBtns []tele.Btn
	for _, ch := range state.Letters {
		letterBtns = append(letterBtns, markup.Data(string(ch), uniqueLetter, string(ch)))
	}
	rows = append(rows, chunk(markup, letterBtns, lettersPerRow)...)

	if state.Suggestion != nil {
		// Callback data is capped at 64 bytes, so the button carries the buffer
		// length and the handler re-reads the suggestion.
		rows = append(rows, markup.Row(markup.Data("✨ "+state.Suggestion.Text, uniqueSuggest, strconv.Itoa(len(state.Tokens)))))
	}

	if state.SentenceMode && len(state.Committed) > 0 {
		var evictBtns []tele.Btn
		for i, w := range state.Committed {
			evictBtns = append(evictBtns, markup.Data("✖ "+w.Text(), uniqueEvict, strconv.Itoa(i)))
		}
		rows = append(rows, chunk(markup, evictBtns, 3)...)
	}

	controls := tele.Row{btnBackspace, btnClear}
	if state.SentenceMode {
		controls = append(controls, btnCommit, btnPlay)
	}
	rows = append(rows, controls, markup.Row(btnMainMenu))

	markup.Inline(rows...)
	return b.String(), markup
}

// matchText is the success message for a completed word
func matchText(entry domain.WordEntry) string {
	text := "🎉 " + entry.Text
	if entry.AssetRef != "" {
		text += "\n🖼 " + entry.AssetRef
	}
	return text
}

// menuText describes the player's settings
func menuText(player *domain.Player) string {
	categories := "all"
	if len(player.Categories) > 0 {
		categories = strings.Join(player.Categories, ", ")
	}
	return fmt.Sprintf(
		"🎈 Word Balls\n\nLanguage: %s\nMode: %s\nCategories: %s",
		strings.ToUpper(player.Language), modeName(player.SentenceMode), categories,
	)
}

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnNewGame),
		menu.Row(btnLanguages, btnCategories),
		menu.Row(btnMode),
	)
	return menu
}

func languagesMarkup(languages []string, current string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var btns []tele.Btn
	for _, lang := range languages {
		text := strings.ToUpper(lang)
		if lang == current {
			text = "• " + text
		}
		btns = append(btns, markup.Data(text, uniqueLanguage, lang))
	}
	rows := chunk(markup, btns, 4)
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

func categoriesMarkup(categories []string, player *domain.Player) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	var btns []tele.Btn
	for i, cat := range categories {
		text := cat
		if player.HasCategory(cat) {
			text = "✓ " + cat
		}
		btns = append(btns, markup.Data(text, uniqueCategory, strconv.Itoa(i)))
	}
	rows := chunk(markup, btns, 2)
	rows = append(rows, markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

func modeName(sentence bool) string {
	if sentence {
		return "sentence"
	}
	return "single word"
}

func chunk(markup *tele.ReplyMarkup, btns []tele.Btn, size int) []tele.Row {
	var rows []tele.Row
	for len(btns) > 0 {
		n := size
		if len(btns) < n {
			n = len(btns)
		}
		rows = append(rows, markup.Row(btns[:n]...))
		btns = btns[n:]
	}
	return rows
}
