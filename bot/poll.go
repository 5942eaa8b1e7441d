package bot

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/clicepfl/roboclic/dialogue"
	"github.com/clicepfl/roboclic/metrics"
	"github.com/clicepfl/roboclic/quiz"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"
)

// startPoll begins the quiz dialogue: the /poll message is removed and
// replaced by an inline keyboard listing the committee.
func (b *Bot) startPoll(c tele.Context) error {
	chat := c.Chat()
	unlock := b.dialogues.Lock(chat.ID)
	defer unlock()

	b.logger.Info("starting poll dialogue", "chat", chat.ID)
	if err := c.Delete(); err != nil {
		b.logger.Warn("could not delete /poll message", "chat", chat.ID, "error", err.Error())
	}

	members, err := b.db.ListCommittee(context.Background())
	if err != nil {
		return errors.Wrap(err, "fetching committee")
	}
	if len(members) < 2 {
		return c.Send("Le comité est trop petit pour un quiz")
	}

	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}

	prompt, err := b.tele.Send(chat, "Qui l'a dit ?", chooserKeyboard(names))
	if err != nil {
		return errors.Wrap(err, "sending chooser prompt")
	}

	b.dialogues.Set(chat.ID, dialogue.ChooseTarget{PromptID: prompt.ID})
	return nil
}

// onCallback advances ChooseTarget -> SetQuote when a chooser button is
// pressed. Callbacks for chats in any other state are ignored.
func (b *Bot) onCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil || callback.Message == nil {
		return nil
	}
	chat := callback.Message.Chat

	unlock := b.dialogues.Lock(chat.ID)
	defer unlock()

	state, ok := b.dialogues.Get(chat.ID).(dialogue.ChooseTarget)
	if !ok {
		return c.Respond(&tele.CallbackResponse{})
	}

	target := strings.TrimSpace(callback.Data)
	b.logger.Debug("target chosen", "chat", chat.ID, "target", target)
	b.deleteMessage(chat.ID, state.PromptID)

	prompt, err := b.tele.Send(chat, "Qu'a-t'il/elle dit ?")
	if err != nil {
		return errors.Wrap(err, "sending quote prompt")
	}

	b.dialogues.Set(chat.ID, dialogue.SetQuote{PromptID: prompt.ID, Target: target})
	return c.Respond(&tele.CallbackResponse{})
}

// onText finishes the dialogue: the text is taken as the quote, the quiz
// poll is sent and the target's counter is bumped. Text for chats not in
// SetQuote falls through untouched.
func (b *Bot) onText(c tele.Context) error {
	chat := c.Chat()

	unlock := b.dialogues.Lock(chat.ID)
	defer unlock()

	state, ok := b.dialogues.Get(chat.ID).(dialogue.SetQuote)
	if !ok {
		return nil
	}
	quote := c.Text()
	if quote == "" {
		return nil
	}

	quizID := uuid.New()
	logger := b.logger.WithFields(map[string]interface{}{"chat": chat.ID, "quiz_id": quizID.String()})

	b.deleteMessage(chat.ID, state.PromptID)
	if err := c.Delete(); err != nil {
		logger.Warn("could not delete quote message", "error", err.Error())
	}

	ctx := context.Background()
	members, err := b.db.ListCommittee(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching committee")
	}
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	composed, err := quiz.Compose(names, state.Target, rng)
	if err != nil {
		// The target left the committee mid-dialogue; abort instead of
		// leaving the chat stuck waiting on a quote.
		b.dialogues.Reset(chat.ID)
		metrics.QuizAbandoned.Add(1)
		return errors.Wrap(err, "composing quiz")
	}

	poll := &tele.Poll{
		Type:          tele.PollQuiz,
		Question:      fmt.Sprintf("Qui a dit: \"%s\" ?", quote),
		Anonymous:     false,
		CorrectOption: composed.CorrectIndex,
	}
	poll.AddOptions(composed.Options...)

	if _, err := b.tele.Send(chat, poll); err != nil {
		return errors.Wrap(err, "sending quiz poll")
	}
	metrics.QuizCreated.Add(1)
	logger.Info("quiz sent", "target", state.Target, "options", len(composed.Options))

	b.dialogues.Reset(chat.ID)

	if err := b.db.IncrementPollCount(ctx, state.Target); err != nil {
		return errors.Wrap(err, "updating poll count")
	}
	return nil
}

// chooserKeyboard lays out one button per member, three per row.
func chooserKeyboard(names []string) *tele.ReplyMarkup {
	rows := make([][]tele.InlineButton, 0, (len(names)+2)/3)
	for i, name := range names {
		button := tele.InlineButton{Text: name, Data: name}
		if i%3 == 0 {
			rows = append(rows, []tele.InlineButton{button})
		} else {
			rows[len(rows)-1] = append(rows[len(rows)-1], button)
		}
	}
	return &tele.ReplyMarkup{InlineKeyboard: rows}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	stored := tele.StoredMessage{ChatID: chatID, MessageID: strconv.Itoa(messageID)}
	if err := b.tele.Delete(stored); err != nil {
		b.logger.Warn("could not delete prompt message", "chat", chatID, "message", messageID, "error", err.Error())
	}
}
