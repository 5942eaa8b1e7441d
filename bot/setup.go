// Package bot wires the Telegram surface: command handlers, the access
// gate middleware, and the three-step quiz dialogue.
package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/clicepfl/roboclic/access"
	"github.com/clicepfl/roboclic/config"
	"github.com/clicepfl/roboclic/database"
	"github.com/clicepfl/roboclic/dialogue"
	"github.com/clicepfl/roboclic/logging"
	tele "gopkg.in/telebot.v4"
)

// Store is the database surface the bot needs.
type Store interface {
	database.CommitteeStore
	database.AccessStore
}

type Bot struct {
	tele       *tele.Bot
	db         Store
	gate       *access.Gate
	dialogues  *dialogue.Store
	adminToken string
	logger     *logging.Logger
}

// command descriptions, keyed the same way as the authorizations table.
var commands = []struct {
	usage       string
	key         string
	description string
}{
	{"/help", "help", "Affiche ce message"},
	{"/bureau", "bureau", "Crée un sondage pour savoir qui est au bureau"},
	{"/poll", "poll", "Crée un quiz sur une citation d'un des membres du comité"},
	{"/auth <token> <name>", "auth", "Authentification admin"},
	{"/adminlist", "adminlist", "(Admin) Liste les admins"},
	{"/adminremove <name>", "adminremove", "(Admin) Supprime un admin à partir de son nom"},
	{"/authorize <command>", "authorize", "(Admin) Autorise le groupe à utiliser la commande donnée"},
	{"/unauthorize <command>", "unauthorize", "(Admin) Révoque l'autorisation du groupe à utiliser la commande donnée"},
	{"/authorizations", "authorizations", "(Admin) Liste les commandes que ce groupe peut utiliser"},
	{"/stats", "stats", "Affiche les stats des membres du comité"},
	{"/committeeadd <names...>", "committeeadd", "(Admin) Ajoute des personnes au comité"},
	{"/committeeremove <names...>", "committeeremove", "(Admin) Retire des personnes du comité"},
}

// Setup builds the Telegram session and registers every handler behind
// its gate middleware.
func Setup(cfg config.Config, db Store, logger *logging.Logger) (*Bot, error) {
	if logger == nil {
		logger = logging.Default()
	}

	session, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("handler error", "error", err.Error())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating telegram session: %w", err)
	}

	b := &Bot{
		tele:       session,
		db:         db,
		gate:       access.NewGate(db, logger),
		dialogues:  dialogue.NewStore(),
		adminToken: cfg.AdminToken,
		logger:     logger,
	}

	session.Handle("/help", b.help, b.tracked("help"))
	session.Handle("/auth", b.authenticate, b.tracked("auth"))

	session.Handle("/bureau", b.bureau, b.tracked("bureau"), b.requireAuthorization("bureau"))
	session.Handle("/poll", b.startPoll, b.tracked("poll"), b.requireAuthorization("poll"))
	session.Handle("/stats", b.stats, b.tracked("stats"), b.requireAuthorization("stats"))

	session.Handle("/adminlist", b.adminList, b.tracked("adminlist"), b.requireAdmin("adminlist"))
	session.Handle("/adminremove", b.adminRemove, b.tracked("adminremove"), b.requireAdmin("adminremove"))
	session.Handle("/authorize", b.authorize, b.tracked("authorize"), b.requireAdmin("authorize"))
	session.Handle("/unauthorize", b.unauthorize, b.tracked("unauthorize"), b.requireAdmin("unauthorize"))
	session.Handle("/authorizations", b.authorizations, b.tracked("authorizations"), b.requireAdmin("authorizations"))
	session.Handle("/committeeadd", b.committeeAdd, b.tracked("committeeadd"), b.requireAdmin("committeeadd"))
	session.Handle("/committeeremove", b.committeeRemove, b.tracked("committeeremove"), b.requireAdmin("committeeremove"))

	// Dialogue steps arrive as plain text and keyboard callbacks; the
	// handlers dispatch on the chat's current dialogue state.
	session.Handle(tele.OnText, b.onText)
	session.Handle(tele.OnCallback, b.onCallback)

	if err := session.SetCommands(botCommands()); err != nil {
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return b, nil
}

func botCommands() []tele.Command {
	cmds := make([]tele.Command, 0, len(commands))
	for _, c := range commands {
		text, _, _ := strings.Cut(c.usage, " ")
		cmds = append(cmds, tele.Command{
			Text:        strings.TrimPrefix(text, "/"),
			Description: c.description,
		})
	}
	return cmds
}

// Start begins long-polling. It blocks until Stop is called.
func (b *Bot) Start() {
	b.logger.Info("starting telegram long polling")
	b.tele.Start()
}

func (b *Bot) Stop() {
	b.logger.Info("stopping telegram bot")
	b.tele.Stop()
}
