package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	tele "gopkg.in/telebot.v4"
)

func (b *Bot) help(c tele.Context) error {
	var sb strings.Builder
	sb.WriteString("Les commandes suivantes sont supportées:\n")
	for _, cmd := range commands {
		fmt.Fprintf(&sb, "%s — %s\n", cmd.usage, cmd.description)
	}
	return c.Send(sb.String())
}

func (b *Bot) bureau(c tele.Context) error {
	poll := &tele.Poll{
		Type:      tele.PollRegular,
		Question:  "Qui est au bureau ?",
		Anonymous: false,
	}
	poll.AddOptions(
		"Je suis actuellement au bureau",
		"Je suis à proximité du bureau",
		"Je compte m'y rendre bientôt",
		"J'y suis pas",
		"Je suis à Satellite",
		"Je suis pas en Suisse",
	)
	return c.Send(poll)
}

func (b *Bot) authenticate(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /auth <token> <name>")
	}
	token, name := args[0], args[1]
	if token != b.adminToken {
		return c.Send("Le token est incorrect")
	}

	err := b.db.InsertAdmin(context.Background(), senderID(c), name)
	if err != nil {
		return errors.Wrap(err, "registering admin")
	}
	b.logger.Info("registered new admin", "name", name)
	return c.Send("Authentification réussie !")
}

func (b *Bot) adminList(c tele.Context) error {
	admins, err := b.db.ListAdmins(context.Background())
	if err != nil {
		return errors.Wrap(err, "listing admins")
	}
	return c.Send(fmt.Sprintf("Admin(s) actuel(s):\n%s", bulletList(admins)))
}

func (b *Bot) adminRemove(c tele.Context) error {
	name := strings.TrimSpace(c.Message().Payload)
	if name == "" {
		return c.Send("Usage: /adminremove <name>")
	}

	affected, err := b.db.DeleteAdminByName(context.Background(), name)
	if err != nil {
		return errors.Wrap(err, "removing admin")
	}
	if affected == 0 {
		return c.Send(fmt.Sprintf("%s n'est pas admin", name))
	}
	return c.Send(fmt.Sprintf("%s a été retiré(e) des admins", name))
}

func (b *Bot) authorize(c tele.Context) error {
	command := strings.TrimSpace(c.Message().Payload)
	if command == "" {
		return c.Send("Usage: /authorize <command>")
	}

	chatID := fmt.Sprintf("%d", c.Chat().ID)
	if err := b.db.Authorize(context.Background(), chatID, command); err != nil {
		return errors.Wrap(err, "granting authorization")
	}
	return c.Send(fmt.Sprintf("Ce groupe peut désormais utiliser la commande /%s", command))
}

func (b *Bot) unauthorize(c tele.Context) error {
	command := strings.TrimSpace(c.Message().Payload)
	if command == "" {
		return c.Send("Usage: /unauthorize <command>")
	}

	chatID := fmt.Sprintf("%d", c.Chat().ID)
	if err := b.db.Unauthorize(context.Background(), chatID, command); err != nil {
		return errors.Wrap(err, "revoking authorization")
	}
	return c.Send(fmt.Sprintf("Ce groupe ne peut désormais plus utiliser la commande /%s", command))
}

func (b *Bot) authorizations(c tele.Context) error {
	chatID := fmt.Sprintf("%d", c.Chat().ID)
	granted, err := b.db.ListAuthorizations(context.Background(), chatID)
	if err != nil {
		return errors.Wrap(err, "listing authorizations")
	}
	return c.Send(fmt.Sprintf("Ce groupe peut utiliser les commandes suivantes:\n%s", bulletList(granted)))
}

func (b *Bot) stats(c tele.Context) error {
	members, err := b.db.ListCommittee(context.Background())
	if err != nil {
		return errors.Wrap(err, "listing committee")
	}
	lines := make([]string, 0, len(members))
	for _, m := range members {
		lines = append(lines, fmt.Sprintf("- %s (polls: %d)", m.Name, m.PollCount))
	}
	return c.Send(strings.Join(lines, "\n"))
}

func (b *Bot) committeeAdd(c tele.Context) error {
	names := c.Args()
	if len(names) == 0 {
		return c.Send("Usage: /committeeadd <names...>")
	}
	if err := b.db.AddCommitteeMembers(context.Background(), names); err != nil {
		return errors.Wrap(err, "adding committee members")
	}
	return c.Send("Comité mis à jour !")
}

func (b *Bot) committeeRemove(c tele.Context) error {
	names := c.Args()
	if len(names) == 0 {
		return c.Send("Usage: /committeeremove <names...>")
	}
	if err := b.db.RemoveCommitteeMembers(context.Background(), names); err != nil {
		return errors.Wrap(err, "removing committee members")
	}
	return c.Send("Comité mis à jour !")
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, " - "+item)
	}
	return strings.Join(lines, "\n")
}
