package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/okarpov/studykeeper/internal/common"
	"github.com/okarpov/studykeeper/internal/content"
	"github.com/okarpov/studykeeper/internal/progress"
	"github.com/okarpov/studykeeper/internal/session"
	"github.com/okarpov/studykeeper/internal/store"
)

// describe maps internal errors to actionable user-facing text.
func describe(err error) string {
	switch {
	case errors.Is(err, store.ErrUnavailable):
		return "The cloud link is flaky right now. Please try again."
	case errors.Is(err, store.ErrPermissionDenied):
		return "The remote store rejected our credentials. Check the service-account configuration."
	case errors.Is(err, common.ErrorDuplicateUser):
		return "That identifier is already registered."
	case errors.Is(err, common.ErrorSecretTooShort):
		return fmt.Sprintf("Secret is too short: use at least %d characters.", common.MinSecretLength)
	case errors.Is(err, common.ErrorSecretMismatch):
		return "Secret confirmation does not match."
	case errors.Is(err, common.ErrorEmptyUserID):
		return "Identifier must not be empty."
	case errors.Is(err, common.ErrorInvalidCredentials):
		return "Invalid identifier or secret."
	case errors.Is(err, common.ErrorInvalidSessionState):
		return "That command is not available right now. Type 'help'."
	default:
		return err.Error()
	}
}

func (a *App) Register(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "New identifier", a.out)
	if err != nil {
		return err
	}
	secret, err := getSecret("Choose a secret", a.out)
	if err != nil {
		return err
	}
	confirm, err := getSecret("Confirm the secret", a.out)
	if err != nil {
		return err
	}

	if err := a.users.Register(ctx, userID, secret, confirm); err != nil {
		printlnFn(describe(err))
		return err
	}
	printlnFn("Registered. You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	userID, err := getSimpleText(a.reader, "Identifier", a.out)
	if err != nil {
		return err
	}
	secret, err := getSecret("Secret", a.out)
	if err != nil {
		return err
	}

	if err := a.manager.Login(ctx, a.sess, userID, secret); err != nil {
		printlnFn(describe(err))
		return err
	}
	if !a.sess.Synced {
		printlnFn("Logged in, but progress could not be pulled; it will catch up on the next sync.")
	}
	printlnFn(fmt.Sprintf("Welcome, %s. Type 'start' to enter the work area.", userID))
	return nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.manager.Acknowledge(a.sess); err != nil {
		printlnFn(describe(err))
		return err
	}
	printlnFn("Link established. Type 'subjects' to see what there is to review.")
	return nil
}

func (a *App) Subjects(ctx context.Context) error {
	for _, s := range content.Subjects() {
		printlnFn(fmt.Sprintf("  %-10s %s", s.ID, s.Name))
	}
	return nil
}

func (a *App) List(ctx context.Context) error {
	subjectID, err := getSimpleText(a.reader, "Subject id", a.out)
	if err != nil {
		return err
	}
	chapter, err := getSimpleText(a.reader, "Chapter filter (empty for all)", a.out)
	if err != nil {
		return err
	}

	items, err := a.source.Load(subjectID)
	if err != nil {
		printlnFn(describe(err))
		return err
	}
	if len(items) == 0 {
		printlnFn("No items for that subject yet. Use 'add' to create some.")
		return nil
	}

	for _, item := range items {
		if chapter != "" && item.ChapterOrDefault() != chapter {
			continue
		}
		key := progress.Key(subjectID, item.Title)
		mastered := " "
		if _, ok := a.sess.Sets.Mastered[key]; ok {
			mastered = "x"
		}
		difficult := " "
		if _, ok := a.sess.Sets.Difficult[key]; ok {
			difficult = "*"
		}
		printlnFn(fmt.Sprintf("[%s](%s) %s | %s", mastered, difficult, item.ChapterOrDefault(), item.Title))
	}
	return nil
}

func (a *App) toggle(ctx context.Context, apply func(ctx context.Context, subjectID, title string) error, done string) error {
	subjectID, err := getSimpleText(a.reader, "Subject id", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Item title", a.out)
	if err != nil {
		return err
	}

	if err := apply(ctx, subjectID, title); err != nil {
		printlnFn(describe(err))
		return err
	}
	printlnFn(done)
	return nil
}

func (a *App) Master(ctx context.Context) error {
	return a.toggle(ctx, func(ctx context.Context, sid, title string) error {
		return a.manager.SetMastered(ctx, a.sess, sid, title, true)
	}, "Marked as mastered.")
}

func (a *App) Unmaster(ctx context.Context) error {
	return a.toggle(ctx, func(ctx context.Context, sid, title string) error {
		return a.manager.SetMastered(ctx, a.sess, sid, title, false)
	}, "Mastery mark removed.")
}

func (a *App) Star(ctx context.Context) error {
	return a.toggle(ctx, func(ctx context.Context, sid, title string) error {
		return a.manager.SetDifficult(ctx, a.sess, sid, title, true)
	}, "Marked as difficult.")
}

func (a *App) Unstar(ctx context.Context) error {
	return a.toggle(ctx, func(ctx context.Context, sid, title string) error {
		return a.manager.SetDifficult(ctx, a.sess, sid, title, false)
	}, "Difficulty mark removed.")
}

func (a *App) Sync(ctx context.Context) error {
	if err := a.manager.Refresh(ctx, a.sess); err != nil {
		printlnFn(describe(err))
		return err
	}
	printlnFn(fmt.Sprintf("Synced: %d mastered, %d difficult.",
		len(a.sess.Sets.Mastered), len(a.sess.Sets.Difficult)))
	return nil
}

func (a *App) Dashboard(ctx context.Context) error {
	if count, err := a.stats.UserCount(ctx); err != nil {
		printlnFn(describe(err))
	} else {
		printlnFn(fmt.Sprintf("Registered users: %d", count))
	}

	for _, s := range content.Subjects() {
		items, err := a.source.Load(s.ID)
		if err != nil {
			printlnFn(describe(err))
			continue
		}
		mastered := content.MasteredCount(s.ID, items, a.sess.Sets.Mastered)
		printlnFn(fmt.Sprintf("  %-24s %d/%d", s.Name, mastered, len(items)))
	}
	return nil
}

func (a *App) Add(ctx context.Context) error {
	if a.sess.State != session.StateActive {
		printlnFn(describe(common.ErrorInvalidSessionState))
		return common.ErrorInvalidSessionState
	}

	subjectID, err := getSimpleText(a.reader, "Subject id", a.out)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	chapter, err := getSimpleText(a.reader, "Chapter (empty for general)", a.out)
	if err != nil {
		return err
	}
	body, err := getSimpleText(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	formula, err := getSimpleText(a.reader, "Formula (optional)", a.out)
	if err != nil {
		return err
	}
	image, err := getSimpleText(a.reader, "Image URL (optional)", a.out)
	if err != nil {
		return err
	}

	if title == "" || body == "" {
		printlnFn("Title and content are required.")
		return nil
	}

	item := content.Item{Title: title, Chapter: chapter, Content: body, Formula: formula, Image: image}
	if err := a.source.Append(subjectID, item); err != nil {
		printlnFn(describe(err))
		return err
	}
	printlnFn("Saved.")
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.manager.Logout(ctx, a.sess)
	printlnFn("Disconnected. Session state wiped.")
	return nil
}
