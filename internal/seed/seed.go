// Package seed populates the in-memory stores with demo content for
// development. Nothing here persists; seeding runs on every start when
// enabled.
package seed

import (
	"fmt"
	"log/slog"
	"time"

	"socialhub/internal/middleware"
	"socialhub/internal/models"
	"socialhub/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
)

// DemoPassword is the well-known password shared by the demo accounts,
// matching the reference dataset.
const DemoPassword = "123"

// DemoAccounts are the usernames the reference app ships with.
var DemoAccounts = []string{"alice", "bob", "charlie"}

// Options configuration for the seeder
type Options struct {
	// PostsPerAccount is how many demo posts each demo account authors.
	PostsPerAccount int
}

// Run registers the demo accounts and generates demo posts with a sprinkling
// of likes and comments. Re-running against already-seeded stores is safe:
// existing accounts are left alone.
func Run(accounts repository.AccountDirectory, feed repository.FeedStore, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())

	for _, username := range DemoAccounts {
		if _, err := accounts.Signup(username, DemoPassword); err != nil {
			if models.ErrorCode(err) == models.CodeDuplicateUsername {
				continue
			}
			return fmt.Errorf("seeding account %s: %w", username, err)
		}
	}

	for i := 0; i < opts.PostsPerAccount; i++ {
		for _, author := range DemoAccounts {
			content := gofakeit.Sentence(gofakeit.Number(5, 12))
			imageRef := ""
			if gofakeit.Bool() {
				imageRef = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
			}

			post, err := feed.Create(author, content, imageRef)
			if err != nil {
				return fmt.Errorf("seeding post for %s: %w", author, err)
			}

			for _, username := range DemoAccounts {
				if username != author && gofakeit.Bool() {
					post.ToggleLike(username)
				}
			}
			if gofakeit.Bool() {
				commenter := DemoAccounts[gofakeit.Number(0, len(DemoAccounts)-1)]
				post.AddComment(commenter, gofakeit.HipsterSentence(gofakeit.Number(3, 8)))
			}
		}
	}

	middleware.Logger.Info("seeded demo data",
		slog.Int("accounts", accounts.Count()),
		slog.Int("posts", feed.Len()),
	)
	return nil
}
