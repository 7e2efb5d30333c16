package main

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

var ErrSeedOrder = errors.New("seed zIndex must be strictly increasing")

func defaultSeed() []Email {
	return []Email{
		{
			ID:       "1",
			Sender:   "Alice Cooper",
			Subject:  "Budget Approval Request",
			Preview:  "I need your approval for the budget allocation for the new project. Please review the attached documents and let me know if you have any questions",
			Position: point{2, 2},
			ZIndex:   1,
		},
		{
			ID:       "2",
			Sender:   "Bob Wilson",
			Subject:  "Team Meeting Tomorrow",
			Preview:  "Hi team, just a reminder that we have our weekly meeting tomorrow at 10 AM. Please prepare your updates and join on time",
			IsRead:   true,
			Position: point{2, 10},
			ZIndex:   2,
		},
		{
			ID:        "3",
			Sender:    "Carol Davis",
			Subject:   "Project Update - Q4 Goals",
			Preview:   "Here's the latest update on our Q4 goals. We're making good progress on most fronts, but there are a few areas that need attention",
			IsStarred: true,
			Position:  point{2, 18},
			ZIndex:    3,
		},
		{
			ID:       "4",
			Sender:   "David Miller",
			Subject:  "Client Feedback Summary",
			Preview:  "I've compiled the client feedback from our recent survey. The results are quite positive overall, with some valuable insights for improvement",
			IsRead:   true,
			Position: point{2, 26},
			ZIndex:   4,
		},
		{
			ID:       "5",
			Sender:   "Eva Thompson",
			Subject:  "New Feature Launch",
			Preview:  "Great news! Our new feature is ready for launch. The development team has completed all testing and we're good to go live next week",
			Position: point{2, 34},
			ZIndex:   5,
		},
	}
}

type seedFile struct {
	Emails []struct {
		ID        string `toml:"id"`
		Sender    string `toml:"sender"`
		Subject   string `toml:"subject"`
		Preview   string `toml:"preview"`
		Read      bool   `toml:"read"`
		Starred   bool   `toml:"starred"`
		Minimized bool   `toml:"minimized"`
		X         int    `toml:"x"`
		Y         int    `toml:"y"`
		ZIndex    int    `toml:"z"`
	} `toml:"email"`
}

// loadSeed reads an ordered list of [[email]] tables. An empty path returns
// the built-in seed.
func loadSeed(path string) ([]Email, error) {
	if path == "" {
		return defaultSeed(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var raw seedFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	emails := make([]Email, 0, len(raw.Emails))
	for i, r := range raw.Emails {
		id := r.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		z := r.ZIndex
		if z == 0 {
			z = i + 1
		}
		emails = append(emails, Email{
			ID:          id,
			Sender:      r.Sender,
			Subject:     r.Subject,
			Preview:     r.Preview,
			IsRead:      r.Read,
			IsStarred:   r.Starred,
			IsMinimized: r.Minimized,
			Position:    point{r.X, r.Y},
			ZIndex:      z,
		})
	}
	if err := validateSeed(emails); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return emails, nil
}

func validateSeed(emails []Email) error {
	for i := 1; i < len(emails); i++ {
		if emails[i].ZIndex <= emails[i-1].ZIndex {
			return fmt.Errorf("%w: %q has %d after %d", ErrSeedOrder, emails[i].ID, emails[i].ZIndex, emails[i-1].ZIndex)
		}
	}
	return nil
}
