package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/mkleiven/stevnekart/internal/storage"
)

// TwitterNotifier posts new stevner to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per newly discovered stevne
func (n *TwitterNotifier) Notify(stevner []*storage.StoredStevne) error {
	for i, st := range stevner {
		post := formatPost(st)

		_, _, err := n.client.Statuses.Update(post, nil)
		if err != nil {
			return fmt.Errorf("failed to post for stevne %s: %w", st.Event.ID, err)
		}

		// Rate limiting: wait between posts
		if i < len(stevner)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatPost formats a newly discovered stevne as a post
func formatPost(st *storage.StoredStevne) string {
	post := "🎯 Nytt stevne!\n\n"
	post += fmt.Sprintf("📍 %s\n", st.BaneName)
	post += fmt.Sprintf("🏆 %s\n", st.Event.Name)

	if st.Event.Date != "" {
		post += fmt.Sprintf("📅 %s\n", st.Event.Date)
	}
	if st.Event.MaxAttendees > 0 {
		post += fmt.Sprintf("👥 %d/%d påmeldt\n", st.Event.Attendees, st.Event.MaxAttendees)
	}
	if st.Event.RsvpOpen {
		post += "\nPåmeldingen er åpen!"
	}

	return post
}
