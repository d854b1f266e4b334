package notifier

import (
	"fmt"

	"github.com/mkleiven/stevnekart/internal/storage"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct{}

// NewDryRunNotifier creates a new dry-run notifier
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

// Notify prints the posts that would be published
func (n *DryRunNotifier) Notify(stevner []*storage.StoredStevne) error {
	for i, st := range stevner {
		post := formatPost(st)
		fmt.Printf("--- Post %d/%d ---\n", i+1, len(stevner))
		fmt.Println(post)
		fmt.Printf("\n(Length: %d characters)\n\n", len(post))
	}
	return nil
}
