// Package notifier announces newly published stevner.
package notifier

import (
	"github.com/mkleiven/stevnekart/internal/storage"
)

// Notifier defines the interface for posting stevne announcements
type Notifier interface {
	// Notify posts announcements for the given newly discovered stevner
	Notify(stevner []*storage.StoredStevne) error
}
