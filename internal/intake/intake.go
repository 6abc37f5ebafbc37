// Package intake feeds the input directory: filesystem discovery of takeoff
// documents plus a mail channel that pulls document attachments from a
// mailbox.
package intake

import (
	"matlist/internal"
	"matlist/internal/storage"
)

type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}

type FetchService struct {
	connector MailConnector
	store     *AttachmentStore
}

type FetchResult struct {
	Fetched int
	Stored  int
}

func NewFetchService(db *storage.DB, inputDir string, connector MailConnector) *FetchService {
	return &FetchService{
		connector: connector,
		store:     NewAttachmentStore(db, inputDir),
	}
}

func (s *FetchService) FetchAndStore(label string, max int) (FetchResult, error) {
	messages, err := s.connector.FetchInbox(label, max)
	if err != nil {
		return FetchResult{}, err
	}

	result := FetchResult{Fetched: len(messages)}
	for _, msg := range messages {
		stored, err := s.store.Store(msg)
		if err != nil {
			return result, err
		}
		result.Stored += len(stored)
	}
	return result, nil
}
