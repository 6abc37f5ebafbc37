package intake

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhillyerd/enmime"

	"matlist/internal"
	"matlist/internal/decoder"
	"matlist/internal/storage"
)

// AttachmentStore drops supported document attachments from fetched mail into
// the input directory, deduplicated by content hash.
type AttachmentStore struct {
	db       *storage.DB
	inputDir string
}

func NewAttachmentStore(db *storage.DB, inputDir string) *AttachmentStore {
	return &AttachmentStore{db: db, inputDir: inputDir}
}

// Store parses the raw message and writes each supported attachment into the
// input directory. Attachments whose content was already seen are skipped.
func (s *AttachmentStore) Store(msg internal.FetchedMailMessage) ([]internal.StoredAttachment, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(msg.Raw))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(s.inputDir, 0o755); err != nil {
		return nil, err
	}

	stored := []internal.StoredAttachment{}
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" || !decoder.Supported(filename) {
			continue
		}

		hashBytes := sha256.Sum256(att.Content)
		hash := hex.EncodeToString(hashBytes[:])

		if s.db != nil {
			seen, err := s.db.HasAttachment(hash)
			if err != nil {
				return stored, err
			}
			if seen {
				continue
			}
		}

		path := filepath.Join(s.inputDir, fmt.Sprintf("%s_%s", hash[:12], sanitizeFilename(filename)))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, att.Content, 0o644); err != nil {
				return stored, err
			}
		}

		record := internal.StoredAttachment{
			Provider:   msg.Provider,
			MessageID:  msg.MessageID,
			Filename:   filename,
			Hash:       hash,
			StoredPath: path,
			ReceivedAt: msg.ReceivedAt,
		}
		if s.db != nil {
			if err := s.db.InsertAttachment(record); err != nil {
				return stored, err
			}
		}
		stored = append(stored, record)
	}
	return stored, nil
}

func sanitizeFilename(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
