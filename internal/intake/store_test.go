package intake

import (
	"os"
	"strings"
	"testing"

	"matlist/internal"
)

const sampleMail = "From: estimator@example.com\r\n" +
	"To: takeoff@example.com\r\n" +
	"Subject: Floor 2 takeoff\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=\"b1\"\r\n" +
	"\r\n" +
	"--b1\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"See attached.\r\n" +
	"--b1\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"Floor 2 Takeoff.pdf\"\r\n" +
	"Content-Transfer-Encoding: base64\r\n" +
	"\r\n" +
	"aGVsbG8=\r\n" +
	"--b1\r\n" +
	"Content-Type: text/csv\r\n" +
	"Content-Disposition: attachment; filename=\"ignore.csv\"\r\n" +
	"\r\n" +
	"a,b\r\n" +
	"--b1--\r\n"

func TestAttachmentStore(t *testing.T) {
	inputDir := t.TempDir()
	store := NewAttachmentStore(nil, inputDir)

	msg := internal.FetchedMailMessage{
		Provider:  "imap",
		MessageID: "<m1@example.com>",
		Raw:       []byte(sampleMail),
	}
	stored, err := store.Store(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored=%d: %+v", len(stored), stored)
	}

	att := stored[0]
	if att.Filename != "Floor 2 Takeoff.pdf" || att.Hash == "" {
		t.Fatalf("attachment: %+v", att)
	}
	if !strings.HasSuffix(att.StoredPath, "_Floor_2_Takeoff.pdf") {
		t.Fatalf("stored path: %q", att.StoredPath)
	}
	blob, err := os.ReadFile(att.StoredPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != "hello" {
		t.Fatalf("content: %q", blob)
	}
}
