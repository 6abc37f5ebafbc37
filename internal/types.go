package internal

type DocumentKind string

const (
	DocPDF  DocumentKind = "pdf"
	DocHTML DocumentKind = "html"
	DocXLSX DocumentKind = "xlsx"
)

// Page is the per-page contract supplied by a document decoder: an optional
// table grid and an optional plain-text rendering. Either may be empty.
type Page struct {
	Table [][]string
	Text  string
}

type Document struct {
	Source string
	Path   string
	Kind   DocumentKind
	Pages  []Page
}

// RawRecord is one observed line item, created during extraction and never
// mutated afterwards.
type RawRecord struct {
	Source      string
	Quantity    float64
	Units       string
	Size        string
	Description string
	ItemKey     string
}

// MasterRecord is one reconciled row per distinct item key across a run, with
// Quantity summed over every contributing raw record.
type MasterRecord struct {
	Quantity    float64
	Units       string
	Size        string
	Description string
	ItemKey     string
}

type DocumentResult struct {
	Source  string
	Path    string
	Pages   int
	Records []RawRecord
	Skipped int
	Err     string
}

type RunRow struct {
	ID          int64
	TraceID     string
	InputDir    string
	OutputPath  string
	DocCount    int
	RawCount    int
	MasterCount int
	Skipped     int
	CreatedAt   string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

type StoredAttachment struct {
	Provider   string
	MessageID  string
	Filename   string
	Hash       string
	StoredPath string
	ReceivedAt string
}
