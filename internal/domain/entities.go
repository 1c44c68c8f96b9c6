package domain

// Document is the raw text extracted from one CV file. It is never stored
// directly; only its chunks are.
type Document struct {
	Filename  string
	Candidate string
	Text      string
}

// Payload is the metadata stored alongside every vector record.
type Payload struct {
	Text        string `json:"text"`
	Candidate   string `json:"candidate"`
	Filename    string `json:"filename"`
	ChunkIndex  int    `json:"chunk_index"`
	TotalChunks int    `json:"total_chunks"`
}

// Field returns the named payload field as a string. Only string-valued
// fields are addressable; deletion filters key on these.
func (p Payload) Field(name string) (string, bool) {
	switch name {
	case "text":
		return p.Text, true
	case "candidate":
		return p.Candidate, true
	case "filename":
		return p.Filename, true
	}
	return "", false
}

// Record is one vector plus payload as written to the vector store.
type Record struct {
	ID      string
	Vector  []float32
	Payload Payload
}

// SearchResult is one raw nearest-neighbor match from the vector store.
type SearchResult struct {
	Payload Payload
	Score   float32
}

// Hit is a retrieved chunk with its similarity score, as surfaced to the
// caller for answering and citation display.
type Hit struct {
	Text       string  `json:"text"`
	Candidate  string  `json:"candidate"`
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index"`
	Score      float64 `json:"score"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in the session conversation history.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Answer is the orchestrator result: generated text plus the hits it was
// grounded on.
type Answer struct {
	Text string
	Hits []Hit
}
