package rpc

// Stats summarises a loaded export.
type Stats struct {
	TotalMessages int           `json:"total_messages"`
	Participants  int           `json:"participants"`
	FirstMs       int64         `json:"first_ms,omitempty"`
	LastMs        int64         `json:"last_ms,omitempty"`
	DateRange     string        `json:"date_range"`
	PerSender     []SenderTotal `json:"per_sender,omitempty"`
}

// SenderTotal is the number of messages one participant sent.
type SenderTotal struct {
	Sender   string `json:"sender"`
	Messages int    `json:"messages"`
}

type LoadExportRequest struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

type LoadExportResponse struct {
	Name         string   `json:"name"`
	Messages     int      `json:"messages"`
	Participants []string `json:"participants"`
	Stats        Stats    `json:"stats"`
}

type GetStatusRequest struct{}

type GetStatusResponse struct {
	Session     string `json:"session"`
	State       string `json:"state"`
	StateReason string `json:"state_reason,omitempty"`
	UptimeMs    int64  `json:"uptime_ms"`
	Backend     string `json:"backend"`
	Provider    string `json:"provider"`
	// EnvKey reports whether the daemon has a credential of its own, so
	// clients know whether to prompt for one.
	EnvKey   bool   `json:"env_key"`
	Loaded   bool   `json:"loaded"`
	Name     string `json:"name,omitempty"`
	LoadedMs int64  `json:"loaded_ms,omitempty"`
	Stats    *Stats `json:"stats,omitempty"`
}

type ListParticipantsRequest struct{}

type ListParticipantsResponse struct {
	Participants []string `json:"participants"`
}

type CountWordRequest struct {
	Term   string `json:"term"`
	Sender string `json:"sender,omitempty"`
}

type SenderCount struct {
	Sender string `json:"sender"`
	Count  int    `json:"count"`
}

type CountWordResponse struct {
	Term   string        `json:"term"`
	Sender string        `json:"sender,omitempty"`
	Counts []SenderCount `json:"counts"`
	Total  int           `json:"total"`
}

type TopWordsRequest struct {
	Sender string `json:"sender,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type TopWordsResponse struct {
	Words []WordCount `json:"words"`
}

type AskRequest struct {
	Question string `json:"question"`
	APIKey   string `json:"api_key,omitempty"`
}

type AskResponse struct {
	Answer      string `json:"answer"`
	ContextSize int    `json:"context_size"`
}

type SummarizeRequest struct {
	APIKey string `json:"api_key,omitempty"`
}

type SummarizeResponse struct {
	Summary    string `json:"summary"`
	SampleSize int    `json:"sample_size"`
}

type WatchEventsRequest struct {
	// Namespace is a kind prefix such as "corpus."; empty means all.
	Namespace string `json:"namespace,omitempty"`
}

type Event struct {
	ID           string `json:"id"`
	Kind         string `json:"kind"`
	OccurredAtMs int64  `json:"occurred_at_ms"`
	Detail       string `json:"detail,omitempty"`
}
