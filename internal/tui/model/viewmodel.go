package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matheus3301/chatlens/internal/rpc"
	"github.com/matheus3301/chatlens/internal/tui/client"
	"github.com/matheus3301/chatlens/internal/tui/ui"
)

// ViewModel caches daemon state and signals UI refreshes.
type ViewModel struct {
	mu sync.RWMutex

	client       *client.Client
	Status       *rpc.GetStatusResponse
	Participants []string
	Words        *rpc.CountWordResponse
	Top          []rpc.WordCount
	Answer       string
	Flash        *ui.FlashModel

	// apiKey is typed into the assistant view and sent with each request.
	apiKey string

	refreshCh chan struct{}
}

// NewViewModel creates a new view model connected to the daemon client.
func NewViewModel(c *client.Client) *ViewModel {
	return &ViewModel{
		client:    c,
		Flash:     ui.NewFlashModel(),
		refreshCh: make(chan struct{}, 1),
	}
}

// RefreshCh returns the channel that signals UI refresh.
func (vm *ViewModel) RefreshCh() <-chan struct{} {
	return vm.refreshCh
}

func (vm *ViewModel) signalRefresh() {
	select {
	case vm.refreshCh <- struct{}{}:
	default:
	}
}

// LoadStatus fetches daemon status and, when an export is loaded, its
// participants.
func (vm *ViewModel) LoadStatus(ctx context.Context) error {
	resp, err := vm.client.Analyzer.GetStatus(ctx, &rpc.GetStatusRequest{})
	if err != nil {
		return err
	}
	var participants []string
	if resp.Loaded {
		pr, err := vm.client.Analyzer.ListParticipants(ctx, &rpc.ListParticipantsRequest{})
		if err == nil {
			participants = pr.Participants
		}
	}
	vm.mu.Lock()
	vm.Status = resp
	vm.Participants = participants
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// LoadExport reads the file at path and hands it to the daemon.
func (vm *ViewModel) LoadExport(ctx context.Context, path string) (*rpc.LoadExportResponse, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	resp, err := vm.client.Analyzer.LoadExport(ctx, &rpc.LoadExportRequest{
		Name: filepath.Base(path),
		Text: string(data),
	})
	if err != nil {
		return nil, err
	}
	vm.mu.Lock()
	vm.Participants = resp.Participants
	vm.Words = nil
	vm.Top = nil
	vm.Answer = ""
	vm.mu.Unlock()
	vm.Flash.Info(fmt.Sprintf("Loaded %d messages from %s", resp.Messages, resp.Name))
	return resp, vm.LoadStatus(ctx)
}

// CountWord runs a keyword count; an empty sender counts everyone.
func (vm *ViewModel) CountWord(ctx context.Context, term, sender string) error {
	resp, err := vm.client.Analyzer.CountWord(ctx, &rpc.CountWordRequest{Term: term, Sender: sender})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.Words = resp
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// LoadTopWords fetches the most used words.
func (vm *ViewModel) LoadTopWords(ctx context.Context, sender string, limit int) error {
	resp, err := vm.client.Analyzer.TopWords(ctx, &rpc.TopWordsRequest{Sender: sender, Limit: limit})
	if err != nil {
		return err
	}
	vm.mu.Lock()
	vm.Top = resp.Words
	vm.mu.Unlock()
	vm.signalRefresh()
	return nil
}

// Ask sends question to the assistant with the current API key.
func (vm *ViewModel) Ask(ctx context.Context, question string) error {
	resp, err := vm.client.Analyzer.Ask(ctx, &rpc.AskRequest{Question: question, APIKey: vm.APIKey()})
	if err != nil {
		return err
	}
	vm.setAnswer(resp.Answer)
	return nil
}

// Summarize asks the assistant for a summary of the whole export.
func (vm *ViewModel) Summarize(ctx context.Context) error {
	resp, err := vm.client.Analyzer.Summarize(ctx, &rpc.SummarizeRequest{APIKey: vm.APIKey()})
	if err != nil {
		return err
	}
	vm.setAnswer(resp.Summary)
	return nil
}

func (vm *ViewModel) setAnswer(text string) {
	vm.mu.Lock()
	vm.Answer = text
	vm.mu.Unlock()
	vm.signalRefresh()
}

// WatchEvents streams daemon events to fn until ctx is done.
func (vm *ViewModel) WatchEvents(ctx context.Context, namespace string, fn func(*rpc.Event)) error {
	stream, err := vm.client.Analyzer.WatchEvents(ctx, &rpc.WatchEventsRequest{Namespace: namespace})
	if err != nil {
		return err
	}
	for {
		ev, err := stream.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(ev)
	}
}

// SetAPIKey stores the key sent with assistant requests.
func (vm *ViewModel) SetAPIKey(key string) {
	vm.mu.Lock()
	vm.apiKey = key
	vm.mu.Unlock()
}

// APIKey returns the key sent with assistant requests.
func (vm *ViewModel) APIKey() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.apiKey
}

// NeedsKey reports whether neither the daemon nor the user supplied a key.
func (vm *ViewModel) NeedsKey() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.apiKey == "" && (vm.Status == nil || !vm.Status.EnvKey)
}

// GetStatus returns a snapshot of the daemon status.
func (vm *ViewModel) GetStatus() *rpc.GetStatusResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Status
}

// GetParticipants returns a snapshot of the participant list.
func (vm *ViewModel) GetParticipants() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Participants
}

// GetWords returns the last keyword count result.
func (vm *ViewModel) GetWords() *rpc.CountWordResponse {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Words
}

// GetTop returns the last top words result.
func (vm *ViewModel) GetTop() []rpc.WordCount {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Top
}

// GetAnswer returns the last assistant reply.
func (vm *ViewModel) GetAnswer() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.Answer
}
