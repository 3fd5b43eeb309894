package answer

import (
	"strings"

	"github.com/matheus3301/chatlens/internal/export"
)

const askInstructions = `You are a friendly assistant helping someone explore an exported group chat.
Answer the question using only the chat messages below. Mention people by name
and quote their messages when it helps. If the messages do not contain the
answer, say so plainly instead of guessing. Keep a relaxed, conversational tone.`

const summaryInstructions = `You are a friendly assistant helping someone explore an exported group chat.
Using the sample of messages below, write a short, light-hearted summary covering:
1. The overall vibe of the group.
2. Who seems most active or sets the tone.
3. Recurring topics or running jokes.
Base every point on the messages shown.`

// writeTranscript renders msgs as "sender: body" lines. Timestamps are
// left out.
func writeTranscript(b *strings.Builder, msgs []export.Message) {
	for _, m := range msgs {
		b.WriteString(m.Sender)
		b.WriteString(": ")
		b.WriteString(m.Body)
		b.WriteByte('\n')
	}
}

// BuildPrompt composes the question prompt from the retrieved context.
func BuildPrompt(retrieved []export.Message, question string) string {
	var b strings.Builder
	b.WriteString(askInstructions)
	b.WriteString("\n\nCHAT MESSAGES:\n")
	writeTranscript(&b, retrieved)
	b.WriteString("\nQUESTION: ")
	b.WriteString(strings.TrimSpace(question))
	b.WriteString("\n\nANSWER:")
	return b.String()
}

// BuildSummaryPrompt composes the summary prompt from a message sample.
func BuildSummaryPrompt(sample []export.Message) string {
	var b strings.Builder
	b.WriteString(summaryInstructions)
	b.WriteString("\n\nCHAT SAMPLE:\n")
	writeTranscript(&b, sample)
	return b.String()
}

// Sample picks up to n messages spread evenly over seq, first message
// included, in export order.
func Sample(seq export.Sequence, n int) []export.Message {
	total := seq.Len()
	if n <= 0 || total == 0 {
		return nil
	}
	if total <= n {
		return seq.Messages()
	}
	out := make([]export.Message, n)
	for i := range n {
		out[i] = seq.At(i * total / n)
	}
	return out
}
