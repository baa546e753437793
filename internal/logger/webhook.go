package logger

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	webhookBatchSize     = 10
	webhookBatchInterval = time.Second
	webhookMaxContent    = 1900
)

// WebhookMirror batches log lines and posts them to a webhook (e.g. a
// Discord channel). Delivery is best-effort: a failed post drops the batch
// rather than blocking or failing the logger.
type WebhookMirror struct {
	url    string
	client *http.Client

	mu    sync.Mutex
	lines []string
	timer *time.Timer
}

func NewWebhookMirror(url string) *WebhookMirror {
	return &WebhookMirror{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Write buffers one or more log lines. A batch is flushed once it reaches
// webhookBatchSize lines or webhookBatchInterval after its first line.
func (m *WebhookMirror) Write(p []byte) (int, error) {
	m.mu.Lock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if line != "" {
			m.lines = append(m.lines, line)
		}
	}

	if len(m.lines) >= webhookBatchSize {
		batch := m.takeLocked()
		m.mu.Unlock()
		go m.send(batch)
		return len(p), nil
	}

	if m.timer == nil {
		m.timer = time.AfterFunc(webhookBatchInterval, m.flush)
	}
	m.mu.Unlock()
	return len(p), nil
}

// Close flushes any buffered lines synchronously.
func (m *WebhookMirror) Close() {
	m.mu.Lock()
	batch := m.takeLocked()
	m.mu.Unlock()
	m.send(batch)
}

func (m *WebhookMirror) flush() {
	m.mu.Lock()
	batch := m.takeLocked()
	m.mu.Unlock()
	m.send(batch)
}

// takeLocked drains the buffer and stops the pending timer. Callers must
// hold mu.
func (m *WebhookMirror) takeLocked() []string {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	batch := m.lines
	m.lines = nil
	return batch
}

func (m *WebhookMirror) send(batch []string) {
	if len(batch) == 0 || m.url == "" {
		return
	}

	content := strings.Join(batch, "\n")
	if len(content) > webhookMaxContent {
		cut := webhookMaxContent
		// Never split a multi-byte rune at the cap.
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
	}

	body, err := json.Marshal(map[string]string{
		"content": "```\n" + content + "\n```",
	})
	if err != nil {
		return
	}

	resp, err := m.client.Post(m.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	_ = resp.Body.Close()
}
