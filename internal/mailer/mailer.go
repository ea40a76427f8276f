// Package mailer posts transactional mail jobs to the external mail
// service. Delivery is fire-and-forget; failures are logged, never
// surfaced to the request path.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Message struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}

type Mailer struct {
	serviceURL string
	http       *http.Client
	logger     zerolog.Logger
}

func NewMailer(serviceURL string, log zerolog.Logger) *Mailer {
	return &Mailer{
		serviceURL: serviceURL,
		http:       &http.Client{Timeout: 10 * time.Second},
		logger:     log.With().Str("component", "mailer").Logger(),
	}
}

// Send dispatches the message in the background. A zero serviceURL
// disables mail entirely, which is the default for local development.
func (m *Mailer) Send(msg Message) {
	if m.serviceURL == "" {
		return
	}
	go m.post(msg)
}

func (m *Mailer) post(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	body, err := json.Marshal(msg)
	if err != nil {
		m.logger.Error().Err(err).Str("template", msg.Template).Msg("marshal mail message")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.serviceURL+"/send", bytes.NewReader(body))
	if err != nil {
		m.logger.Error().Err(err).Msg("build mail request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		m.logger.Warn().Err(err).Str("template", msg.Template).Msg("mail service unreachable")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		m.logger.Warn().Int("status", resp.StatusCode).Str("template", msg.Template).Msg("mail service rejected message")
	}
}
