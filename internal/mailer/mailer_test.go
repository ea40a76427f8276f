package mailer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPostsMessage(t *testing.T) {
	received := make(chan Message, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var msg Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))
		received <- msg
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewMailer(srv.URL, zerolog.Nop())
	m.Send(Message{
		To:       "student@example.com",
		Template: "payment_confirmed",
		Data:     map[string]any{"order_id": "abc"},
	})

	select {
	case msg := <-received:
		assert.Equal(t, "student@example.com", msg.To)
		assert.Equal(t, "payment_confirmed", msg.Template)
		assert.Equal(t, "abc", msg.Data["order_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("mail service never received the message")
	}
}

func TestSendDisabledWithoutServiceURL(t *testing.T) {
	hit := make(chan struct{}, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit <- struct{}{}
	}))
	defer srv.Close()

	m := NewMailer("", zerolog.Nop())
	m.Send(Message{To: "student@example.com", Template: "welcome"})

	select {
	case <-hit:
		t.Fatal("mail was sent despite an empty service URL")
	case <-time.After(100 * time.Millisecond):
	}
}
