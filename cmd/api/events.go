package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/decomontenegro/truelabel-sub001/internal/domain"
	"github.com/decomontenegro/truelabel-sub001/internal/events"
)

const heartbeatInterval = 30 * time.Second

// eventsStreamHandler godoc
//
//	@Summary		Queue event stream
//	@Description	Server-sent events for queue changes. Admins receive every event, other users only events for entries they requested or are assigned to. EventSource clients may pass the token as access_token.
//	@Tags			validations
//	@Produce		text/event-stream
//	@Success		200	{object}	domain.QueueEvent
//	@Failure		401	{object}	map[string]string
//	@Failure		503	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/validations/events [get]
func (app *application) eventsStreamHandler(w http.ResponseWriter, r *http.Request) {
	actor := getActor(r)

	stream, cleanup, err := app.hub.Subscribe(r.Context(), events.ScopeFor(actor))
	if err != nil {
		if errors.Is(err, events.ErrTooManyClients) {
			app.serviceUnavailableResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}
	defer cleanup()

	// the server write timeout would otherwise cut the stream
	rc := http.NewResponseController(w)
	_ = rc.SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err := writeSSE(w, "connected", "", map[string]string{"actorId": actor.ID, "role": string(actor.Role)}); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		app.logger.Warnw("event stream does not support flushing", "error", err)
		return
	}

	app.logger.Infow("event stream opened", "actor_id", actor.ID, "role", actor.Role)
	defer app.logger.Infow("event stream closed", "actor_id", actor.ID)

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-stream:
			if !ok {
				return
			}
			if err := writeQueueEvent(w, event); err != nil {
				return
			}
		case <-ticker.C:
			if _, err := io.WriteString(w, ": heartbeat\n\n"); err != nil {
				return
			}
		case <-r.Context().Done():
			return
		}

		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func writeQueueEvent(w io.Writer, event domain.QueueEvent) error {
	return writeSSE(w, event.EventType, event.ID, event)
}

func writeSSE(w io.Writer, eventType, id string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if id != "" {
		if _, err := fmt.Fprintf(w, "id: %s\n", id); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", eventType, payload)
	return err
}
