package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/lxzan/gws"

	"github.com/soar/mapview/internal/rasterdraw"
	"github.com/soar/mapview/internal/session"
)

func newUpgrader(handler gws.Event) *gws.Upgrader {
	return gws.NewUpgrader(handler, &gws.ServerOption{
		ParallelEnabled:   true,
		Recovery:          gws.Recovery,
		PermessageDeflate: gws.PermessageDeflate{Enabled: true},
	})
}

func handleWebSocket(upgrader *gws.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		socket, err := upgrader.Upgrade(w, r)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		go socket.ReadLoop()
	}
}

func handleSnapshotSVG(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := sess.FrameSVG()
		if err != nil {
			httpError(w, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Header().Set("Cache-Control", "no-store")
		w.Write(doc)
	}
}

func handleSnapshotImage(sess *session.Session, f rasterdraw.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := sess.FrameImage(f)
		if err != nil {
			httpError(w, err, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", f.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		w.Write(data)
	}
}

func handleState(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sess.Snapshot())
	}
}

func handlePresets(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, sess.Presets())
	}
}

// handleCommand applies a JSON command and answers with the resulting state.
func handleCommand(sess *session.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cmd session.Command
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&cmd); err != nil {
			httpError(w, err, http.StatusBadRequest)
			return
		}
		if err := sess.Apply(cmd); err != nil {
			status := http.StatusUnprocessableEntity
			if errors.Is(err, session.ErrUnknownCommand) {
				status = http.StatusBadRequest
			}
			httpError(w, err, status)
			return
		}
		writeJSON(w, sess.Snapshot())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

func httpError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
