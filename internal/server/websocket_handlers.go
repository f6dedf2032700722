package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AnnotationRequest asks a connected annotator to resolve a
// needs-annotation token (spec §4.4's "needs-annotation marker
// carrying (o, K, bin)").
type AnnotationRequest struct {
	Type       string   `json:"type"`
	RequestID  string   `json:"request_id"`
	Original   string   `json:"original"`
	Bin        int      `json:"bin"`
	Candidates []string `json:"candidates"`
}

// AnnotationResponse carries the annotator's decision for one token.
type AnnotationResponse struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Selection string `json:"selection"`
	Error     string `json:"error,omitempty"`
}

// annotateWebSocketHandler upgrades to a websocket and relays
// needs-annotation requests from the Corrector to a human annotator
// (spec §9.4 "/ws/annotate"), grounded on the teacher's
// ocrWebSocketHandler connection lifecycle (a read deadline that each
// client pong extends, connection metrics, close on return). The server
// sends no pings of its own.
func (s *Server) annotateWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("annotator websocket connected", "remote_addr", r.RemoteAddr)

	s.runAnnotatorSession(conn)
}

// runAnnotatorSession wires this connection's live human decisions into
// the Corrector's AnnotatorFunc for the lifetime of the connection:
// every call sends an AnnotationRequest and blocks on the matching
// AnnotationResponse.
func (s *Server) runAnnotatorSession(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
		return nil
	})

	pending := make(chan AnnotationResponse)
	done := make(chan struct{})
	go s.pumpIncoming(conn, pending, done)

	s.corrector.Annotate = func(original string, bin int, candidates []string) string {
		requestID := strconv.FormatInt(time.Now().UnixNano(), 10)
		req := AnnotationRequest{
			Type:       "annotate_request",
			RequestID:  requestID,
			Original:   original,
			Bin:        bin,
			Candidates: candidates,
		}
		if err := s.sendJSON(conn, req); err != nil {
			return original
		}
		for {
			select {
			case resp := <-pending:
				if resp.RequestID == requestID {
					return resp.Selection
				}
			case <-done:
				return original
			}
		}
	}

	<-done
}

func (s *Server) pumpIncoming(conn *websocket.Conn, pending chan<- AnnotationResponse, done chan<- struct{}) {
	defer close(done)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("annotator websocket error", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		websocketMessagesTotal.WithLabelValues("received").Inc()

		var resp AnnotationResponse
		if err := json.Unmarshal(data, &resp); err != nil {
			continue
		}
		pending <- resp
	}
}

func (s *Server) sendJSON(conn *websocket.Conn, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
	return nil
}
