package websocket

import (
	"log"
	"net/http"
	"time"

	"claritycoach/middlewares"
	"claritycoach/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only
	// trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	writeTimeout = 10 * time.Second
	pollInterval = 500 * time.Millisecond
)

// progressFrame is what the browser renders while a workflow call is in
// flight: the machine's phase plus the rotating loading tip.
type progressFrame struct {
	Phase   services.Phase `json:"phase"`
	Loading bool           `json:"loading"`
	Tip     string         `json:"tip,omitempty"`
}

// ProgressHandler streams workflow phase and loading-tip updates for the
// caller's session over a websocket. The connection closes when the
// client goes away; the subscription is released with it.
func ProgressHandler(c *gin.Context) {
	sess := middlewares.CurrentSession(c)
	if sess == nil {
		c.JSON(400, gin.H{"error": "Session required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	tips, cancel := sess.Workflow.Ticker().Subscribe()
	defer cancel()

	// Reader exists only to notice the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	poll := time.NewTicker(pollInterval)
	defer poll.Stop()

	var last progressFrame
	send := func(frame progressFrame) bool {
		if frame == last {
			return true
		}
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(frame); err != nil {
			return false
		}
		last = frame
		return true
	}

	if !send(currentFrame(sess)) {
		return
	}
	for {
		select {
		case <-done:
			return
		case tip := <-tips:
			frame := currentFrame(sess)
			frame.Tip = tip
			if !send(frame) {
				return
			}
		case <-poll.C:
			if !send(currentFrame(sess)) {
				return
			}
		}
	}
}

func currentFrame(sess *services.Session) progressFrame {
	state := sess.Workflow.State()
	return progressFrame{
		Phase:   state.Phase,
		Loading: state.Loading,
		Tip:     state.LoadingTip,
	}
}
