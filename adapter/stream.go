package adapter

import (
	"encoding/json"
	"sync"

	"github.com/filswan/go-mcs-sdk/mcs/api/common/logs"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nunet/go-nunet/constants"
	"github.com/nunet/go-nunet/models"
)

type statusMessage struct {
	Message fundingMessage `json:"message"`
	Action  string         `json:"action"`
}

type fundingMessage struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionType   string `json:"transaction_type"`
	TxHash            string `json:"tx_hash"`
}

// JobStream is the status channel for one submitted job. Events are
// delivered in the order received, at most one in flight, paced by the
// consumer. A termination signal is sent on a fresh connection exactly once
// on every exit path: completion, cancellation via Stop, or failure.
type JobStream struct {
	conn     *websocket.Conn
	endpoint string
	id       string

	events   chan models.StatusEvent
	stopCh   chan struct{}
	stopOnce sync.Once
	termOnce sync.Once

	mu  sync.Mutex
	err error
}

// Job submits the job referenced by the payment transaction and opens its
// status stream. The stream owns the connection; consumers must drain
// Events and defer Stop.
func (a *NuNetAdapter) Job(txHash string) (*JobStream, error) {
	endpoint := a.wsURL(constants.DEPLOY_PATH)
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, &ChannelError{Op: "dial", Err: err}
	}

	stream := &JobStream{
		conn:     conn,
		endpoint: endpoint,
		id:       uuid.NewString(),
		events:   make(chan models.StatusEvent),
		stopCh:   make(chan struct{}),
	}

	confirmation := statusMessage{
		Message: fundingMessage{
			TransactionStatus: constants.TxStatusSuccess,
			TransactionType:   constants.TxTypeFund,
			TxHash:            txHash,
		},
		Action: constants.ActionSendStatus,
	}
	if err := conn.WriteJSON(confirmation); err != nil {
		stream.terminate()
		conn.Close()
		close(stream.events)
		return nil, &ChannelError{Op: "send funding confirmation", Err: err}
	}

	logs.GetLogger().Infof("job stream %s opened, tx: %s", stream.id, txHash)
	go stream.pump()
	return stream, nil
}

// Events returns the ordered event stream. The channel closes after the
// job-completed event, after Stop, or on error; check Err afterwards.
func (s *JobStream) Events() <-chan models.StatusEvent {
	return s.events
}

// Err reports the primary stream error once Events has closed. It is nil on
// clean completion and on plain cancellation.
func (s *JobStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Stop cancels the stream. Safe to call at any time and after completion;
// the termination signal is still sent exactly once.
func (s *JobStream) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		// unblocks a pending read
		s.conn.Close()
	})
}

func (s *JobStream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

func (s *JobStream) pump() {
	defer func() {
		s.terminate()
		s.conn.Close()
		close(s.events)
	}()

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			select {
			case <-s.stopCh:
				// cancelled by the consumer, not an error
			default:
				s.setErr(&ChannelError{Op: "read", Err: err})
			}
			return
		}

		var action models.Action
		if err := json.Unmarshal(data, &action); err != nil {
			s.setErr(&ParseError{What: "status message", Err: err})
			return
		}

		event := models.StatusEvent{Kind: action.Action, Payload: action.Payload()}
		select {
		case s.events <- event:
		case <-s.stopCh:
			return
		}

		if action.Action == constants.ActionJobCompleted {
			logs.GetLogger().Infof("job stream %s completed", s.id)
			return
		}
	}
}

// terminate sends the terminate-job signal over a fresh connection. It never
// reuses the streaming connection, which may already be broken. Best effort:
// failures are logged and never mask the primary error.
func (s *JobStream) terminate() {
	s.termOnce.Do(func() {
		if err := sendTermination(s.endpoint); err != nil {
			logs.GetLogger().Errorf("job stream %s: %v", s.id, err)
		}
	})
}

func sendTermination(endpoint string) error {
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return &ChannelError{Op: "termination dial", Err: err}
	}
	defer conn.Close()

	message := map[string]string{"action": constants.ActionTerminateJob}
	if err := conn.WriteJSON(message); err != nil {
		return &ChannelError{Op: "send terminate-job", Err: err}
	}
	return nil
}
