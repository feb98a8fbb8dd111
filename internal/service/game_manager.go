package service

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/chesscore/chess-server/internal/engine"
	"github.com/chesscore/chess-server/internal/model"
	"github.com/chesscore/chess-server/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

var ErrGameNotFound = errors.New("game not found")

// MoveRequest is a move as a front end submits it: two square labels (or both
// concatenated in From, e.g. "e2e4", with To empty) plus an optional promotion
// choice consumed only when the move promotes a pawn.
type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion"`
}

// gameSession is one live game against a computer opponent together with the
// websocket connections observing it.
type gameSession struct {
	mu       sync.Mutex
	game     *model.Game
	human    *model.Player
	machine  *model.Player
	opponent engine.Player

	connsMu sync.RWMutex
	conns   map[string]*websocket.Conn
}

// GameManager owns every live game, keyed by uuid. Each session is
// independent: no state is shared between games.
type GameManager struct {
	mu    sync.RWMutex
	games map[string]*gameSession
}

func NewGameManager() *GameManager {
	return &GameManager{games: make(map[string]*gameSession)}
}

// CreateGame starts a new game for playerID against a computer opponent of
// the given strength level, playing humanColor. It returns the game's id.
func (gm *GameManager) CreateGame(playerID string, level int, humanColor model.Color) (string, error) {
	human := &model.Player{ID: playerID, Name: "Human", Color: humanColor}
	opponent := engine.ForLevel(humanColor.Opponent(), level, nil)
	machine := &model.Player{ID: "computer", Name: opponent.Name(), Color: opponent.Color()}

	white, black := human, machine
	if humanColor == model.Black {
		white, black = machine, human
	}
	game, err := model.NewGame(white, black)
	if err != nil {
		return "", fmt.Errorf("failed to set up game: %w", err)
	}

	sess := &gameSession{
		game:     game,
		human:    human,
		machine:  machine,
		opponent: opponent,
		conns:    make(map[string]*websocket.Conn),
	}
	game.Subscribe(sess.broadcastEvent)

	gameID := uuid.New().String()
	gm.mu.Lock()
	gm.games[gameID] = sess
	gm.mu.Unlock()

	// A computer playing white opens immediately.
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.playMachineTurn(); err != nil {
		return "", err
	}
	return gameID, nil
}

func (gm *GameManager) session(gameID string) (*gameSession, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	sess, ok := gm.games[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	return sess, nil
}

// GetSnapshot returns the serializable state of a game.
func (gm *GameManager) GetSnapshot(gameID string) (model.StateSnapshot, error) {
	sess, err := gm.session(gameID)
	if err != nil {
		return model.StateSnapshot{}, err
	}
	return sess.game.Snapshot(), nil
}

// GetMoves returns the moves currently on offer to color, disallowed moves
// included with their warnings.
func (gm *GameManager) GetMoves(gameID string, color model.Color) ([]*model.Move, error) {
	sess, err := gm.session(gameID)
	if err != nil {
		return nil, err
	}
	return sess.game.AvailableMoves(color), nil
}

// MakeMove applies the human player's move, resolves any resulting promotion,
// and then lets the computer opponent answer. The whole exchange is one
// critical section per session.
func (gm *GameManager) MakeMove(gameID string, playerID string, req MoveRequest) error {
	sess, err := gm.session(gameID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.human.ID != playerID {
		return errors.New("player is not in this game")
	}

	var from, to model.Square
	if req.To == "" {
		// Compact form: both labels concatenated, e.g. "e2e4".
		var err error
		if from, to, err = model.ParseMoveText(req.From); err != nil {
			return err
		}
	} else {
		var err error
		if from, err = model.ParseSquare(req.From); err != nil {
			return err
		}
		if to, err = model.ParseSquare(req.To); err != nil {
			return err
		}
	}

	move, err := sess.findMove(from, to)
	if err != nil {
		return err
	}
	if err := sess.game.ApplyMove(sess.human, move); err != nil {
		return err
	}
	if pawn := sess.game.PendingPromotion(); pawn != nil && pawn.Color == sess.human.Color {
		if err := sess.game.PromotePawn(pawn, req.Promotion); err != nil {
			return err
		}
	}

	if err := sess.playMachineTurn(); err != nil {
		return err
	}
	sess.broadcastState()
	return nil
}

// findMove resolves a from/to pair against the current offer for the human
// side, distinguishing rules-illegal moves (which carry a warning) from pairs
// that match nothing at all.
func (s *gameSession) findMove(from, to model.Square) (*model.Move, error) {
	for _, m := range s.game.AvailableMoves(s.human.Color) {
		if m.Matches(from, to) {
			if m.Disallowed {
				return nil, errors.New(m.Warning)
			}
			return m, nil
		}
	}
	return nil, fmt.Errorf("%s->%s is not an available move", from.Label(), to.Label())
}

// playMachineTurn lets the computer move if it is its turn. Promotion is
// resolved to a queen, the only choice the engine players make.
func (s *gameSession) playMachineTurn() error {
	game := s.game
	if game.Status() == model.StatusGameOver || game.SideToMove() != s.machine.Color {
		return nil
	}
	move := s.opponent.ChooseMove(game.Board(), game.AvailableMoves(s.machine.Color))
	if move == nil {
		return nil
	}
	if err := game.ApplyMove(s.machine, move); err != nil {
		return err
	}
	if pawn := game.PendingPromotion(); pawn != nil && pawn.Color == s.machine.Color {
		if err := game.PromotePawn(pawn, "Q"); err != nil {
			return err
		}
	}
	return nil
}

// RegisterConnection attaches a websocket connection to the game and sends it
// the current state.
func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	sess, err := gm.session(gameID)
	if err != nil {
		return err
	}
	sess.connsMu.Lock()
	if _, exists := sess.conns[playerID]; exists {
		sess.connsMu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "Connection already exists"),
		)
		conn.Close()
		return nil
	}
	sess.conns[playerID] = conn
	sess.connsMu.Unlock()

	sess.broadcastState()
	return nil
}

// UnregisterConnection detaches a websocket connection from the game.
func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	sess, err := gm.session(gameID)
	if err != nil {
		return
	}
	sess.connsMu.Lock()
	defer sess.connsMu.Unlock()
	delete(sess.conns, playerID)
}

// broadcastEvent forwards a core event to every observing connection. It runs
// synchronously inside the move that triggered it, so it only writes and
// never blocks on anything else.
func (s *gameSession) broadcastEvent(ev model.Event) {
	payload := ws.EventPayload{Kind: string(ev.EventKind()), Event: ev}
	s.writeToAll(ws.MessageTypeEvent, payload)
}

// broadcastState pushes a full state snapshot to every observing connection.
func (s *gameSession) broadcastState() {
	s.writeToAll(ws.MessageTypeGameState, s.game.Snapshot())
}

func (s *gameSession) writeToAll(msgType ws.MessageType, payload interface{}) {
	msg, err := ws.Envelope(msgType, payload)
	if err != nil {
		log.Printf("failed to marshal %s message: %v", msgType, err)
		return
	}
	s.connsMu.Lock()
	defer s.connsMu.Unlock()
	for playerID, conn := range s.conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("dropping connection for player %s: %v", playerID, err)
			conn.Close()
			delete(s.conns, playerID)
		}
	}
}
