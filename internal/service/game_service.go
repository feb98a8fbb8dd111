package service

import (
	"github.com/chesscore/chess-server/internal/model"
	"github.com/gofiber/websocket/v2"
)

// HelpText is served to front ends that ask for instructions.
const HelpText = `This chess server plays you against a computer opponent.
It checks every move you make and detects check, checkmate, stalemate,
en passant, castling and pawn promotion. Moves are given as two squares,
from and to, e.g. "e2" to "e4".
The computer has several levels. Level 0 plays a random legal move, level 1
looks one move ahead and picks the best, level 2 also considers your best
reply, and higher levels search that many moves deep with alpha-beta pruning.
The search grows fast with depth, so above about level 7 the computer gets
very slow.`

// GameService is the boundary the controllers call. It delegates to the game
// manager and keeps the HTTP layer out of the model.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{gameManager: gameManager}
}

func (gs *GameService) CreateGame(playerID string, level int, color model.Color) (string, error) {
	return gs.gameManager.CreateGame(playerID, level, color)
}

func (gs *GameService) GetGameState(gameID string) (model.StateSnapshot, error) {
	return gs.gameManager.GetSnapshot(gameID)
}

func (gs *GameService) GetMoves(gameID string, color model.Color) ([]*model.Move, error) {
	return gs.gameManager.GetMoves(gameID, color)
}

func (gs *GameService) HandleMove(gameID, playerID string, req MoveRequest) error {
	return gs.gameManager.MakeMove(gameID, playerID, req)
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
