package controller

import (
	"errors"
	"strconv"

	"github.com/chesscore/chess-server/internal/model"
	"github.com/chesscore/chess-server/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// CreateGame starts a game against a computer opponent. Query params: level
// (0-10, default 2) and color (white or black, default white).
func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	level, err := strconv.Atoi(c.Query("level", "2"))
	if err != nil || level < 0 || level > 10 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "level must be an integer in 0..10",
		})
	}
	color := model.Color(c.Query("color", string(model.White)))
	if color != model.White && color != model.Black {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "color must be white or black",
		})
	}

	gameID, err := gc.gameService.CreateGame(playerID, level, color)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}

	return c.JSON(gameState)
}

// GetMoves lists the moves on offer to one side, disallowed moves included
// with their warnings so a front end can explain them.
func (gc *GameController) GetMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	color := model.Color(c.Query("color", string(model.White)))
	if color != model.White && color != model.Black {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "color must be white or black",
		})
	}

	moves, err := gc.gameService.GetMoves(gameID, color)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch moves",
		})
	}

	return c.JSON(fiber.Map{"moves": moves})
}

// MakeMove applies a move for the requesting player. Legality failures and
// malformed squares come back as 400s with the core's message.
func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var req service.MoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move payload",
		})
	}

	if err := gc.gameService.HandleMove(gameID, playerID, req); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch game state",
		})
	}
	return c.JSON(gameState)
}

// GetHelp returns usage instructions for front ends.
func (gc *GameController) GetHelp(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"help": service.HelpText})
}
