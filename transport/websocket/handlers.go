package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
)

func (that *Server) handleNewGame(ctx context.Context, msg *Message) (ResponsePayload, error) {
	var req newGameRequest
	if err := decodePayload(msg, &req); err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.games.NewGame(ctx, req.Size)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game started over websocket", "game_id", view.ID)

	return withGame(view), nil
}

func (that *Server) handleGetGame(ctx context.Context, msg *Message) (ResponsePayload, error) {
	var req gameRequest
	if err := decodePayload(msg, &req); err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.games.GetGame(ctx, req.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", req.GameID, err)
	}

	return withGame(view), nil
}

func (that *Server) handleClick(ctx context.Context, msg *Message) (ResponsePayload, error) {
	var req clickRequest
	if err := decodePayload(msg, &req); err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.games.ClickCell(ctx, req.GameID, *req.Cell)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", req.GameID, err)
	}

	return withGame(view), nil
}

func (that *Server) handleJump(ctx context.Context, msg *Message) (ResponsePayload, error) {
	var req jumpRequest
	if err := decodePayload(msg, &req); err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.games.JumpTo(ctx, req.GameID, *req.Step)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", req.GameID, err)
	}

	return withGame(view), nil
}

func (that *Server) handleOrder(ctx context.Context, msg *Message) (ResponsePayload, error) {
	var req gameRequest
	if err := decodePayload(msg, &req); err != nil {
		return ResponsePayload{}, err
	}

	view, err := that.games.ToggleOrder(ctx, req.GameID)
	if err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", req.GameID, err)
	}

	return withGame(view), nil
}

func (that *Server) handleLeave(ctx context.Context, msg *Message) (ResponsePayload, error) {
	var req gameRequest
	if err := decodePayload(msg, &req); err != nil {
		return ResponsePayload{}, err
	}

	if err := that.games.DeleteGame(ctx, req.GameID); err != nil {
		return ResponsePayload{}, fmt.Errorf("game %s: %w", req.GameID, err)
	}

	return ResponsePayload{}, nil
}

func withGame(view presenter.View) ResponsePayload {
	return ResponsePayload{Game: &view}
}
