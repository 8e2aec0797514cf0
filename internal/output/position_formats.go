package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arcbit/pgnforge/internal/chess"
	"github.com/arcbit/pgnforge/internal/config"
	"github.com/arcbit/pgnforge/internal/engine"
)

// writeFENGame outputs one FEN string per position reached by the game:
// the starting position followed by the position after each move.
func writeFENGame(game *chess.Game, cfg *config.Config, w io.Writer) {
	outputTags(game, cfg, w)
	fmt.Fprintln(w)

	board := engine.NewBoardForGame(game)
	fmt.Fprintln(w, engine.GetFENForGame(board, game, cfg.Chess960Mode))

	for move := game.Moves; move != nil; move = move.Next {
		if !engine.ApplyMove(board, move) {
			break
		}
		fmt.Fprintln(w, engine.GetFENForGame(board, game, cfg.Chess960Mode))
	}

	fmt.Fprintln(w)
}

// toEPD strips the halfmove clock and fullmove number fields from a FEN
// string, leaving the four fields EPD uses (placement, side, castling, ep).
func toEPD(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) < 4 {
		return fen
	}
	return strings.Join(fields[:4], " ")
}

// epdOperations builds the c0 (player/event) and c1 (result) opcodes that
// the original tool attaches to each EPD record.
func epdOperations(game *chess.Game) string {
	white := game.GetTag("White")
	black := game.GetTag("Black")
	event := game.GetTag("Event")
	return fmt.Sprintf("c0 \"%s-%s, %s\"; c1 \"%s\";", white, black, event, getGameResult(game))
}

// writeEPDGame outputs one EPD record per position reached by the game,
// each annotated with a c0 player/event comment and a c1 result comment.
func writeEPDGame(game *chess.Game, cfg *config.Config, w io.Writer) {
	outputTags(game, cfg, w)
	fmt.Fprintln(w)

	ops := epdOperations(game)
	board := engine.NewBoardForGame(game)
	fmt.Fprintf(w, "%s %s\n", toEPD(engine.GetFENForGame(board, game, cfg.Chess960Mode)), ops)

	for move := game.Moves; move != nil; move = move.Next {
		if !engine.ApplyMove(board, move) {
			break
		}
		fmt.Fprintf(w, "%s %s\n", toEPD(engine.GetFENForGame(board, game, cfg.Chess960Mode)), ops)
	}

	fmt.Fprintln(w)
}

// writeCMGame outputs a game in the Chess Master text layout: WHITE:/BLACK:
// header lines, numbered moves in hyphenated long algebraic form, and a
// trailing comment describing the result.
func writeCMGame(game *chess.Game, cfg *config.Config, w io.Writer) {
	fmt.Fprintf(w, "WHITE: %s\n", orUnknown(game.GetTag("White")))
	fmt.Fprintf(w, "BLACK: %s\n", orUnknown(game.GetTag("Black")))

	board := engine.NewBoardForGame(game)
	moveNumber := board.MoveNumber
	white := board.ToMove == chess.White

	ow := NewOutputWriter(w, int(cfg.Output.MaxLineLength))
	for move := game.Moves; move != nil; move = move.Next {
		if white {
			ow.Write(fmt.Sprintf("%d.", moveNumber))
		}
		ow.Write(formatLongAlgebraic(move, board, true, false))
		if !engine.ApplyMove(board, move) {
			break
		}
		if white {
			white = false
		} else {
			white = true
			moveNumber++
		}
	}
	ow.NewLine()

	fmt.Fprintf(w, "; %s\n", cmResultComment(getGameResult(game)))
	fmt.Fprintln(w)
}

func cmResultComment(result string) string {
	switch result {
	case "1-0":
		return "and black resigns"
	case "0-1":
		return "and white resigns"
	case "1/2-1/2":
		return "draw"
	default:
		return "incomplete result"
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
