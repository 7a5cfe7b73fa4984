// Package wire implements the fixed-width peer protocol: every message
// is exactly one 5-byte frame, a type tag followed by a payload that is
// zero-padded for the tag-only messages. Conversion between engine
// values and frames is lossless in both directions; anything malformed
// decodes to an error, never a panic.
package wire

import (
	"errors"
	"fmt"

	"github.com/varekai/netchess/internal/board"
)

// FrameSize is the exact on-wire size of every message.
const FrameSize = 5

// MessageType is the frame's leading tag byte.
type MessageType byte

const (
	TypeDecline   MessageType = 0x0
	TypeMove      MessageType = 0x1
	TypeUndo      MessageType = 0x2
	TypeAccept    MessageType = 0x3
	TypeCheckmate MessageType = 0x4
	TypeDraw      MessageType = 0x5
	TypeResign    MessageType = 0x6
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case TypeDecline:
		return "decline"
	case TypeMove:
		return "move"
	case TypeUndo:
		return "undo"
	case TypeAccept:
		return "accept"
	case TypeCheckmate:
		return "checkmate"
	case TypeDraw:
		return "draw"
	case TypeResign:
		return "resign"
	default:
		return fmt.Sprintf("unknown(0x%x)", byte(t))
	}
}

// Move payload sub-tags (payload byte 0 of a TypeMove frame).
const (
	moveTagPlain     byte = 0x0
	moveTagEnPassant byte = 0x1
	moveTagPromotion byte = 0x2
	moveTagKingside  byte = 0x3
	moveTagQueenside byte = 0x4
)

// Decode errors. All protocol faults are recoverable values for the
// transport layer to handle; none of them may reach the engine.
var (
	ErrUnknownMessage = errors.New("wire: unknown message tag")
	ErrUnknownMove    = errors.New("wire: unknown move tag")
	ErrBadSquare      = errors.New("wire: square operand out of range")
	ErrBadPromotion   = errors.New("wire: promotion kind out of range")
	ErrNoMove         = errors.New("wire: the no-move sentinel has no wire representation")
)

// Message is one decoded frame. From and Move are meaningful only for
// TypeMove; castling frames carry no origin, so From is NoSquare and
// the receiver derives the king square from the side to move.
type Message struct {
	Type MessageType
	From board.Square
	Move board.Move
}

// NewMoveMessage builds a move frame payload from an origin and a move.
func NewMoveMessage(from board.Square, m board.Move) Message {
	return Message{Type: TypeMove, From: from, Move: m}
}

// Encode serializes the message into a frame. Encoding the NoMove
// sentinel or an out-of-range square is rejected before any bytes are
// produced.
func Encode(msg Message) ([FrameSize]byte, error) {
	var frame [FrameSize]byte

	switch msg.Type {
	case TypeDecline, TypeUndo, TypeAccept, TypeCheckmate, TypeDraw, TypeResign:
		frame[0] = byte(msg.Type)
		return frame, nil
	case TypeMove:
		// Handled below.
	default:
		return frame, fmt.Errorf("%w: 0x%x", ErrUnknownMessage, byte(msg.Type))
	}

	frame[0] = byte(TypeMove)

	switch msg.Move.Kind {
	case board.KindPlain, board.KindEnPassant, board.KindPromotion:
		if !msg.From.IsValid() || !msg.Move.To.IsValid() {
			return frame, ErrBadSquare
		}
		frame[2] = byte(msg.From)
		frame[3] = byte(msg.Move.To)
	case board.KindCastleKingside, board.KindCastleQueenside:
		// No operands.
	case board.KindNone:
		return frame, ErrNoMove
	default:
		return frame, fmt.Errorf("%w: %d", ErrUnknownMove, msg.Move.Kind)
	}

	switch msg.Move.Kind {
	case board.KindPlain:
		frame[1] = moveTagPlain
	case board.KindEnPassant:
		frame[1] = moveTagEnPassant
	case board.KindPromotion:
		if msg.Move.Promo < board.Knight || msg.Move.Promo > board.Queen {
			return frame, fmt.Errorf("%w: %v", ErrBadPromotion, msg.Move.Promo)
		}
		frame[1] = moveTagPromotion
		frame[4] = byte(msg.Move.Promo - board.Knight)
	case board.KindCastleKingside:
		frame[1] = moveTagKingside
	case board.KindCastleQueenside:
		frame[1] = moveTagQueenside
	}

	return frame, nil
}

// Decode parses one frame into a Message.
func Decode(frame [FrameSize]byte) (Message, error) {
	switch MessageType(frame[0]) {
	case TypeDecline, TypeUndo, TypeAccept, TypeCheckmate, TypeDraw, TypeResign:
		return Message{Type: MessageType(frame[0]), From: board.NoSquare, Move: board.NoMove}, nil
	case TypeMove:
		// Handled below.
	default:
		return Message{}, fmt.Errorf("%w: 0x%x", ErrUnknownMessage, frame[0])
	}

	msg := Message{Type: TypeMove, From: board.NoSquare, Move: board.NoMove}

	switch frame[1] {
	case moveTagPlain, moveTagEnPassant, moveTagPromotion:
		from := board.Square(frame[2])
		to := board.Square(frame[3])
		if !from.IsValid() || !to.IsValid() {
			return Message{}, ErrBadSquare
		}
		msg.From = from

		switch frame[1] {
		case moveTagPlain:
			msg.Move = board.NewMove(to)
		case moveTagEnPassant:
			msg.Move = board.NewEnPassant(to)
		case moveTagPromotion:
			if frame[4] > 3 {
				return Message{}, fmt.Errorf("%w: %d", ErrBadPromotion, frame[4])
			}
			msg.Move = board.NewPromotion(to, board.Knight+board.PieceType(frame[4]))
		}
	case moveTagKingside:
		msg.Move = board.NewCastle(true)
	case moveTagQueenside:
		msg.Move = board.NewCastle(false)
	default:
		return Message{}, fmt.Errorf("%w: 0x%x", ErrUnknownMove, frame[1])
	}

	return msg, nil
}
