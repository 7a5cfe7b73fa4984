package wire

import (
	"testing"

	"github.com/varekai/netchess/internal/board"
	"github.com/varekai/netchess/internal/testutil"
)

func TestTagOnlyMessages(t *testing.T) {
	types := []MessageType{TypeDecline, TypeUndo, TypeAccept, TypeCheckmate, TypeDraw, TypeResign}

	for _, mt := range types {
		t.Run(mt.String(), func(t *testing.T) {
			frame, err := Encode(Message{Type: mt})
			testutil.AssertNoError(t, err)

			testutil.AssertEqual(t, frame, [FrameSize]byte{byte(mt), 0, 0, 0, 0})

			decoded, err := Decode(frame)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, decoded.Type, mt)
			testutil.AssertEqual(t, decoded.Move, board.NoMove)
		})
	}
}

func TestMoveRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		from board.Square
		m    board.Move
	}{
		{"Plain", board.E2, board.NewMove(board.E4)},
		{"EnPassant", board.E5, board.NewEnPassant(board.D6)},
		{"PromoteKnight", board.A7, board.NewPromotion(board.A8, board.Knight)},
		{"PromoteBishop", board.B7, board.NewPromotion(board.B8, board.Bishop)},
		{"PromoteRook", board.G2, board.NewPromotion(board.G1, board.Rook)},
		{"PromoteQueen", board.H7, board.NewPromotion(board.H8, board.Queen)},
		{"Kingside", board.NoSquare, board.NewCastle(true)},
		{"Queenside", board.NoSquare, board.NewCastle(false)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			frame, err := Encode(NewMoveMessage(c.from, c.m))
			testutil.AssertNoError(t, err)

			decoded, err := Decode(frame)
			testutil.AssertNoError(t, err)

			testutil.AssertEqual(t, decoded.Type, TypeMove)
			testutil.AssertEqual(t, decoded.From, c.from)
			testutil.AssertEqual(t, decoded.Move, c.m)
		})
	}
}

func TestPromotionKindIndices(t *testing.T) {
	// The wire indices are fixed: 0=knight, 1=bishop, 2=rook, 3=queen.
	kinds := []board.PieceType{board.Knight, board.Bishop, board.Rook, board.Queen}

	for idx, kind := range kinds {
		frame, err := Encode(NewMoveMessage(board.A7, board.NewPromotion(board.A8, kind)))
		testutil.AssertNoError(t, err)
		if int(frame[4]) != idx {
			t.Errorf("promotion %v encoded as index %d, want %d", kind, frame[4], idx)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Run("NoMoveSentinel", func(t *testing.T) {
		_, err := Encode(NewMoveMessage(board.E2, board.NoMove))
		testutil.AssertErrorIs(t, err, ErrNoMove)
	})

	t.Run("BadOrigin", func(t *testing.T) {
		_, err := Encode(NewMoveMessage(board.NoSquare, board.NewMove(board.E4)))
		testutil.AssertErrorIs(t, err, ErrBadSquare)
	})

	t.Run("UnknownMessageType", func(t *testing.T) {
		_, err := Encode(Message{Type: MessageType(0x9)})
		testutil.AssertErrorIs(t, err, ErrUnknownMessage)
	})
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name  string
		frame [FrameSize]byte
		want  error
	}{
		{"UnknownMessageTag", [FrameSize]byte{0x7, 0, 0, 0, 0}, ErrUnknownMessage},
		{"UnknownMoveTag", [FrameSize]byte{0x1, 0x5, 0, 0, 0}, ErrUnknownMove},
		{"OriginOutOfRange", [FrameSize]byte{0x1, 0x0, 64, 0, 0}, ErrBadSquare},
		{"TargetOutOfRange", [FrameSize]byte{0x1, 0x0, 0, 200, 0}, ErrBadSquare},
		{"PromotionOutOfRange", [FrameSize]byte{0x1, 0x2, 8, 0, 4}, ErrBadPromotion},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.frame)
			testutil.AssertErrorIs(t, err, c.want)
		})
	}
}
