// Package hashing provides the Zobrist key tables used for incremental
// position hashing. Three independent accumulators are maintained by the
// position from these tables: the full position key, the pawn-structure key
// and the material signature key.
//
// Tables are generated once at startup from a deterministic PRNG with a
// fixed seed, so keys are reproducible across runs and platforms.
package hashing

import (
	"github.com/lgbarn/varboard-go/internal/types"
)

// Key tables. Indexing follows the engine's enumerations directly.
var (
	// Piece holds one key per coloured piece and square.
	Piece [types.PieceNB][64]types.Key

	// EnPassant holds one key per file of the en-passant square.
	EnPassant [types.FileNB]types.Key

	// Castling holds one key per castling-rights combination.
	Castling [types.CastlingRightNB]types.Key

	// InHand holds one key per coloured piece and in-hand count, for drop
	// variants. Count 0 maps to the zero key so that hands are free for
	// variants without drops.
	InHand [types.PieceNB][17]types.Key

	// Side is XOR-ed into the key when Black is to move.
	Side types.Key

	// NoPawns seeds the pawn key so an empty pawn structure is non-zero.
	NoPawns types.Key
)

// prng is an xorshift64* generator. The fixed seed makes the tables
// reproducible, which the round-trip and key-consistency tests rely on.
type prng struct {
	state uint64
}

func (p *prng) next() types.Key {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return types.Key(p.state * 0x2545F4914F6CDD1D)
}

func init() {
	rng := prng{state: 1070372}

	for pc := types.NoPiece + 1; pc < types.PieceNB; pc++ {
		for s := types.SquareA1; s < types.SquareNB; s++ {
			Piece[pc][s] = rng.next()
		}
	}
	for f := types.FileA; f < types.FileNB; f++ {
		EnPassant[f] = rng.next()
	}
	// Combination castling keys are the XOR of their single-right keys, so
	// clearing a subset of rights can be hashed with one table lookup.
	for bit := 0; bit < 4; bit++ {
		Castling[1<<bit] = rng.next()
	}
	for cr := 0; cr < types.CastlingRightNB; cr++ {
		if cr&(cr-1) != 0 {
			for bit := 0; bit < 4; bit++ {
				if cr&(1<<bit) != 0 {
					Castling[cr] ^= Castling[1<<bit]
				}
			}
		}
	}
	for pc := types.NoPiece + 1; pc < types.PieceNB; pc++ {
		for n := 1; n <= 16; n++ {
			InHand[pc][n] = rng.next()
		}
	}
	Side = rng.next()
	NoPawns = rng.next()
}
