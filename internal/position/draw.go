package position

import (
	"github.com/lgbarn/varboard-go/internal/bitboard"
	"github.com/lgbarn/varboard-go/internal/hashing"
	"github.com/lgbarn/varboard-go/internal/types"
)

// Cuckoo hash tables of all reversible move keys, used to detect upcoming
// repetitions without replaying moves. Each entry stores the XOR of the two
// piece-square keys plus the side key of one non-pawn move, keyed by two
// alternative hash slots.
var (
	cuckoo     [8192]types.Key
	cuckooMove [8192]types.Move
)

func cuckooH1(k types.Key) int { return int(k & 0x1fff) }
func cuckooH2(k types.Key) int { return int((k >> 16) & 0x1fff) }

func init() {
	for c := types.White; c < types.ColorNB; c++ {
		for pt := types.Knight; pt <= types.King; pt++ {
			pc := types.MakePiece(c, pt)
			for s1 := types.SquareA1; s1 < types.SquareNB; s1++ {
				for s2 := s1 + 1; s2 < types.SquareNB; s2++ {
					if !bitboard.PseudoAttacks(pt, s1).IsSet(s2) {
						continue
					}
					move := types.NewMove(s1, s2)
					key := hashing.Piece[pc][s1] ^ hashing.Piece[pc][s2] ^ hashing.Side
					i := cuckooH1(key)
					for {
						cuckoo[i], key = key, cuckoo[i]
						cuckooMove[i], move = move, cuckooMove[i]
						if move == types.MoveNone {
							break
						}
						if i == cuckooH1(key) {
							i = cuckooH2(key)
						} else {
							i = cuckooH1(key)
						}
					}
				}
			}
		}
	}
}

// IsDraw reports whether the position is drawn by the fifty-move rule or by
// repetition. ply is the distance from the search root: a single repetition
// inside the search tree already counts as a draw, while repetitions that
// straddle the root must occur twice.
//
// The fifty-move test is skipped while the mover is in check, since the
// hundredth half-move could be delivering mate.
func (p *Position) IsDraw(ply int) bool {
	if p.st.Rule50 > 99 && p.st.CheckersBB == 0 {
		return true
	}

	end := p.st.Rule50
	if p.st.PliesFromNull < end {
		end = p.st.PliesFromNull
	}
	if end < 4 {
		return false
	}

	stp := p.st.Previous.Previous
	cnt := 0
	for i := 4; i <= end; i += 2 {
		stp = stp.Previous.Previous
		if stp.Key == p.st.Key {
			cnt++
			if ply > i {
				cnt++
			}
			if cnt >= 2 {
				return true
			}
		}
	}
	return false
}

// HasRepeated reports whether the current position, or one of its
// ancestors on the state chain, has occurred before. Used to detect
// perpetual lines at the root.
func (p *Position) HasRepeated() bool {
	stc := p.st
	for {
		end := stc.Rule50
		if stc.PliesFromNull < end {
			end = stc.PliesFromNull
		}
		if end < 4 {
			return false
		}
		stp := stc.Previous.Previous
		for i := 4; i <= end; i += 2 {
			stp = stp.Previous.Previous
			if stp.Key == stc.Key {
				return true
			}
		}
		stc = stc.Previous
	}
}

// HasGameCycle reports whether the side to move has a reversible move that
// repeats an earlier position. ply is the distance from the search root;
// cycles that close behind the root require a second occurrence, like
// IsDraw repetitions.
func (p *Position) HasGameCycle(ply int) bool {
	end := p.st.Rule50
	if p.st.PliesFromNull < end {
		end = p.st.PliesFromNull
	}
	if end < 3 {
		return false
	}

	originalKey := p.st.Key
	stp := p.st.Previous

	for i := 3; i <= end; i += 2 {
		stp = stp.Previous.Previous

		moveKey := originalKey ^ stp.Key
		j := cuckooH1(moveKey)
		if cuckoo[j] != moveKey {
			j = cuckooH2(moveKey)
			if cuckoo[j] != moveKey {
				continue
			}
		}
		move := cuckooMove[j]
		s1, s2 := move.From(), move.To()
		if bitboard.Between(s1, s2)&p.Pieces() != 0 {
			continue
		}
		if ply > i {
			return true
		}

		// The cycle closes at or before the root: the repeating move must
		// belong to the side to move.
		occ := s1
		if p.IsEmpty(s1) {
			occ = s2
		}
		if p.board[occ].ColorOf() != p.sideToMove {
			continue
		}

		// Require one more occurrence of the repeated position.
		next := stp
		for k := i + 2; k <= end; k += 2 {
			next = next.Previous.Previous
			if next.Key == stp.Key {
				return true
			}
		}
	}
	return false
}
