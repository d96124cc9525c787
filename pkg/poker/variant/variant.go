package variant

import "fmt"

// GameType identifies a poker variant
type GameType int

// game type constants
const (
	TexasHoldem GameType = iota
	Omaha
	OmahaHiLo
	SevenStud
	SevenStudHiLo
	Razz
	Badugi
	DeuceToSevenTripleDraw
)

// GameTypes lists every supported game type
var GameTypes = []GameType{
	TexasHoldem,
	Omaha,
	OmahaHiLo,
	SevenStud,
	SevenStudHiLo,
	Razz,
	Badugi,
	DeuceToSevenTripleDraw,
}

// String returns the display name of the game type
func (g GameType) String() string {
	switch g {
	case TexasHoldem:
		return "Texas Hold'em"
	case Omaha:
		return "Omaha"
	case OmahaHiLo:
		return "Omaha Hi/Lo"
	case SevenStud:
		return "Seven-Card Stud"
	case SevenStudHiLo:
		return "Seven-Card Stud Hi/Lo"
	case Razz:
		return "Razz"
	case Badugi:
		return "Badugi"
	case DeuceToSevenTripleDraw:
		return "2-7 Triple Draw"
	default:
		panic(fmt.Sprintf("unknown game type: %d", g))
	}
}

// Key returns the stable identifier used on the wire and in the database
func (g GameType) Key() string {
	switch g {
	case TexasHoldem:
		return "texas-hold-em"
	case Omaha:
		return "omaha"
	case OmahaHiLo:
		return "omaha-hi-lo"
	case SevenStud:
		return "seven-stud"
	case SevenStudHiLo:
		return "seven-stud-hi-lo"
	case Razz:
		return "razz"
	case Badugi:
		return "badugi"
	case DeuceToSevenTripleDraw:
		return "deuce-to-seven"
	default:
		panic(fmt.Sprintf("unknown game type: %d", g))
	}
}

// GameTypeFromKey returns the game type for a wire identifier
func GameTypeFromKey(key string) (GameType, error) {
	for _, g := range GameTypes {
		if g.Key() == key {
			return g, nil
		}
	}

	return 0, fmt.Errorf("unknown game type: %s", key)
}

// Limit is the betting discipline for a variant
type Limit int

// limit constants
const (
	NoLimit Limit = iota
	PotLimit
	FixedLimit
)

// String returns the display name of the limit
func (l Limit) String() string {
	switch l {
	case NoLimit:
		return "No-Limit"
	case PotLimit:
		return "Pot-Limit"
	case FixedLimit:
		return "Fixed-Limit"
	default:
		panic(fmt.Sprintf("unknown limit: %d", l))
	}
}

// Rules describes how a variant is dealt and settled.
// The pot-limit maximum raise is computed live by the betting engine and is
// deliberately not part of the rule table.
type Rules struct {
	// HoleCards is how many concealed cards each player is dealt
	HoleCards int
	// CommunityCards is how many shared cards are dealt across all stages
	CommunityCards int
	// UseHole is how many hole cards must be used (0 means any number)
	UseHole int
	// UseCommunity is how many community cards must be used (0 means any number)
	UseCommunity int
	// CommunityStages is how many community cards are revealed per stage
	CommunityStages []int
	// HiLo is true if the pot splits between the high hand and a qualifying low hand
	HiLo bool
	// Limit is the betting discipline
	Limit Limit
}

var ruleTable = map[GameType]Rules{
	TexasHoldem: {
		HoleCards:       2,
		CommunityCards:  5,
		CommunityStages: []int{3, 1, 1},
		Limit:           NoLimit,
	},
	Omaha: {
		HoleCards:       4,
		CommunityCards:  5,
		UseHole:         2,
		UseCommunity:    3,
		CommunityStages: []int{3, 1, 1},
		Limit:           PotLimit,
	},
	OmahaHiLo: {
		HoleCards:       4,
		CommunityCards:  5,
		UseHole:         2,
		UseCommunity:    3,
		CommunityStages: []int{3, 1, 1},
		HiLo:            true,
		Limit:           PotLimit,
	},
	SevenStud: {
		HoleCards: 7,
		Limit:     FixedLimit,
	},
	SevenStudHiLo: {
		HoleCards: 7,
		HiLo:      true,
		Limit:     FixedLimit,
	},
	Razz: {
		HoleCards: 7,
		Limit:     FixedLimit,
	},
	Badugi: {
		HoleCards: 4,
		Limit:     FixedLimit,
	},
	DeuceToSevenTripleDraw: {
		HoleCards: 5,
		Limit:     NoLimit,
	},
}

// RulesFor returns the rule table entry for the game type
func RulesFor(g GameType) Rules {
	rules, ok := ruleTable[g]
	if !ok {
		panic(fmt.Sprintf("no rules for game type: %d", g))
	}

	return rules
}

// MaxSeats is how many players a table can seat without the deal being able
// to exhaust the deck, capped at a ten-handed table
func (r Rules) MaxSeats() int {
	max := (52 - r.CommunityCards) / r.HoleCards
	if max > 10 {
		max = 10
	}

	return max
}

// BettingRounds returns how many betting rounds the variant plays
func (r Rules) BettingRounds() int {
	if len(r.CommunityStages) > 0 {
		return len(r.CommunityStages) + 1
	}

	// stud-style and draw games bet once per street after the deal
	return 4
}
