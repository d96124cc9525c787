package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Loose", "Tight", "Bold", "Brave", "Sneaky", "Wild", "Quiet", "Roaring", "Golden",
	"Velvet", "Midnight", "Crimson", "Emerald", "Silver", "Rusty", "Smoky", "Dusty", "Shiny", "Grand",
	"Royal", "Crooked", "Honest", "Slick", "Frozen", "Blazing", "Humble", "Fancy", "Rowdy", "Stoic",
}

var nouns = []string{
	"River", "Flop", "Turn", "Button", "Cutoff", "Kicker", "Wheel", "Boat", "Broadway", "Gutshot",
	"Bluff", "Stack", "Blind", "Ante", "Shark", "Donkey", "Maverick", "Gambit", "Draw", "Showdown",
	"Nugget", "Saloon", "Parlor", "Felt", "Deuce", "Trey", "Cowboy", "Rocket", "Lady", "Hook",
}

// GetRandomName returns a random table name by combining an adjective with a noun
func GetRandomName() string {
	adjectivesIndex := rand.Intn(len(adjectives))
	nounsIndex := rand.Intn(len(nouns))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], nouns[nounsIndex])
}
