package util

import (
	"fmt"
	"math/rand"
	"time"
)

var adjectives = []string{
	"Lucky", "Bluffing", "Stacked", "Patient", "Fearless", "Crafty", "Loose", "Tight", "Wild", "Steady",
	"Grinning", "Quiet", "Reckless", "Sly", "Bold", "Cagey", "Frozen", "Golden", "Rowdy", "Smooth",
}

var animals = []string{
	"Shark", "Fish", "Fox", "Wolf", "Owl", "Badger", "Raven", "Coyote", "Rabbit", "Moose",
	"Otter", "Hawk", "Lynx", "Bear", "Viper", "Heron", "Walrus", "Jackal", "Stoat", "Donkey",
}

var random = rand.New(rand.NewSource(time.Now().UnixNano())) // nolint:gosec

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	adjectivesIndex := random.Intn(len(adjectives))
	animalsIndex := random.Intn(len(animals))

	return fmt.Sprintf("%s %s", adjectives[adjectivesIndex], animals[animalsIndex])
}
