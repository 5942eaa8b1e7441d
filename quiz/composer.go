package quiz

import (
	"fmt"
	"math/rand"
)

// MaxOptions is the hard limit Telegram places on poll options.
const MaxOptions = 10

// Quiz is the computed option list for a single quiz poll. It is never
// stored: the caller sends it and throws it away.
type Quiz struct {
	Options      []string
	CorrectIndex int
}

// Compose builds the option list for a "who said it" quiz. The target is
// pulled out of the roster, the remaining names are shuffled, and the
// target is re-inserted at a random index in [0, MaxOptions-1) so that it
// always survives the truncation to MaxOptions entries.
func Compose(roster []string, target string, rng *rand.Rand) (Quiz, error) {
	decoys := make([]string, 0, len(roster))
	found := false
	for _, name := range roster {
		if name == target {
			found = true
			continue
		}
		decoys = append(decoys, name)
	}
	if !found {
		return Quiz{}, fmt.Errorf("target %q is not part of the committee", target)
	}

	rng.Shuffle(len(decoys), func(i, j int) {
		decoys[i], decoys[j] = decoys[j], decoys[i]
	})

	// The upper bound stays one short of MaxOptions so the correct answer
	// can never land in the slot that truncation removes. For small
	// rosters the bound is the insertable range instead.
	bound := MaxOptions - 1
	if len(decoys)+1 < bound {
		bound = len(decoys) + 1
	}
	index := rng.Intn(bound)

	options := make([]string, 0, len(decoys)+1)
	options = append(options, decoys[:index]...)
	options = append(options, target)
	options = append(options, decoys[index:]...)

	if len(options) > MaxOptions {
		options = options[:MaxOptions]
	}

	return Quiz{Options: options, CorrectIndex: index}, nil
}
