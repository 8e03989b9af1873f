package mutator

// NonBouncing returns the five mutators that BouncePlus/BounceQuestion
// recurse into once they expose new epsilon arcs, in the fixed
// enumeration order used throughout this package.
func NonBouncing() []Mutator {
	return []Mutator{
		BotMutator{},
		ActivateMutator{},
		DisjunctionMutator{},
		DownDotMutator{},
		UpDotMutator{},
	}
}

// Catalog returns the full, deterministically ordered set of seven
// mutators, with the bouncing pair wired to recurse into the
// non-bouncing five.
func Catalog(mode UpDotMode) []Mutator {
	nonBouncing := []Mutator{
		BotMutator{},
		ActivateMutator{},
		DisjunctionMutator{},
		DownDotMutator{},
		UpDotMutator{Mode: mode},
	}
	return append(append([]Mutator{}, nonBouncing...),
		BouncePlusMutator{NonBouncing: nonBouncing},
		BounceQuestionMutator{NonBouncing: nonBouncing},
	)
}
