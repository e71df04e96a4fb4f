package tournament

// Groups are the team ids sent to each phase 2 bracket.
type Groups struct {
	Winners     []int `json:"winners"`
	Consolation []int `json:"consolation"`
}

// SplitGroups splits the phase 1 ranking into the winners and consolation
// groups. The winners group takes the top half, rounded up for an odd
// count, plus one more team when an even count is not a multiple of 4, so
// it is never smaller than the consolation group.
func SplitGroups(rankedIDs []int) Groups {
	n := len(rankedIDs)
	winnersCount := (n + 1) / 2
	if n%2 == 0 && n%4 != 0 {
		winnersCount++
	}

	return Groups{
		Winners:     append([]int{}, rankedIDs[:winnersCount]...),
		Consolation: append([]int{}, rankedIDs[winnersCount:]...),
	}
}
