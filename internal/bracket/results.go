package bracket

// Podium holds the first three places of one bracket, NoTeam where a place
// has not been decided.
type Podium struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
}

type Results struct {
	Winners      Podium `json:"winners"`
	Consolation  Podium `json:"consolation"`
	BothFinished bool   `json:"bothFinished"`
}

// IsComplete reports whether the final has been decided.
func IsComplete(root *Node) bool {
	return root != nil && root.Resolved()
}

// IsConsolationComplete reports whether the match for third place has been
// decided.
func IsConsolationComplete(root *Node) bool {
	return root != nil && root.Consolation != nil && root.Consolation.Resolved()
}

// PodiumOf reads the places of a bracket. First and second are only set
// once the final is decided, third once the consolation match is.
func PodiumOf(root *Node) Podium {
	var p Podium
	if !IsComplete(root) {
		return p
	}
	p.First, _ = root.Winner()
	p.Second, _ = root.Loser()
	if IsConsolationComplete(root) {
		p.Third, _ = root.Consolation.Winner()
	}
	return p
}

// ExtractResults reads the podiums of both phase 2 brackets.
func ExtractResults(winners, consolation *Node) Results {
	return Results{
		Winners:      PodiumOf(winners),
		Consolation:  PodiumOf(consolation),
		BothFinished: IsComplete(winners) && IsComplete(consolation),
	}
}
