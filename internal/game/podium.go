package game

// RecordWin appends a podium entry for the claimant and returns it together
// with the full updated podium. Claims from users outside the eligible-winner
// set, and repeat claims from users already on the podium, are dropped with
// ok=false. Placement is arrival order of accepted claims, starting at 1.
func RecordWin(g *Game, claimant Player) (PodiumEntry, []PodiumEntry, bool) {
	if !g.IsEligibleWinner(claimant.ID) {
		return PodiumEntry{}, nil, false
	}
	if g.OnPodium(claimant.ID) {
		return PodiumEntry{}, nil, false
	}

	entry := PodiumEntry{
		UserID:    claimant.ID,
		Name:      claimant.Name,
		Placement: len(g.Podium) + 1,
	}
	podium := make([]PodiumEntry, 0, len(g.Podium)+1)
	podium = append(podium, g.Podium...)
	podium = append(podium, entry)
	return entry, podium, true
}
