package updown

import "testing"

func TestDealPointsTable(t *testing.T) {
	cases := []struct {
		bid, taken, want int
	}{
		{0, 0, 5},
		{0, 1, 1},
		{0, 9, 9},
		{1, 1, 10},
		{9, 9, 90},
		{3, 3, 30},
		{3, 1, -20},
		{5, 0, -50},
		{2, 4, 4},
		{1, 9, 9},
	}
	for _, c := range cases {
		if got := DealPoints(c.bid, c.taken); got != c.want {
			t.Errorf("DealPoints(%d, %d) = %d, want %d", c.bid, c.taken, got, c.want)
		}
	}
}

func TestScoringRoundTrip(t *testing.T) {
	for bid := 0; bid <= 9; bid++ {
		for taken := 0; taken <= 9; taken++ {
			if bid == 0 && taken == 5 {
				// Documented collision: DealPoints(0,5) == DealPoints(0,0) == 5.
				// The inverse resolves 5 points on a zero bid as a made bid.
				continue
			}
			points := DealPoints(bid, taken)
			if got := TakenFromDealPoints(bid, points); got != taken {
				t.Errorf("TakenFromDealPoints(%d, %d) = %d, want %d", bid, points, got, taken)
			}
		}
	}
}

func TestTakenFromDealPointsZeroBidBranchOrder(t *testing.T) {
	// The zero-bid branch must be checked first: 5 points on a zero bid is
	// the made-bid bonus, never an overtake of 5 tricks.
	if got := TakenFromDealPoints(0, 5); got != 0 {
		t.Fatalf("TakenFromDealPoints(0, 5) = %d, want 0", got)
	}
	if got := TakenFromDealPoints(0, 3); got != 3 {
		t.Fatalf("TakenFromDealPoints(0, 3) = %d, want 3", got)
	}
	if got := TakenFromDealPoints(4, -30); got != 1 {
		t.Fatalf("TakenFromDealPoints(4, -30) = %d, want 1", got)
	}
}
