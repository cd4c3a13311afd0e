package updown

// DealPoints converts a deal's (bid, tricks taken) into points:
//
//	bid 0, took 0            -> +5
//	bid 0, took n > 0        -> +n
//	made the bid exactly     -> +10 x bid
//	fell short               -> -10 x shortfall
//	overtook a positive bid  -> +tricks taken
func DealPoints(bid, taken int) int {
	if bid == 0 {
		if taken == 0 {
			return 5
		}
		return taken
	}
	if taken == bid {
		return 10 * bid
	}
	if taken < bid {
		return -10 * (bid - taken)
	}
	return taken
}

// TakenFromDealPoints recovers tricks taken from a persisted (bid, points)
// pair. It is the exact inverse of DealPoints; the analytics layer relies on
// it to rebuild bid accuracy from stored points alone. The branch order
// mirrors DealPoints (bid zero, exact make, shortfall, overtake) and must not
// be reordered: points values can collide across branches, and reordering
// would misclassify recovered values.
func TakenFromDealPoints(bid, points int) int {
	if bid == 0 {
		if points == 5 {
			return 0
		}
		return points
	}
	if points == 10*bid {
		return bid
	}
	if points < 0 {
		return bid + points/10
	}
	return points
}
