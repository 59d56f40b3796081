package domain

type VoteKind string

const (
	VoteStillThere VoteKind = "still-there"
	VoteGone       VoteKind = "gone"
)

type VoteResult int

const (
	VoteAccepted VoteResult = iota
	VoteUnknownHazard
	VoteAlreadyCast
	VoteRateLimited
	VoteInvalid
)

func (r VoteResult) String() string {
	switch r {
	case VoteAccepted:
		return "accepted"
	case VoteUnknownHazard:
		return "unknown_hazard"
	case VoteAlreadyCast:
		return "already_voted"
	case VoteRateLimited:
		return "rate_limited"
	default:
		return "invalid"
	}
}
