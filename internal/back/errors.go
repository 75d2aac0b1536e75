package back

import "drafthall/internal/util"

// The failure kinds every operation can surface, all safe to echo to an API
// client. Wrap them with fmt.Errorf("%w: …") to add context, match them with
// errors.Is.
const (
	ErrNotFound            = util.ErrPublic("the requested resource does not exist")
	ErrInvalidState        = util.ErrPublic("the lobby state does not allow this operation")
	ErrAlreadyPicked       = util.ErrPublic("this player has already been drafted to a team")
	ErrInvalidTeam         = util.ErrPublic("not a valid team for this lobby")
	ErrInsufficientPlayers = util.ErrPublic("not enough eligible players left to fill a lobby")
	ErrRoundNotFinished    = util.ErrPublic("the previous round still has unfinished lobbies")
	ErrMalformedLobby      = util.ErrPublic("the lobby does not have the expected number of participants")
)
