package domain

type Role string

const (
	RoleOperator  Role = "operator"
	RoleNavigator Role = "navigator"
	RoleCollector Role = "collector"
	RolePhysicist Role = "physicist"

	// RoleObserver is the overflow role once the vocabulary is exhausted.
	RoleObserver Role = "observer"
)

var roleVocabulary = []Role{
	RoleOperator,
	RoleNavigator,
	RoleCollector,
	RolePhysicist,
}

// NextRole returns the first vocabulary role not yet held by any of the given
// players, in vocabulary order. Deterministic for a given join order, which
// makes role assignment reproducible from the session's membership alone.
func NextRole(players []Player) Role {
	held := make(map[Role]struct{}, len(players))
	for _, p := range players {
		held[p.Role] = struct{}{}
	}

	for _, role := range roleVocabulary {
		if _, taken := held[role]; !taken {
			return role
		}
	}

	return RoleObserver
}
