package policy

// EntityKind is the closed set of scopable entity kinds.
type EntityKind int

const (
	KindApp EntityKind = iota
	KindDelivery
	KindDenyList
	KindAdmin
	KindTeam
)

func (k EntityKind) String() string {
	switch k {
	case KindApp:
		return "app"
	case KindDelivery:
		return "delivery"
	case KindDenyList:
		return "deny_list"
	case KindAdmin:
		return "admin"
	case KindTeam:
		return "team"
	}
	return "unknown"
}
