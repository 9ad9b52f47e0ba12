package shared

// Actor identifies who issued a command and which project the session is
// scoped to. It is resolved once at the transport boundary and passed down
// explicitly; use cases never read identity from ambient state.
type Actor struct {
	UserID    int64
	ProjectID int64
}

func (a Actor) Valid() bool {
	return a.UserID > 0
}
