package model

// User is the persisted record for one bookkeeper.
type User struct {
	Username    string
	Password    string // stored as given
	Journal     Journal
	Adjustments Journal
}

// Clone returns a deep copy of the user's journals.
func (u User) Clone() User {
	u.Journal = u.Journal.Clone()
	u.Adjustments = u.Adjustments.Clone()
	return u
}
