package app

// Session reports whether a user is signed in.
// Viewing a thread never needs one; replying, liking and bookmarking do.
type Session interface {
	IsAuthenticated() bool
}
