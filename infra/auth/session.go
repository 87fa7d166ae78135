package auth

// Session implements app.Session on top of a TokenProvider. It is
// considered authenticated whenever a token can be read.
type Session struct {
	tokens TokenProvider
}

// NewSession creates a Session reading from tp.
func NewSession(tp TokenProvider) *Session {
	return &Session{tokens: tp}
}

func (s *Session) IsAuthenticated() bool {
	if s == nil || s.tokens == nil {
		return false
	}
	token, err := s.tokens.AccessToken()
	return err == nil && token != ""
}
