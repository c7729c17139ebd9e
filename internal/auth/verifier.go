package auth

import "crypto/subtle"

// Verifier decides whether a username/password pair may act as role.
type Verifier interface {
	Verify(role Role, username, password string) bool
}

// Credentials is a single username/password pair.
type Credentials struct {
	Username string
	Password string
}

// StaticVerifier accepts exactly one literal pair per role.
type StaticVerifier struct {
	pairs map[Role]Credentials
}

// NewStaticVerifier builds a verifier from the given pairs. Roles without a
// pair never verify.
func NewStaticVerifier(pairs map[Role]Credentials) *StaticVerifier {
	cp := make(map[Role]Credentials, len(pairs))
	for role, c := range pairs {
		cp[role] = c
	}
	return &StaticVerifier{pairs: cp}
}

// DefaultVerifier returns the stock student/1234 and warden/5678 pairs.
func DefaultVerifier() *StaticVerifier {
	return NewStaticVerifier(map[Role]Credentials{
		RoleStudent: {Username: "student", Password: "1234"},
		RoleWarden:  {Username: "warden", Password: "5678"},
	})
}

// Verify compares in constant time.
func (v *StaticVerifier) Verify(role Role, username, password string) bool {
	want, ok := v.pairs[role]
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(want.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(want.Password)) == 1
	return userOK && passOK
}
