package handlers

// identityFromSession resolves the caller identity from the submitted
// session cookie.
//
// TODO: look the identity up in the session store once auth lands; until
// then every request runs as the fixed test user.
func identityFromSession(sessionCookie string) (userID, userEmail string) {
	_ = sessionCookie
	return "123", "test@test.com"
}
