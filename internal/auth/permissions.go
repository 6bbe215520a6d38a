package auth

// CanAccess is the single authorization predicate. A nil user, an unknown
// panel, or an absent capability record all deny; the lookup can never
// panic or silently grant.
func CanAccess(user *User, panel Panel, action Action) bool {
	if user == nil {
		return false
	}
	cap, ok := user.Permissions[panel]
	if !ok {
		return false
	}
	return cap.Allows(action)
}
