// Copyright (c) 2026 Dublix. All rights reserved.
// Author: dev@dublix.app

package guest

// Identity is the single synthetic user of a Dublix install.
//
// It is synthesized once per device, persisted, and never verified: there is
// no password and no server-side account behind it. All authored content is
// attributed to this identity.
type Identity struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ProfileRef is the attribution subset of an identity, keyed by user id in
// the persisted profile map. Comments store only a user id; display data is
// resolved through this map at read time.
type ProfileRef struct {
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
