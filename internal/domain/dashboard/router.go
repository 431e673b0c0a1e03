package dashboard

import (
	"paisagem-app/internal/domain/profiles"
)

// View is the closed set of dashboard states. Resolve always returns
// exactly one of these; there is no fallthrough that could leak
// another role's dashboard.
type View int

const (
	ViewLoading View = iota
	ViewNoProfile
	ViewBuyer
	ViewArtist
	ViewAdmin
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewNoProfile:
		return "no_profile"
	case ViewBuyer:
		return "buyer"
	case ViewArtist:
		return "artist"
	case ViewAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Resolve is a pure dispatch over (loading, profile). While loading
// it never guesses a role. A missing profile is its own state, not a
// default to buyer: it covers the "identity created, profile missing"
// gap after a failed provisioning call. Role dispatch maps buyer and
// any unrecognized stored value to the buyer view.
func Resolve(loading bool, p *profiles.Profile) View {
	if loading {
		return ViewLoading
	}
	if p == nil {
		return ViewNoProfile
	}
	switch p.Role {
	case profiles.RoleArtist:
		return ViewArtist
	case profiles.RoleAdmin:
		return ViewAdmin
	case profiles.RoleBuyer:
		return ViewBuyer
	default:
		return ViewBuyer
	}
}
