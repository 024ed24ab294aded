package lifecycle

import (
	"fmt"

	"lifecycle-generator/internal/diagnostic"
)

// CheckShape validates the contributor methods of a role: every contributor
// must return void, and dispose/finalizer contributors take no parameters.
// Violations are reported at the contributor's declaration site.
func CheckShape(lc *TypeLifecycle, role Role) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	for _, m := range lc.Contributors(role) {
		if role != RoleConstructor && len(m.Parameters) > 0 {
			diags.AddError(diagnostic.CodeContributorParameters,
				fmt.Sprintf("You cannot define any parameter on your %s method %s.",
					phaseName(role), m.LocationText()),
				lc.Name(), m.Location)
		}

		if !m.ReturnsVoid() {
			diags.AddError(diagnostic.CodeContributorReturnType,
				fmt.Sprintf("The return type of %s must be 'void' (found '%s').", m.LocationText(), m.ReturnType),
				lc.Name(), m.Location)
		}
	}

	return diags
}

func phaseName(role Role) string {
	switch role {
	case RoleConstructor:
		return "constructor"
	case RoleDispose:
		return "dispose"
	default:
		return "finalizer"
	}
}
