package auth

import "github.com/caredesk-hq/caredesk/internal/rbac"

type scopeView struct {
	Kind       rbac.ScopeKind `json:"kind"`
	CustomerID int64          `json:"customer_id,omitempty"`
}

type decisionView struct {
	Authorized  bool       `json:"authorized"`
	Scope       *scopeView `json:"scope,omitempty"`
	Reason      string     `json:"reason,omitempty"`
	Alternative string     `json:"alternative,omitempty"`
}

func decisionPayload(decision rbac.Decision) decisionView {
	view := decisionView{
		Authorized:  decision.Authorized,
		Reason:      decision.Reason,
		Alternative: decision.Alternative,
	}
	if decision.Authorized {
		view.Scope = &scopeView{
			Kind:       decision.Scope.Kind,
			CustomerID: decision.Scope.CustomerID,
		}
	}
	return view
}
