package authn

// AnonymousID is the principal id carried by every request that has not
// been authenticated.
const AnonymousID = "Anonymous"

// Well-known authentication types.
const (
	TypeUnknown     = "UNKNOWN"
	TypeBasic       = "BASIC"
	TypeCredentials = "CREDENTIALS"
	TypeWebAuthn    = "WEBAUTHN"
	TypeSession     = "SESSION"
	TypeJWTBearer   = "JWT_BEARER"
)

// Well-known claim names.
const (
	ClaimUsername   = "Username"
	ClaimEmail      = "Email"
	ClaimFirstName  = "FirstName"
	ClaimLastName   = "LastName"
	ClaimRoles      = "Roles"
	ClaimProfilePic = "ProfilePic"
	ClaimLoginTime  = "LoginTime"
	ClaimAuthType   = "AuthType"
)

// Principal is an authenticated identity and its claims.
// A Principal is immutable after construction; replacing the identity means
// constructing a new Principal.
type Principal struct {
	ID     string         `json:"id"`
	Claims map[string]any `json:"claims,omitempty"`
}

// NewPrincipal creates a principal with the given id and claims.
// The claims map is copied so later mutation of the argument cannot leak in.
func NewPrincipal(id string, claims map[string]any) *Principal {
	c := make(map[string]any, len(claims))
	for k, v := range claims {
		c[k] = v
	}
	return &Principal{ID: id, Claims: c}
}

// Anonymous returns the anonymous sentinel principal.
func Anonymous() *Principal {
	return &Principal{ID: AnonymousID}
}

// IsAnonymous reports whether the principal is the anonymous sentinel.
func (p *Principal) IsAnonymous() bool {
	return p == nil || p.ID == AnonymousID
}

// HasClaim reports whether a non-empty claim exists under the given name.
func (p *Principal) HasClaim(name string) bool {
	if p == nil || p.Claims == nil {
		return false
	}
	v, ok := p.Claims[name]
	return ok && v != nil
}

// Claim returns the claim value by name.
func (p *Principal) Claim(name string) (any, bool) {
	if p == nil || p.Claims == nil {
		return nil, false
	}
	v, ok := p.Claims[name]
	return v, ok
}

// StringClaim returns a string claim or the fallback if the claim is missing
// or not a string.
func (p *Principal) StringClaim(name, fallback string) string {
	if v, ok := p.Claim(name); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return fallback
}

// Authentication holds the current principal and the mechanism that
// established it. It is owned by a single request context and mutated in
// place as middlewares authenticate, restore, or clear the identity.
type Authentication struct {
	authType  string
	principal *Principal
}

// New creates an Authentication with the given type and principal.
// A nil principal defaults to anonymous.
func New(authType string, principal *Principal) *Authentication {
	if principal == nil {
		principal = Anonymous()
	}
	return &Authentication{authType: authType, principal: principal}
}

// NewAnonymous creates the request-start state: UNKNOWN type, anonymous
// principal.
func NewAnonymous() *Authentication {
	return New(TypeUnknown, Anonymous())
}

// Type returns the authentication type.
func (a *Authentication) Type() string {
	return a.authType
}

// Principal returns the current principal. Never nil.
func (a *Authentication) Principal() *Principal {
	if a.principal == nil {
		return Anonymous()
	}
	return a.principal
}

// IsAuthenticated reports whether a non-anonymous principal is attached.
func (a *Authentication) IsAuthenticated() bool {
	return !a.Principal().IsAnonymous()
}

// Authenticate replaces the current principal with one established from
// credentials presented on this request.
func (a *Authentication) Authenticate(p *Principal) {
	if p == nil {
		p = Anonymous()
	}
	a.authType = TypeCredentials
	a.principal = p
}

// Restore copies type and principal from a previously persisted
// Authentication, typically rebuilt from session state.
func (a *Authentication) Restore(other *Authentication) {
	if other == nil {
		return
	}
	a.authType = other.authType
	a.principal = other.Principal()
}

// Clear resets to the request-start state: anonymous principal, UNKNOWN type.
func (a *Authentication) Clear() {
	a.authType = TypeUnknown
	a.principal = Anonymous()
}
