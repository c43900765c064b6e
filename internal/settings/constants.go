package settings

// Session cookie and seed constants.
const (
	// SessionCookieName is the session cookie name.
	SessionCookieName = "session"
	// SessionMaxAgeSeconds is the default cookie lifetime (7 days).
	SessionMaxAgeSeconds = 60 * 60 * 24 * 7
	// SessionRememberMaxAgeSeconds is the "remember me" cookie lifetime (30 days).
	SessionRememberMaxAgeSeconds = 60 * 60 * 24 * 30

	// ConfigEmpresaID keys the company-config singleton row.
	ConfigEmpresaID = "config"

	// DefaultAdminUsername is the seeded administrator login.
	DefaultAdminUsername = "admin"
	// DefaultAdminPassword is the seeded administrator password.
	DefaultAdminPassword = "admin123"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 4

	// LoginPath is where unauthenticated requests are redirected.
	LoginPath = "/login"
	// ClienteHomePath is the default landing route for cliente accounts.
	ClienteHomePath = "/pedidos"
)

// PublicPaths lists routes reachable without a session.
var PublicPaths = []string{"/login", "/healthz", "/metrics"}

// ClienteAllowedPrefixes lists the route prefixes a cliente account may
// visit; anything else redirects to ClienteHomePath.
var ClienteAllowedPrefixes = []string{"/pedidos", "/orcamentos/salvos"}
