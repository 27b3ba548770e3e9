package auth

const (
	// ClientID is the public client registered for the desktop login flow.
	ClientID = "00000000402B5328"
	// Scope grants the RPS ticket the Xbox user service accepts.
	Scope = "service::user.auth.xboxlive.com::MBI_SSL"

	xboxRelyingParty = "http://auth.xboxlive.com"
	gameRelyingParty = "rp://api.minecraftservices.com/"
	xboxSiteName     = "user.auth.xboxlive.com"
)

// Endpoints lists every URL the Microsoft flow talks to. Tests point them at
// an httptest server.
type Endpoints struct {
	Authorize string
	Redirect  string
	Token     string
	XBL       string
	XSTS      string
	GameLogin string
	Profile   string
}

func DefaultEndpoints() Endpoints {
	return Endpoints{
		Authorize: "https://login.live.com/oauth20_authorize.srf",
		Redirect:  "https://login.live.com/oauth20_desktop.srf",
		Token:     "https://login.live.com/oauth20_token.srf",
		XBL:       "https://user.auth.xboxlive.com/user/authenticate",
		XSTS:      "https://xsts.auth.xboxlive.com/xsts/authorize",
		GameLogin: "https://api.minecraftservices.com/launcher/login",
		Profile:   "https://api.minecraftservices.com/minecraft/profile",
	}
}
