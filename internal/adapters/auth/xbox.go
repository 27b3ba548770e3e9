package auth

import (
	"fmt"

	"github.com/bnema/launcher-core/internal/domain"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type xboxAuthProperties struct {
	AuthMethod string `json:"AuthMethod"`
	SiteName   string `json:"SiteName"`
	RpsTicket  string `json:"RpsTicket"`
}

type xboxAuthRequest struct {
	Properties   xboxAuthProperties `json:"Properties"`
	RelyingParty string             `json:"RelyingParty"`
	TokenType    string             `json:"TokenType"`
}

type xstsProperties struct {
	SandboxID  string   `json:"SandboxId"`
	UserTokens []string `json:"UserTokens"`
}

type xstsRequest struct {
	Properties   xstsProperties `json:"Properties"`
	RelyingParty string         `json:"RelyingParty"`
	TokenType    string         `json:"TokenType"`
}

type xboxTokenResponse struct {
	Token         string                      `json:"Token"`
	DisplayClaims map[string][]map[string]any `json:"DisplayClaims"`
}

// userHash returns DisplayClaims.xui[0].uhs.
func (r xboxTokenResponse) userHash() (string, error) {
	claims, ok := r.DisplayClaims["xui"]
	if !ok {
		return "", fmt.Errorf("%w: missing xui display claim", domain.ErrDecoding)
	}
	if len(claims) == 0 {
		return "", fmt.Errorf("%w: empty xui display claim", domain.ErrDecoding)
	}
	uhs, _ := claims[0]["uhs"].(string)
	if uhs == "" {
		return "", fmt.Errorf("%w: missing uhs in xui display claim", domain.ErrDecoding)
	}
	return uhs, nil
}

type gameLoginRequest struct {
	Platform string `json:"platform"`
	XToken   string `json:"xtoken"`
}

type gameTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type profileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newXboxAuthRequest(accessToken string) xboxAuthRequest {
	return xboxAuthRequest{
		Properties: xboxAuthProperties{
			AuthMethod: "RPS",
			SiteName:   xboxSiteName,
			RpsTicket:  accessToken,
		},
		RelyingParty: xboxRelyingParty,
		TokenType:    "JWT",
	}
}

func newXSTSRequest(xblToken string) xstsRequest {
	return xstsRequest{
		Properties: xstsProperties{
			SandboxID:  "RETAIL",
			UserTokens: []string{xblToken},
		},
		RelyingParty: gameRelyingParty,
		TokenType:    "JWT",
	}
}

func newGameLoginRequest(uhs, xstsToken string) gameLoginRequest {
	return gameLoginRequest{
		Platform: "PC_LAUNCHER",
		XToken:   fmt.Sprintf("XBL3.0 x=%s;%s", uhs, xstsToken),
	}
}
