package domain

type AccountKind string

const (
	AccountKindMicrosoft AccountKind = "microsoft"
	AccountKindOffline   AccountKind = "offline"
)

func ParseAccountKind(value string) (AccountKind, bool) {
	switch AccountKind(value) {
	case AccountKindMicrosoft:
		return AccountKindMicrosoft, true
	case AccountKindOffline:
		return AccountKindOffline, true
	default:
		return "", false
	}
}

// Credentials is implemented only by the credential types in this package.
type Credentials interface {
	Kind() AccountKind
	credentials()
}

type MicrosoftCredentials struct {
	Access  string
	Refresh string
}

func (MicrosoftCredentials) Kind() AccountKind { return AccountKindMicrosoft }
func (MicrosoftCredentials) credentials()      {}

type OfflineCredentials struct{}

func (OfflineCredentials) Kind() AccountKind { return AccountKindOffline }
func (OfflineCredentials) credentials()      {}
