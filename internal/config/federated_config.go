package config

type FederatedConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURL() string
}

type Federated struct{}

var _ FederatedConfig = Federated{}

func (Federated) GetGoogleClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (Federated) GetGoogleClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}

// GetGoogleRedirectURL defaults to the loopback address Google's console
// accepts for installed applications.
func (Federated) GetGoogleRedirectURL() string {
	return GetEnv("GOOGLE_REDIRECT_URL", "http://127.0.0.1/oauth2/callback")
}
