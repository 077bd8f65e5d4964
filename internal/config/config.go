package config

type Config interface {
	EnvConfig
	FederatedConfig
	ClientConfig
}

type mainConfig struct {
	EnvVars
	Federated
	Client
}

func New() Config {
	return mainConfig{}
}
