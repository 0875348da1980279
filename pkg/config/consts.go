package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "CAMPUSMKT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CAMPUSMKT_DB_DSN"
	EnvDBHost = "CAMPUSMKT_DB_HOST"
	EnvDBUser = "CAMPUSMKT_DB_USER"
	EnvDBName = "CAMPUSMKT_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
