package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	RegistryBackendMemory   = "memory"
	RegistryBackendPostgres = "postgres"
	RegistryBackendRemote   = "remote"
)

type Registry struct {
	// Which ledger keeps batch records: memory, postgres or remote
	Backend string

	// Template of the confirmation url, %s is replaced with the receipt reference
	ExplorerUrl string

	// Base url of the remote ledger API
	Url string

	// Secret sent to the remote ledger with every request
	ApiKey string

	// Time limit for requests. The timeout includes connection time, any
	// redirects, and reading the response body
	RequestTimeout time.Duration

	// Maximum amount of time a dial will wait for a connect to complete.
	DialerTimeout time.Duration

	// Interval between keep-alive probes for an active network connection.
	DialerKeepAlive time.Duration

	// Maximum amount of time an idle (keep-alive) connection will remain idle before closing itself.
	IdleConnTimeout time.Duration

	// Maximum amount of time waiting to wait for a TLS handshake
	TLSHandshakeTimeout time.Duration

	// Time in which max num of requests is enforced
	LimiterInterval time.Duration

	// Max num requests to the ledger per interval
	LimiterBurstSize int
}

func setRegistryDefaults() {
	viper.SetDefault("Registry.Backend", RegistryBackendMemory)
	viper.SetDefault("Registry.ExplorerUrl", "https://www.oklink.com/amoy/tx/%s")
	viper.SetDefault("Registry.Url", "http://localhost:8545")
	viper.SetDefault("Registry.ApiKey", "")
	viper.SetDefault("Registry.RequestTimeout", "30s")
	viper.SetDefault("Registry.DialerTimeout", "30s")
	viper.SetDefault("Registry.DialerKeepAlive", "15s")
	viper.SetDefault("Registry.IdleConnTimeout", "31s")
	viper.SetDefault("Registry.TLSHandshakeTimeout", "10s")
	viper.SetDefault("Registry.LimiterInterval", "100ms")
	viper.SetDefault("Registry.LimiterBurstSize", "20")
}
