package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses args into a partial [StructuredConfig]. Unset flags keep
// their zero value so that they do not override other sources.
//
// Flags:
//
//	-a reference server listen address in format [host]:[port]
//	-r remote store base URL used by the client
//	-d SQLite database path
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration identity token lifetime (e.g. "1h")
//	-request-timeout remote call timeout (e.g. "30s")
//	-token-url identity refresh endpoint
//	-api-key identity api key
//	-sync-interval scheduled sync period (e.g. "15m")
//	-probe-interval connectivity probe period (e.g. "30s")
//	-dev-sessions mount the unauthenticated development session endpoint
//	-quarantine-rejected move rejected records to the failed state
//	-log-file client log file path
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("fittrackr-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverAddress NetAddress
	var remoteAddress string
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var tokenURL string
	var apiKey string
	var syncInterval time.Duration
	var probeInterval time.Duration
	var quarantineRejected bool
	var devSessions bool
	var logFile string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote store base URL")
	fs.StringVar(&databaseDSN, "d", "", "SQLite database path")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&tokenURL, "token-url", "", "Identity token refresh endpoint")
	fs.StringVar(&apiKey, "api-key", "", "Identity api key")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Scheduled sync period (e.g., 15m)")
	fs.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe period (e.g., 30s)")
	fs.BoolVar(&devSessions, "dev-sessions", false, "Mount the development session endpoint")
	fs.BoolVar(&quarantineRejected, "quarantine-rejected", false, "Move rejected records to the failed state")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
			DevSessions:    devSessions,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
		},
		Identity: Identity{
			TokenURL: tokenURL,
			APIKey:   apiKey,
		},
		Workers: Workers{
			SyncInterval:       syncInterval,
			ProbeInterval:      probeInterval,
			QuarantineRejected: quarantineRejected,
		},
		Log:          Log{FilePath: logFile},
		JSONFilePath: jsonConfigPath,
		Args:         fs.Args(),
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
