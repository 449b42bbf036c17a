package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr        string
	DBUrl       string
	TokenSecret string
	TokenTTL    time.Duration
	RefreshTTL  time.Duration
	Debug       bool
}

// fileConfig mirrors Config in the optional TOML file.
// TTLs use the same units as the corresponding flags.
type fileConfig struct {
	Host        string `toml:"host"`
	Port        uint   `toml:"port"`
	DBUrl       string `toml:"db_url"`
	TokenSecret string `toml:"token_secret"`
	TokenTTL    uint   `toml:"token_ttl"`
	RefreshTTL  uint   `toml:"refresh_ttl"`
	Debug       bool   `toml:"debug"`
}

func ParseFlags() (Config, error) {
	return parse(flag.CommandLine, os.Args[1:])
}

// parse reads flags, then the config file named by -config if any.
// Flags given explicitly on the command line win over file values.
func parse(fs *flag.FlagSet, args []string) (cfg Config, err error) {
	var file string
	fs.StringVar(&file, "config", "", "path to a TOML config file")
	var host string
	fs.StringVar(&host, "host", "0.0.0.0", "listen host name (default 0.0.0.0)")
	var port uint
	fs.UintVar(&port, "port", 8080, "listen port number (default 8080)")
	var dbUrl string
	fs.StringVar(&dbUrl, "db-url", "registry.sqlite", "path to SQLite3 DB file (default registry.sqlite)")
	var secret string
	fs.StringVar(&secret, "token-secret", "", "secret key for token encryption and decryption")
	var ttl uint
	fs.UintVar(&ttl, "token-ttl", 120, "access token TTL in seconds (default 120)")
	var refreshTTL uint
	fs.UintVar(&refreshTTL, "refresh-ttl", 720, "refresh token TTL in hours (default 720)")
	var debug bool
	fs.BoolVar(&debug, "debug", false, "log at DEBUG level")

	err = fs.Parse(args)
	if err != nil {
		return
	}

	explicit := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if file != "" {
		fc := fileConfig{}
		_, err = toml.DecodeFile(file, &fc)
		if err != nil {
			return
		}
		if !explicit["host"] && fc.Host != "" {
			host = fc.Host
		}
		if !explicit["port"] && fc.Port != 0 {
			port = fc.Port
		}
		if !explicit["db-url"] && fc.DBUrl != "" {
			dbUrl = fc.DBUrl
		}
		if !explicit["token-secret"] && fc.TokenSecret != "" {
			secret = fc.TokenSecret
		}
		if !explicit["token-ttl"] && fc.TokenTTL != 0 {
			ttl = fc.TokenTTL
		}
		if !explicit["refresh-ttl"] && fc.RefreshTTL != 0 {
			refreshTTL = fc.RefreshTTL
		}
		if !explicit["debug"] && fc.Debug {
			debug = true
		}
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.DBUrl = dbUrl
	cfg.TokenSecret = secret
	cfg.TokenTTL = time.Duration(ttl) * time.Second
	cfg.RefreshTTL = time.Duration(refreshTTL) * time.Hour
	cfg.Debug = debug

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}
