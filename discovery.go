package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Credential holds connection parameters for one logical database.
type Credential struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// CredentialSet maps a logical database name (account, player, common, log)
// to its credential.
type CredentialSet map[string]*Credential

var logicalDatabases = []string{"account", "player", "common", "log"}

// Base directories game servers are commonly installed under, in probe order.
var configSearchPaths = []string{
	"/usr/game",
	"/usr/home/game",
	"/home/game",
	"/home/mt2",
	"/var/game",
	"/root/game",
	"/root/server",
	"/usr/local/game",
}

// Sub-directories that may hold a CONFIG, relative to each base directory.
var configSubDirs = []string{
	"",
	"auth",
	"db",
	"channel1",
	"channel2",
	"channel3",
	"channel4",
	"game1",
	"game99",
	"g1/auth",
	"g1/db",
	"g1/channel1",
}

var configFileNames = []string{"CONFIG", "conf.txt", "Conf.txt", "db_conf.txt"}

// Both historical key conventions appear in the wild: PLAYER_SQL and
// SQL_PLAYER, with either ":" or "=" separating the four values.
var credentialPatterns = map[string]*regexp.Regexp{
	"player":  regexp.MustCompile(`(?im)^\s*(?:PLAYER_SQL|SQL_PLAYER)\s*[:=]\s*(\S+)\s+(\S+)\s+(\S+)\s+(\S+)`),
	"account": regexp.MustCompile(`(?im)^\s*(?:ACCOUNT_SQL|SQL_ACCOUNT)\s*[:=]\s*(\S+)\s+(\S+)\s+(\S+)\s+(\S+)`),
	"common":  regexp.MustCompile(`(?im)^\s*(?:COMMON_SQL|SQL_COMMON)\s*[:=]\s*(\S+)\s+(\S+)\s+(\S+)\s+(\S+)`),
	"log":     regexp.MustCompile(`(?im)^\s*(?:LOG_SQL|SQL_LOG)\s*[:=]\s*(\S+)\s+(\S+)\s+(\S+)\s+(\S+)`),
}

// discoverCredentials scans the default search paths for a game server CONFIG
// and extracts database credentials from the first file that yields any.
// It never returns an error: unreadable files and missing directories are
// treated as "not found".
func discoverCredentials() (CredentialSet, []string) {
	return discoverCredentialsIn(configSearchPaths)
}

func discoverCredentialsIn(baseDirs []string) (CredentialSet, []string) {
	trail := []string{"starting credential discovery"}

	for _, base := range baseDirs {
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			continue
		}
		trail = append(trail, "scanning "+base)

		for _, sub := range configSubDirs {
			dir := base
			if sub != "" {
				dir = filepath.Join(base, sub)
			}
			if info, err := os.Stat(dir); err != nil || !info.IsDir() {
				continue
			}

			for _, name := range configFileNames {
				path := filepath.Join(dir, name)
				content, err := os.ReadFile(path)
				if err != nil {
					continue
				}
				trail = append(trail, "found "+path)

				creds := parseServerConfig(content)
				if creds == nil {
					// File exists but holds no usable credentials; keep going.
					continue
				}
				trail = append(trail, "parsed credentials from "+path)
				return creds, trail
			}
		}
	}

	trail = append(trail, "no usable CONFIG found")
	return nil, trail
}

// parseServerConfig extracts per-database credentials from CONFIG content.
// Returns nil unless at least one of player, account or common is present;
// missing logical databases are synthesized from the first one found, with
// the logical name as database name.
func parseServerConfig(content []byte) CredentialSet {
	found := CredentialSet{}

	for logical, pattern := range credentialPatterns {
		m := pattern.FindSubmatch(content)
		if m == nil {
			continue
		}
		host := string(m[1])
		if host == "localhost" {
			host = "127.0.0.1"
		}
		found[logical] = &Credential{
			Host:     host,
			Port:     3306,
			User:     string(m[2]),
			Password: string(m[3]),
			Database: string(m[4]),
		}
	}

	// Best-effort fallback: one credential is enough, the game server
	// almost always uses the same MySQL account for all four schemas.
	var base *Credential
	for _, logical := range []string{"player", "account", "common"} {
		if found[logical] != nil {
			base = found[logical]
			break
		}
	}
	if base == nil {
		return nil
	}

	for _, logical := range logicalDatabases {
		if found[logical] != nil {
			continue
		}
		found[logical] = &Credential{
			Host:     base.Host,
			Port:     base.Port,
			User:     base.User,
			Password: base.Password,
			Database: logical,
		}
	}
	return found
}

// redacted returns a loggable description with the password hidden.
func (c *Credential) redacted() string {
	return fmt.Sprintf("%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}
