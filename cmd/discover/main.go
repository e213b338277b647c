package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Queries a running agent's /status endpoint and prints what the
// credential discovery found, with secrets redacted. Useful when
// setting up the panel on a new server and the agent refuses to
// connect to the game databases.

type statusResponse struct {
	Success           bool              `json:"success"`
	Err               string            `json:"error,omitempty"`
	AgentVersion      string            `json:"agent_version"`
	DatabaseConnected bool              `json:"database_connected"`
	DiscoveryLog      []string          `json:"discovery_log"`
	Config            map[string]string `json:"config"`
}

func main() {
	agentURL := flag.String("agent", "http://127.0.0.1:8080", "base URL of the running agent")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(*agentURL + "/status")
	if err != nil {
		fmt.Fprintf(os.Stderr, "agent unreachable: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		fmt.Fprintf(os.Stderr, "bad response from agent: %v\n", err)
		os.Exit(1)
	}
	if !status.Success {
		fmt.Fprintf(os.Stderr, "agent error: %s\n", status.Err)
		os.Exit(1)
	}

	fmt.Printf("agent %s\n", status.AgentVersion)
	fmt.Printf("database connected: %v\n", status.DatabaseConnected)

	fmt.Println("\ndiscovery log:")
	if len(status.DiscoveryLog) == 0 {
		fmt.Println("  (empty)")
	}
	for _, line := range status.DiscoveryLog {
		fmt.Printf("  %s\n", line)
	}

	fmt.Println("\nresolved credentials:")
	if len(status.Config) == 0 {
		fmt.Println("  (none)")
	}
	for logical, cred := range status.Config {
		fmt.Printf("  %-8s %s\n", logical, cred)
	}
}
