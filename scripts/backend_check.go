// scripts/backend_check.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mwiater/tccc/internal/appconfig"
	"github.com/mwiater/tccc/internal/providerfactory"
	"github.com/mwiater/tccc/internal/providers"
)

const probeContext = "[Source 1 - Page 1]\nApply a tourniquet 2-3 inches above the wound for life-threatening extremity bleeding."

func main() {
	defaults := appconfig.Defaults()
	hostURL := flag.String("url", defaults.Host.URL, "generation backend base URL")
	modelName := flag.String("model", defaults.Host.Model, "model name for the generation probe")
	backend := flag.String("backend", defaults.Host.Type, "backend type (ollama or openai)")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP timeout")
	flag.Parse()

	cfg := defaults
	cfg.Host.URL = *hostURL
	cfg.Host.Model = *modelName
	cfg.Host.Type = *backend
	cfg.TimeoutSeconds = int(timeout.Seconds())
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Target host: %s (%s)\n", cfg.Host.URL, cfg.BackendType())
	fmt.Printf("Target model: %s\n\n", cfg.Host.Model)

	client := &http.Client{Timeout: *timeout}
	if err := checkModels(client, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "models check failed: %v\n", err)
	}

	gen, err := providerfactory.NewGenerator(&cfg, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backend error: %v\n", err)
		os.Exit(1)
	}
	defer gen.Close()

	ok := probeGeneration(gen, "with context", probeContext)
	ok = probeGeneration(gen, "without context", "") && ok
	if !ok {
		os.Exit(1)
	}
}

// checkModels lists the models the backend reports as available.
func checkModels(client *http.Client, cfg appconfig.Config) error {
	path := "/api/tags"
	if cfg.BackendType() == appconfig.BackendOpenAI {
		path = "/models"
	}
	endpoint := strings.TrimRight(cfg.Host.URL, "/") + path
	fmt.Printf("== %s ==\n", path)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("Status: %s\n", resp.Status)

	names := parseModelNames(body)
	if len(names) == 0 {
		fmt.Println("Raw:")
		fmt.Println(indentJSON(body))
		fmt.Println()
		return nil
	}
	found := false
	fmt.Printf("Models: %d\n", len(names))
	for _, name := range names {
		marker := " "
		if name == cfg.Host.Model {
			marker = "*"
			found = true
		}
		fmt.Printf("  %s %s\n", marker, name)
	}
	if !found {
		fmt.Printf("Model %q is not listed; pull it before querying.\n", cfg.Host.Model)
	}
	fmt.Println()
	return nil
}

func probeGeneration(gen providers.Generator, label, excerpt string) bool {
	fmt.Printf("== generate (%s) ==\n", label)
	start := time.Now()
	text, err := gen.Generate(context.Background(), providers.Request{
		Query:   "tourniquet application steps",
		Context: excerpt,
		Options: providers.DefaultOptions(),
	})
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("failed after %.1fs [%s]: %s\n\n", elapsed.Seconds(), providers.Kind(err), providers.Describe(err))
		return false
	}
	if len(text) > 300 {
		text = text[:300] + "..."
	}
	fmt.Printf("ok in %.1fs:\n%s\n\n", elapsed.Seconds(), text)
	return true
}

// parseModelNames understands both the Ollama tags listing and the OpenAI models listing.
func parseModelNames(body []byte) []string {
	var listing struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil
	}
	var names []string
	for _, m := range listing.Models {
		names = append(names, m.Name)
	}
	for _, m := range listing.Data {
		names = append(names, m.ID)
	}
	return names
}

func indentJSON(body []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return string(body)
	}
	return out.String()
}
