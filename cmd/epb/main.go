package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

const usage = "Usage: epb [health|version|shows|episodes <show>|session|open <hash>|check <i>|uncheck <i>|select-all|reverse|copy|watch <i>]"

func main() {
	baseURL := flag.String("server", envOr("EPB_SERVER_URL", "http://127.0.0.1:8080"), "URL du serveur (ex: http://127.0.0.1:8080)")
	timeout := flag.Duration("timeout", 30*time.Second, "Timeout HTTP")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	api := *baseURL + "/api/v1"

	switch args[0] {
	case "health":
		run(client, http.MethodGet, api+"/health", nil)
	case "version":
		run(client, http.MethodGet, api+"/version", nil)
	case "shows":
		run(client, http.MethodGet, api+"/shows", nil)
	case "episodes":
		run(client, http.MethodGet, api+"/shows/"+url.PathEscape(arg(args, 1))+"/episodes", nil)
	case "session":
		run(client, http.MethodGet, api+"/session", nil)
	case "open":
		run(client, http.MethodPost, api+"/session/hash", map[string]string{"hash": arg(args, 1)})
	case "check", "uncheck", "watch":
		run(client, http.MethodPost, api+"/session/items/"+indexArg(args)+"/"+args[0], nil)
	case "select-all":
		run(client, http.MethodPost, api+"/session/select-all", nil)
	case "reverse":
		run(client, http.MethodPost, api+"/session/reverse-selection", nil)
	case "copy":
		run(client, http.MethodPost, api+"/session/copy-selected", nil)
	default:
		fmt.Fprintln(os.Stderr, "Commande inconnue:", args[0])
		os.Exit(2)
	}
}

func arg(args []string, i int) string {
	if len(args) <= i {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	return args[i]
}

func indexArg(args []string) string {
	raw := arg(args, 1)
	if n, err := strconv.Atoi(raw); err != nil || n < 0 {
		fmt.Fprintln(os.Stderr, "Index invalide:", raw)
		os.Exit(2)
	}
	return raw
}

func run(client *http.Client, method, target string, body any) {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Erreur:", err)
			os.Exit(1)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, target, r)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erreur:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	var pretty any
	if err := json.Unmarshal(b, &pretty); err == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(pretty)
		if resp.StatusCode >= 400 {
			os.Exit(1)
		}
		return
	}

	os.Stdout.Write(b)
	os.Stdout.Write([]byte("\n"))
	if resp.StatusCode >= 400 {
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
