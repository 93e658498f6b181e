// Command psistub serves a deterministic PageSpeed-style endpoint for
// exercising the HTTP scorer locally without burning API quota.
//
// Usage:
//
//	go run ./cmd/psistub -addr :9081
//	PAGEPULSE_PSI_BASE_URL=http://localhost:9081 go run ./cmd -url https://example.com/
package main

import (
	"encoding/json"
	"flag"
	"hash/fnv"
	"log"
	"net/http"
	"time"
)

// Score range for derived stub scores.
const (
	scoreFloor = 40
	scoreSpan  = 61
)

// Response latency, so runs feel like the real tool.
const simulatedLatency = 300 * time.Millisecond

func main() {
	addr := flag.String("addr", ":9081", "Listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/runPagespeed", handleRunPagespeed)

	log.Printf("psistub listening on %s", *addr)
	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func handleRunPagespeed(w http.ResponseWriter, r *http.Request) {
	pageURL := r.URL.Query().Get("url")
	if pageURL == "" {
		http.Error(w, `missing "url" query parameter`, http.StatusBadRequest)
		return
	}

	time.Sleep(simulatedLatency)

	categories := map[string]map[string]float64{
		"performance":    {"score": derive(pageURL, "performance")},
		"accessibility":  {"score": derive(pageURL, "accessibility")},
		"best-practices": {"score": derive(pageURL, "best-practices")},
		"seo":            {"score": derive(pageURL, "seo")},
	}
	body := map[string]any{
		"lighthouseResult": map[string]any{
			"categories": categories,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
	log.Printf("scored %s", pageURL)
}

// derive hashes url+category into a stable 0-1 score.
func derive(url, category string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(url))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(category))
	return float64(scoreFloor+int(h.Sum32()%scoreSpan)) / 100
}
