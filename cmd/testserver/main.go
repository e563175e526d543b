//nolint:errcheck,forbidigo,gosec // test utility allows simpler error handling and direct output
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	status := flag.Int("status", http.StatusOK, "Status code to respond with")
	token := flag.String("token", "", "Expected OAuth token. Any token is accepted if empty")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 && *status == http.StatusOK {
		fmt.Println("Usage: testserver [options] <homework-statuses.json>")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var responsePath string
	if len(args) > 0 {
		responsePath = args[0]
		if _, err := os.Stat(responsePath); os.IsNotExist(err) {
			log.Fatalf("Response file does not exist: %s", responsePath)
		}
	}

	http.HandleFunc("/api/user_api/homework_statuses/", func(w http.ResponseWriter, r *http.Request) {
		fromDate := r.URL.Query().Get("from_date")
		log.Printf("Request from_date=%s", fromDate)

		auth := r.Header.Get("Authorization")
		if auth == "" || (*token != "" && auth != "OAuth "+*token) {
			writeJSON(w, http.StatusUnauthorized, `{"code":"not_authenticated","message":"Учетные данные не были предоставлены.","source":"__response__"}`)
			return
		}
		if _, err := strconv.ParseInt(fromDate, 10, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, `{"error":{"error":"Wrong from_date format"},"code":"UnknownError"}`)
			return
		}
		if *status != http.StatusOK {
			writeJSON(w, *status, fmt.Sprintf(`{"code":"forced","message":"forced status %d"}`, *status))
			return
		}

		serveJSONFile(w, responsePath)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Test server listening on %s", addr)
	log.Printf("Homework statuses -> http://localhost%s/api/user_api/homework_statuses/", addr)
	log.Printf("Set PRACTICUM_ENDPOINT to the URL above to use it")
	log.Println("\nThe response file is read on each request, so you can edit it while the server is running.")
	log.Println("Use the literal {{now}} in the file to substitute the current unix time.")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func serveJSONFile(w http.ResponseWriter, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read file: %v", err), http.StatusInternalServerError)
		log.Printf("Error reading %s: %v", path, err)
		return
	}

	body := strings.ReplaceAll(string(content), "{{now}}", strconv.FormatInt(time.Now().Unix(), 10))
	writeJSON(w, http.StatusOK, body)
	log.Printf("Served %s (%d bytes)", path, len(content))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
