package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	httpmiddleware "github.com/wolfman30/window-quote/internal/http/middleware"
)

func main() {
	postalCode := ""
	if len(os.Args) > 1 {
		postalCode = os.Args[1]
	}

	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		fmt.Println("Error: ADMIN_JWT_SECRET environment variable not set")
		fmt.Println("Usage: go run ./scripts/list-leads [postal_code]")
		os.Exit(1)
	}

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080"
	}

	tokenString, err := mintToken(secret, time.Now())
	if err != nil {
		fmt.Printf("Error signing token: %v\n", err)
		os.Exit(1)
	}

	target := leadsURL(apiURL, postalCode)
	fmt.Printf("URL: %s\n", target)

	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		fmt.Printf("Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Authorization", "Bearer "+tokenString)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Error: HTTP %d\n", resp.StatusCode)
		fmt.Printf("Response: %s\n", string(body))
		os.Exit(1)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Response: %s\n", string(body))
	} else {
		prettyJSON, _ := json.MarshalIndent(result, "", "  ")
		fmt.Printf("%s\n", string(prettyJSON))
	}
}

// mintToken signs a short-lived admin token scoped to the lead listing.
func mintToken(secret string, now time.Time) (string, error) {
	claims := httpmiddleware.AdminClaims{
		Scope: httpmiddleware.ScopeLeadsRead,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "list-leads",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func leadsURL(base, postalCode string) string {
	u := base + "/admin/leads"
	if postalCode != "" {
		u += "?" + url.Values{"postal_code": {postalCode}}.Encode()
	}
	return u
}
