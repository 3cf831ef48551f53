package client

import "os"

// Profile is where the admin client talks to for one environment.
type Profile struct {
	Name       string
	APIBaseURL string
}

var profiles = map[string]Profile{
	"development": {
		Name:       "development",
		APIBaseURL: "http://localhost:5000/api",
	},
	"staging": {
		Name:       "staging",
		APIBaseURL: "https://your-staging-server.com/api",
	},
	"production": {
		Name:       "production",
		APIBaseURL: "https://your-production-server.com/api",
	},
}

// ProfileFor returns the named profile, falling back to development.
// MARKETPRO_API_URL overrides the API base URL of whichever profile is picked.
func ProfileFor(env string) Profile {
	p, ok := profiles[env]
	if !ok {
		p = profiles["development"]
	}
	if u := os.Getenv("MARKETPRO_API_URL"); u != "" {
		p.APIBaseURL = u
	}
	return p
}
