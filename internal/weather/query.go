package weather

import "strconv"

const (
	DefaultLocation = "London"
	DefaultDays     = 5
	SentinelAPIKey  = "your_api_key_here"
)

type Query struct {
	Location string
	Days     int
	APIKey   string
}

// ResolveQuery builds a Query from positional arguments: location then day count.
// The day count is not range checked.
func ResolveQuery(args []string, apiKey string) Query {
	q := Query{
		Location: DefaultLocation,
		Days:     DefaultDays,
		APIKey:   apiKey,
	}
	if len(args) > 0 {
		q.Location = args[0]
	}
	if len(args) > 1 {
		if days, err := strconv.Atoi(args[1]); err == nil {
			q.Days = days
		}
	}
	if q.APIKey == "" {
		q.APIKey = SentinelAPIKey
	}
	return q
}
