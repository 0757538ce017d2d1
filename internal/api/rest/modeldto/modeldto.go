// Package modeldto provides locally used types and their structure for data transfer objects.
package modeldto

type (
	RequestURL struct {
		URL             string `json:"url"`
		Alias           string `json:"alias,omitempty"`
		Password        string `json:"password,omitempty"`
		ExpireAfterDays int    `json:"expire_after_days,omitempty"`
	}

	ResponseURL struct {
		ShortURL string `json:"result"`
		Alias    string `json:"alias"`
	}

	RequestPassword struct {
		Password string `json:"password"`
	}

	ResponseResolvedURL struct {
		URL string `json:"url"`
	}

	RequestCollection struct {
		Alias string   `json:"alias,omitempty"`
		URLs  []string `json:"urls"`
	}

	ResponseCollection struct {
		ShortURL string `json:"result"`
		Alias    string `json:"alias"`
	}

	ResponseCollectionItem struct {
		Position int    `json:"position"`
		URL      string `json:"url"`
	}

	ResponseFullURL struct {
		URL      string `json:"original_url"`
		ShortURL string `json:"short_url"`
	}

	ResponseDailyMetric struct {
		Day        string `json:"day"`
		Hits       int64  `json:"hits"`
		LastAccess string `json:"last_access"`
	}

	ResponseSession struct {
		UserID string `json:"user_id"`
	}
)
