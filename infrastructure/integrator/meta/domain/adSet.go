package metadomain

// Action é o formato de actions/action_values da Graph API, com valores em string
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// AdSetInsight é uma linha de /{campaign_id}/insights com level=adset
type AdSetInsight struct {
	AccountID         string   `json:"account_id"`
	CampaignID        string   `json:"campaign_id"`
	CampaignName      string   `json:"campaign_name"`
	AdSetID           string   `json:"adset_id"`
	AdSetName         string   `json:"adset_name"`
	Spend             string   `json:"spend"`
	Impressions       string   `json:"impressions"`
	Clicks            string   `json:"clicks"`
	Reach             string   `json:"reach"`
	Frequency         string   `json:"frequency"`
	Actions           []Action `json:"actions"`
	ActionValues      []Action `json:"action_values"`
	PublisherPlatform string   `json:"publisher_platform,omitempty"`
	DateStart         string   `json:"date_start"`
	DateStop          string   `json:"date_stop"`
}

type ResponseAdSetInsights struct {
	Data   []AdSetInsight `json:"data"`
	Paging Paging         `json:"paging"`
}
