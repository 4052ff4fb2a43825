// Package firecrawl implements a client for the FireCrawl scraping API.
package firecrawl

// Format names accepted by the scrape endpoint.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatLinks    = "links"
)

// Action types accepted by the scrape endpoint.
const (
	ActionWait       = "wait"
	ActionScreenshot = "screenshot"
	ActionClick      = "click"
	ActionWrite      = "write"
	ActionPress      = "press"
	ActionScroll     = "scroll"
	ActionScrape     = "scrape"
	ActionExecute    = "execute"
)

// Action is a browser step the API performs before extraction. Type selects
// the step; the remaining fields apply only to the matching type.
type Action struct {
	Type         string `json:"type"`
	Milliseconds int    `json:"milliseconds,omitempty"`
	Selector     string `json:"selector,omitempty"`
	Text         string `json:"text,omitempty"`
	Key          string `json:"key,omitempty"`
	Pixels       int    `json:"pixels,omitempty"`
	Script       string `json:"script,omitempty"`
}

// Location sets the geographic origin and language preferences for the
// remote fetch. Country is an ISO 3166-1 alpha-2 code; the API defaults
// to "US" when empty.
type Location struct {
	Country   string   `json:"country,omitempty"`
	Languages []string `json:"languages,omitempty"`
}

// ScrapeRequest is the JSON body sent to /v1/scrape. Immutable once built;
// zero-valued optional fields are omitted from the wire form.
type ScrapeRequest struct {
	URL                 string            `json:"url"`
	Formats             []string          `json:"formats"`
	OnlyMainContent     bool              `json:"onlyMainContent,omitempty"`
	IncludeTags         []string          `json:"includeTags,omitempty"`
	ExcludeTags         []string          `json:"excludeTags,omitempty"`
	Headers             map[string]string `json:"headers,omitempty"`
	WaitFor             int               `json:"waitFor,omitempty"`
	Mobile              bool              `json:"mobile,omitempty"`
	SkipTLSVerification bool              `json:"skipTlsVerification,omitempty"`
	Timeout             int               `json:"timeout,omitempty"`
	Actions             []Action          `json:"actions,omitempty"`
	Location            *Location         `json:"location,omitempty"`
	RemoveBase64Images  bool              `json:"removeBase64Images,omitempty"`
	BlockAds            bool              `json:"blockAds,omitempty"`
}

// Metadata describes the scraped page.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	SourceURL   string `json:"sourceURL"`
	StatusCode  int    `json:"statusCode"`
	Error       string `json:"error"`
}

// ScrapeData carries the content formats requested plus page metadata.
type ScrapeData struct {
	Markdown   string   `json:"markdown"`
	HTML       string   `json:"html"`
	RawHTML    string   `json:"rawHtml"`
	Screenshot string   `json:"screenshot"`
	Links      []string `json:"links"`
	Metadata   Metadata `json:"metadata"`
	Warning    string   `json:"warning"`
}

// ScrapeResponse is the JSON body returned by /v1/scrape.
type ScrapeResponse struct {
	Success bool       `json:"success"`
	Data    ScrapeData `json:"data"`
}
