package models

import "time"

// News is a cached financial news article. Populated by an external ingestion
// path; end users never mutate it.
type News struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	ImageURL    *string   `json:"imageUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	Sentiment   string    `json:"sentiment"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IPO status values stored in ipos.status.
const (
	IPOStatusUpcoming  = "upcoming"
	IPOStatusRecent    = "recent"
	IPOStatusCompleted = "completed"
)

// IPO is a tracked initial public offering.
type IPO struct {
	ID            int64      `json:"id"`
	Symbol        *string    `json:"symbol"`
	CompanyName   string     `json:"companyName"`
	IPODate       *time.Time `json:"ipoDate"`
	Status        string     `json:"status"`
	PricingDate   *time.Time `json:"pricingDate"`
	OfferingPrice NullMoney  `json:"offeringPrice"`
	Shares        *string    `json:"shares"`
	Proceeds      *string    `json:"proceeds"`
	Underwriters  *string    `json:"underwriters"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
