package overrides

import (
	"regexp"

	"shariah_screener/pkg/models"
)

// initDefaults sets up the built-in overrides. Each entry exists because the
// generic heuristics are known to get that company wrong.
func (r *Registry) initDefaults() {
	// Filings list products in a table whose row order has changed between years.
	r.AddHint(&ExtractionHint{
		Ticker:         "AAPL",
		TablePattern:   regexp.MustCompile(`(?is)iPhone.*Mac.*iPad.*Services`),
		RowPattern:     regexp.MustCompile(`(?i)^(iPhone|Mac|iPad|Wearables, Home and Accessories|Services)$`),
		ExcludePattern: regexp.MustCompile(`(?i)total|margin|cost of sales`),
		ExpectedOrder:  []string{"iPhone", "Mac", "iPad", "Wearables, Home and Accessories", "Services"},
	})

	r.AddHint(&ExtractionHint{
		Ticker:         "MSFT",
		TablePattern:   regexp.MustCompile(`(?is)Server products and cloud services.*(Office|Microsoft 365)`),
		RowPattern:     regexp.MustCompile(`(?i)^(Server products and cloud services|Microsoft 365 Commercial products and cloud services|Office products and cloud services|Gaming|Windows and Devices|Windows|Search and news advertising|LinkedIn|Enterprise and partner services|Dynamics products and cloud services|Devices|Other)$`),
		ExcludePattern: regexp.MustCompile(`(?i)total`),
		ExpectedOrder: []string{
			"Server products and cloud services",
			"Microsoft 365 Commercial products and cloud services",
			"Office products and cloud services",
			"Gaming",
			"LinkedIn",
			"Windows and Devices",
			"Windows",
			"Search and news advertising",
			"Dynamics products and cloud services",
			"Enterprise and partner services",
			"Devices",
			"Other",
		},
	})

	// Family of Apps is a subtotal of Advertising and Other revenue.
	r.AddHint(&ExtractionHint{
		Ticker:         "META",
		TablePattern:   regexp.MustCompile(`(?is)Advertising.*Other revenue.*Reality Labs`),
		RowPattern:     regexp.MustCompile(`(?i)^(Advertising|Other revenue|Reality Labs)$`),
		ExcludePattern: regexp.MustCompile(`(?i)total|family of apps|income|expenses`),
		ExpectedOrder:  []string{"Advertising", "Other revenue", "Reality Labs"},
	})

	r.AddClassificationRules("AAPL", []ClassificationRule{
		{Keyword: "services", Category: models.CategoryAllowed},
		{Keyword: "wearables", Category: models.CategoryAllowed},
	})
	r.AddClassificationRules("MSFT", []ClassificationRule{
		{Keyword: "gaming", Category: models.CategoryAllowed},
		{Keyword: "search and news advertising", Category: models.CategoryQuestionable},
		{Keyword: "enterprise and partner services", Category: models.CategoryAllowed},
		{Keyword: "cloud services", Category: models.CategoryAllowed},
	})
	r.AddClassificationRules("GOOGL", googleRules())
	r.AddClassificationRules("GOOG", googleRules())
	r.AddClassificationRules("AMZN", []ClassificationRule{
		{Keyword: "advertising services", Category: models.CategoryQuestionable},
		{Keyword: "seller services", Category: models.CategoryAllowed},
		{Keyword: "subscription services", Category: models.CategoryAllowed},
		{Keyword: "aws", Category: models.CategoryAllowed},
	})
	r.AddClassificationRules("NFLX", []ClassificationRule{
		{Keyword: "streaming", Category: models.CategoryQuestionable},
	})

	// Only geographic segments are reported; none of them describe an activity.
	r.AddRewrite(SegmentRewrite{
		Ticker:      "COST",
		SegmentName: "Membership warehouse operations",
		Reason:      "geographic segmentation only",
	})
}

func googleRules() []ClassificationRule {
	return []ClassificationRule{
		{Keyword: "google cloud", Category: models.CategoryAllowed},
		{Keyword: "subscriptions, platforms, and devices", Category: models.CategoryAllowed},
		{Keyword: "youtube ads", Category: models.CategoryQuestionable},
		{Keyword: "other bets", Category: models.CategoryQuestionable},
	}
}
