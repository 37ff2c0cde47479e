package classify

// Generic keyword lists. Matching is case-insensitive on whole words; a
// trailing "*" matches any suffix.
var (
	disallowedKeywords = []string{
		// riba
		"interest", "riba", "lending", "loan*", "mortgage*", "credit card*",
		"conventional banking", "banking", "bank", "banks", "insurance", "reinsurance", "underwriting",
		// gambling
		"gambling", "casino*", "betting", "wager*", "lottery", "lotteries", "gaming machines",
		// intoxicants
		"alcohol*", "beer*", "wine*", "spirits", "liquor", "brewing", "brewer*", "distill*",
		// pork
		"pork", "swine", "ham",
		// tobacco
		"tobacco", "cigar*", "cigarette*", "vaping", "e-vapor",
		// adult content
		"adult entertainment", "adult content", "pornograph*",
		// weapons and defense
		"weapon*", "defense", "defence", "firearm*", "ammunition", "munitions", "military",
	}

	questionableKeywords = []string{
		"other", "others", "all other", "miscellaneous",
		"services", "service",
		"licensing", "license*", "royalt*",
		"advertising", "ads",
		"corporate", "unallocated", "eliminations",
		"entertainment", "media", "music", "hotel*", "hospitality",
	}
)
